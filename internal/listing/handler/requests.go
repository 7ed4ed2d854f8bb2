package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"provision/internal/listing/models"
	dErrors "provision/pkg/domain-errors"
)

// decodeBody decodes a JSON request body into dst. A type mismatch on a known
// field is a field-level validation failure, same as a value Validate rejects;
// only syntactically broken JSON is a plain bad request.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		var v dErrors.Validation
		v.Add(typeErr.Field, typeMismatchMessage(typeErr))
		return v.Err()
	}
	// Timestamp values appear only on available_at in request bodies.
	if errors.Is(err, models.ErrInvalidTimestamp) {
		var v dErrors.Validation
		v.Add("available_at", "must be a valid timestamp")
		return v.Err()
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
}

func typeMismatchMessage(e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.String:
		return "must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "must be an integer"
	default:
		return "is not the expected type"
	}
}

// parseID reads the {id} path parameter. Ids are positive integers; anything
// else is a client error, not a lookup miss.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer")
	}
	return id, nil
}

// parseFilter translates the recognized query parameters into a Filter.
// Unknown parameters are ignored; malformed values for known parameters are
// client errors.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()

	order, err := models.ParseOrder(q.Get("order"))
	if err != nil {
		return models.Filter{}, err
	}

	f := models.Filter{
		Query:       q.Get("q"),
		ServiceType: q.Get("service_type"),
		Order:       order,
		Limit:       models.DefaultLimit,
	}

	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "min_price must be an integer")
		}
		f.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "max_price must be an integer")
		}
		f.MaxPrice = &v
	}
	if raw := q.Get("available_at"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "available_at must be a date in YYYY-MM-DD form")
		}
		f.AvailableOn = &day
	}
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "offset must be a non-negative integer")
		}
		f.Offset = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > models.MaxLimit {
			return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "limit must be between 1 and 100")
		}
		f.Limit = v
	}

	return f, nil
}
