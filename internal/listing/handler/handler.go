// Package handler is the thin HTTP layer for listings. It decodes requests,
// delegates to the service and renders coded errors; no business logic lives
// here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"provision/internal/listing/models"
	dErrors "provision/pkg/domain-errors"
	"provision/pkg/platform/httputil"
	"provision/pkg/requestcontext"
)

// Service defines the listing operations the handler needs.
type Service interface {
	Create(ctx context.Context, req models.CreateListingRequest) (*models.Listing, error)
	Get(ctx context.Context, id int64) (*models.Listing, error)
	List(ctx context.Context, f models.Filter) ([]models.Listing, error)
	Update(ctx context.Context, id int64, req models.UpdateListingRequest) (*models.Listing, error)
	Delete(ctx context.Context, id int64) error
}

// Handler handles the /services endpoints.
type Handler struct {
	logger   *slog.Logger
	listings Service
}

// New creates a listing Handler.
func New(listings Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, listings: listings}
}

// Register registers the listing routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	listings, err := h.listings.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateListingRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.listings.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	l, err := h.listings.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateListingRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.listings.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.listings.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "listing request failed",
			"request_id", requestcontext.RequestID(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "listing request rejected",
			"request_id", requestcontext.RequestID(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
