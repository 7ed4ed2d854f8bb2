package models

import (
	"strings"
	"time"
	"unicode/utf8"

	dErrors "provision/pkg/domain-errors"
)

// titleMinLength is checked against the original string, not the trimmed one.
const titleMinLength = 3

// CreateListingRequest is the decoded POST /services body. Every field is a
// pointer so a missing key is distinguishable from a zero value.
type CreateListingRequest struct {
	Title        *string    `json:"title"`
	Details      *string    `json:"details"`
	ServiceType  *string    `json:"service_type"`
	ProviderName *string    `json:"provider_name"`
	Phone        *string    `json:"phone"`
	Price        *int64     `json:"price"`
	AvailableAt  *Timestamp `json:"available_at"`
}

// Validate checks every field and returns a normalized Listing ready for
// insertion, or a ValidationError naming all offending fields at once.
// ID and CreatedAt are left unset; the store assigns them.
func (r CreateListingRequest) Validate() (*Listing, error) {
	var v dErrors.Validation

	if r.Title == nil {
		v.Add("title", "is required")
	} else {
		validateTitle(&v, *r.Title)
	}

	if r.ServiceType == nil {
		v.Add("service_type", "is required")
	}

	var phone string
	if r.Phone == nil {
		v.Add("phone", "is required")
	} else {
		normalized, ok := NormalizePhone(*r.Phone)
		if !ok {
			v.Add("phone", phoneFormatMessage)
		}
		phone = normalized
	}

	if r.Price == nil {
		v.Add("price", "is required")
	}

	if r.AvailableAt == nil {
		v.Add("available_at", "is required")
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Listing{
		Title:        *r.Title,
		Details:      r.Details,
		ServiceType:  *r.ServiceType,
		ProviderName: r.ProviderName,
		Phone:        phone,
		Price:        *r.Price,
		AvailableAt:  r.AvailableAt.Time,
	}, nil
}

// UpdateListingRequest is the decoded PATCH /services/{id} body. Only keys
// present in the payload are considered; omitted fields keep their prior
// value.
type UpdateListingRequest struct {
	Title        *string    `json:"title"`
	Details      *string    `json:"details"`
	ServiceType  *string    `json:"service_type"`
	ProviderName *string    `json:"provider_name"`
	Phone        *string    `json:"phone"`
	Price        *int64     `json:"price"`
	AvailableAt  *Timestamp `json:"available_at"`
}

// Validate checks every supplied field and returns the normalized patch, or a
// ValidationError naming all offending fields at once.
func (r UpdateListingRequest) Validate() (ListingPatch, error) {
	var v dErrors.Validation
	var p ListingPatch

	if r.Title != nil {
		validateTitle(&v, *r.Title)
		p.Title = r.Title
	}
	p.Details = r.Details
	p.ServiceType = r.ServiceType
	p.ProviderName = r.ProviderName

	if r.Phone != nil {
		normalized, ok := NormalizePhone(*r.Phone)
		if !ok {
			v.Add("phone", phoneFormatMessage)
		} else {
			p.Phone = &normalized
		}
	}
	p.Price = r.Price
	if r.AvailableAt != nil {
		t := r.AvailableAt.Time
		p.AvailableAt = &t
	}

	if err := v.Err(); err != nil {
		return ListingPatch{}, err
	}
	return p, nil
}

func validateTitle(v *dErrors.Validation, title string) {
	if strings.TrimSpace(title) == "" {
		v.Add("title", "must not be blank or whitespace only")
		return
	}
	if utf8.RuneCountInString(title) < titleMinLength {
		v.Add("title", "must be at least 3 characters")
	}
}

// ListingPatch carries the validated, normalized fields of a partial update.
// Nil means the field was not supplied and must be left untouched.
type ListingPatch struct {
	Title        *string
	Details      *string
	ServiceType  *string
	ProviderName *string
	Phone        *string
	Price        *int64
	AvailableAt  *time.Time
}

// IsZero reports whether no field was supplied.
func (p ListingPatch) IsZero() bool {
	return p.Title == nil && p.Details == nil && p.ServiceType == nil &&
		p.ProviderName == nil && p.Phone == nil && p.Price == nil && p.AvailableAt == nil
}

// Apply copies every supplied field onto l. ID and CreatedAt are never
// touched.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Details != nil {
		l.Details = p.Details
	}
	if p.ServiceType != nil {
		l.ServiceType = *p.ServiceType
	}
	if p.ProviderName != nil {
		l.ProviderName = p.ProviderName
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.AvailableAt != nil {
		l.AvailableAt = *p.AvailableAt
	}
}
