package model

import (
	"errors"
	"fmt"
)

// Entity validation errors.
var (
	// ErrInvalidStallionID is returned when the id is not exactly six ASCII digits.
	ErrInvalidStallionID = errors.New("invalid stallion id: must be exactly 6 digits")
	// ErrInvalidSlug is returned when the slug contains characters outside
	// lowercase alphanumerics and hyphens.
	ErrInvalidSlug = errors.New("invalid slug: must contain only lowercase alphanumerics and hyphens")
)

// SireEntry is one record of the input stream: a free-text sire name and the
// sale year it was observed in. Only Name drives resolution; SaleYear is an
// informational hint for search disambiguation.
type SireEntry struct {
	// Name is the sire name exactly as it appears in the input file,
	// e.g. "Gio Ponti" or "Yoshida (JPN)". Not normalized here; slug
	// normalization happens inside the resolution strategies.
	Name string `json:"name"`

	// SaleYear is the sale year associated with the input row.
	SaleYear int `json:"sale_year"`
}

// ResolvedEntity is a stallion's canonical BloodHorse identity.
// It is created once per input name by the resolver and immutable afterward.
type ResolvedEntity struct {
	// ID is the six-digit BloodHorse stallion identifier, kept as a string
	// because it is a URL path segment, never arithmetic.
	ID string `json:"id"`

	// Slug is the canonical URL token for the stallion, e.g. "gio-ponti".
	// When resolution goes through the probe redirect, this is the slug the
	// server redirected to, not the locally guessed one.
	Slug string `json:"slug"`
}

// NewResolvedEntity creates a ResolvedEntity and validates its invariants.
func NewResolvedEntity(id, slug string) (ResolvedEntity, error) {
	e := ResolvedEntity{ID: id, Slug: slug}
	if err := e.Validate(); err != nil {
		return ResolvedEntity{}, err
	}
	return e, nil
}

// Validate checks the ResolvedEntity invariants: the id is exactly six ASCII
// digits and the slug contains only lowercase alphanumerics and hyphens.
func (e ResolvedEntity) Validate() error {
	if len(e.ID) != 6 {
		return fmt.Errorf("%w: got %q", ErrInvalidStallionID, e.ID)
	}
	for _, r := range e.ID {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: got %q", ErrInvalidStallionID, e.ID)
		}
	}
	if e.Slug == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidSlug, e.Slug)
	}
	for _, r := range e.Slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("%w: got %q", ErrInvalidSlug, e.Slug)
		}
	}
	return nil
}

// String returns a compact "id/slug" form for logging.
func (e ResolvedEntity) String() string {
	return e.ID + "/" + e.Slug
}
