package model

import (
	"errors"
	"testing"
)

func TestNewResolvedEntity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		slug    string
		wantErr error
	}{
		{
			name: "valid identity",
			id:   "123456",
			slug: "gio-ponti",
		},
		{
			name: "valid slug with digits",
			id:   "987654",
			slug: "yoshida-jpn",
		},
		{
			name:    "id too short",
			id:      "12345",
			slug:    "gio-ponti",
			wantErr: ErrInvalidStallionID,
		},
		{
			name:    "id too long",
			id:      "1234567",
			slug:    "gio-ponti",
			wantErr: ErrInvalidStallionID,
		},
		{
			name:    "id with letter",
			id:      "12345a",
			slug:    "gio-ponti",
			wantErr: ErrInvalidStallionID,
		},
		{
			name:    "empty slug",
			id:      "123456",
			slug:    "",
			wantErr: ErrInvalidSlug,
		},
		{
			name:    "slug with uppercase",
			id:      "123456",
			slug:    "Gio-Ponti",
			wantErr: ErrInvalidSlug,
		},
		{
			name:    "slug with space",
			id:      "123456",
			slug:    "gio ponti",
			wantErr: ErrInvalidSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entity, err := NewResolvedEntity(tt.id, tt.slug)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entity.ID != tt.id || entity.Slug != tt.slug {
				t.Errorf("expected %s/%s, got %s/%s", tt.id, tt.slug, entity.ID, entity.Slug)
			}
		})
	}
}

func TestResolvedEntityString(t *testing.T) {
	t.Parallel()

	e := ResolvedEntity{ID: "123456", Slug: "gio-ponti"}
	if got := e.String(); got != "123456/gio-ponti" {
		t.Errorf("expected '123456/gio-ponti', got %q", got)
	}
}
