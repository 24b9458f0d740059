package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sirescan/internal/config"
	"sirescan/internal/fetcher"
	"sirescan/internal/model"
)

// newTestClient builds a fetcher pointed at a test server with sleeps
// disabled.
func newTestClient(baseURL string) (*fetcher.Client, *config.Config) {
	cfg := config.New()
	cfg.BaseURL = baseURL
	cfg.RetryDelayMin = 0
	cfg.RetryDelayMax = 0
	cfg.PageDelayMin = 0
	cfg.PageDelayMax = 0
	return fetcher.New(cfg, nil), cfg
}

func TestProbeRedirectStrategy(t *testing.T) {
	t.Parallel()

	t.Run("parses identity from the redirect target", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Sentinel-addressed probe for any slug redirects to the
			// canonical page, correcting the slug.
			if strings.Contains(r.URL.Path, "/stallions/0/") {
				http.Redirect(w, r,
					"/stallion-register/stallions/123456/test-horse/auctions/2000",
					http.StatusFound)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, cfg := newTestClient(srv.URL)
		s := NewProbeRedirectStrategy(client, cfg.BaseURL)

		entity, err := s.Resolve(context.Background(), model.SireEntry{Name: "Test Horse"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entity.ID != "123456" {
			t.Errorf("expected id '123456', got %q", entity.ID)
		}
		if entity.Slug != "test-horse" {
			t.Errorf("expected canonical slug 'test-horse', got %q", entity.Slug)
		}
	})

	t.Run("server-corrected slug replaces the local guess", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r,
				"/stallion-register/stallions/654321/yoshida-jpn/auctions/2000",
				http.StatusMovedPermanently)
		}))
		defer srv.Close()

		client, cfg := newTestClient(srv.URL)
		s := NewProbeRedirectStrategy(client, cfg.BaseURL)

		entity, err := s.Resolve(context.Background(), model.SireEntry{Name: "Yoshida (JPN)"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entity.Slug != "yoshida-jpn" {
			t.Errorf("expected server slug 'yoshida-jpn', got %q", entity.Slug)
		}
	})

	t.Run("non-redirect response yields ErrNoMatch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("search landing page"))
		}))
		defer srv.Close()

		client, cfg := newTestClient(srv.URL)
		s := NewProbeRedirectStrategy(client, cfg.BaseURL)

		_, err := s.Resolve(context.Background(), model.SireEntry{Name: "Unknown Horse"})
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("expected ErrNoMatch, got %v", err)
		}
	})

	t.Run("redirect to a non-stallion target yields ErrNoMatch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/stallion-register/search", http.StatusFound)
		}))
		defer srv.Close()

		client, cfg := newTestClient(srv.URL)
		s := NewProbeRedirectStrategy(client, cfg.BaseURL)

		_, err := s.Resolve(context.Background(), model.SireEntry{Name: "Unknown Horse"})
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("expected ErrNoMatch, got %v", err)
		}
	})

	t.Run("probe URL uses the sentinel id and year", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, cfg := newTestClient(srv.URL)
		s := NewProbeRedirectStrategy(client, cfg.BaseURL)
		_, _ = s.Resolve(context.Background(), model.SireEntry{Name: "Gio Ponti"})

		want := "/stallions/0/gio-ponti/auctions/2000"
		if gotPath != want {
			t.Errorf("expected probe path %q, got %q", want, gotPath)
		}
	})
}
