package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

type stubLinks struct {
	links []domain.Link
	err   error
}

func (s *stubLinks) CreateLink(ctx context.Context, in domain.LinkInput) (*domain.Link, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLinks) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return s.links, s.err
}

func (s *stubLinks) ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error) {
	var out []domain.Link
	for _, l := range s.links {
		if l.Domain == name {
			out = append(out, l)
		}
	}
	return out, s.err
}

func (s *stubLinks) UpdateLink(ctx context.Context, id string, in domain.LinkInput) error { return nil }
func (s *stubLinks) DeleteLink(ctx context.Context, id string) error                      { return nil }

type stubDomains struct {
	domains []domain.Domain
}

func (s *stubDomains) CreateDomain(ctx context.Context, name string) (*domain.Domain, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDomains) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.domains, nil
}

func (s *stubDomains) UpdateDomain(ctx context.Context, id, name string) error { return nil }
func (s *stubDomains) DeleteDomain(ctx context.Context, id string) error       { return nil }

func newTestRouter(links *stubLinks) http.Handler {
	domains := &stubDomains{domains: []domain.Domain{{ID: "1", Name: "math"}, {ID: "2", Name: "art history"}}}
	r := chi.NewRouter()
	NewHandler(links, domains, logging.Discard()).Routes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFeed(t *testing.T) {
	posted := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	router := newTestRouter(&stubLinks{links: []domain.Link{
		{ID: "a", Title: "Fractions", URL: "example.com", Domain: "math", PostedAt: posted},
		{ID: "b", Title: "Worksheet", FileURL: "https://board.s3.amazonaws.com/1_sheet.pdf", Domain: "math", PostedAt: posted},
		{ID: "c", Title: "Monet", URL: "http://art.example.org", Domain: "art history", PostedAt: posted},
	}})

	rec := get(t, router, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `href="https://example.com"`)
	assert.Contains(t, body, `href="http://art.example.org"`)
	assert.Contains(t, body, `href="https://board.s3.amazonaws.com/1_sheet.pdf" download`)
	assert.Contains(t, body, `href="/domains/art%20history"`)
	assert.Contains(t, body, "2024-03-01 09:30")
}

func TestDomainFeed(t *testing.T) {
	router := newTestRouter(&stubLinks{links: []domain.Link{
		{ID: "a", Title: "Fractions", URL: "example.com", Domain: "math"},
		{ID: "c", Title: "Monet", URL: "art.example.org", Domain: "art history"},
	}})

	rec := get(t, router, "/domains/math")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fractions")
	assert.NotContains(t, rec.Body.String(), "Monet")

	rec = get(t, router, "/domains/art%20history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Monet")

	rec = get(t, router, "/domains/Math")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts found for this domain.")
}

func TestFeedStoreError(t *testing.T) {
	router := newTestRouter(&stubLinks{err: errors.New("db down")})

	rec := get(t, router, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
