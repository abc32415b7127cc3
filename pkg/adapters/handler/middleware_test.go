package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/linkboard/pkg/core/services"
	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

func TestRequireAuth(t *testing.T) {
	auth := services.NewAuthService("teacher123", "secret123", "testservlet")
	mw := NewMiddleware(auth, logging.Discard())

	validToken, err := auth.Login("teacher123", "secret123")
	require.NoError(t, err)
	foreignToken, err := services.NewAuthService("teacher123", "secret123", "other").Login("teacher123", "secret123")
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "No Header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Scheme Only",
			header:         "Bearer",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Invalid Token",
			header:         "Bearer invalid",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Wrong Secret",
			header:         "Bearer " + foreignToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Valid Token",
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid Token Any Scheme",
			header:         "Token " + validToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			var user string
			handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if claims, ok := ClaimsFromContext(r.Context()); ok {
					user = claims.User
				}
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "teacher123", user)
			}
		})
	}
}

func TestRequireAuthBodies(t *testing.T) {
	mw := NewMiddleware(services.NewAuthService("u", "p", "s"), logging.Discard())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/links", nil))
	assert.Equal(t, "Unauthorized\n", rr.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rr = httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rr, req)
	assert.Equal(t, "Forbidden\n", rr.Body.String())
}
