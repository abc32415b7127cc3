package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/linkboard/pkg/config"
	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

func testConfig(t *testing.T, driver string) *config.Config {
	return &config.Config{
		StoreDriver:     driver,
		DatabaseURL:     fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		BadgerPath:      t.TempDir(),
		JWTSecret:       "test-secret",
		TeacherUsername: "teacher123",
		TeacherPassword: "secret123",
		CORSOrigins:     "*",
		MaxUploadBytes:  1 << 20,
	}
}

func TestNewPerDriver(t *testing.T) {
	for _, driver := range []string{config.DriverSQLite, config.DriverBadger} {
		t.Run(driver, func(t *testing.T) {
			a, err := New(context.Background(), testConfig(t, driver), logging.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, a.Close()) })

			rec := httptest.NewRecorder()
			a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/links", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())
		})
	}
}

func TestOpenRepositoryUnknownDriver(t *testing.T) {
	_, err := OpenRepository(testConfig(t, "mongo"), logging.Discard())
	assert.Error(t, err)
}

func TestNewObjectStoreDisabled(t *testing.T) {
	store, err := NewObjectStore(context.Background(), testConfig(t, config.DriverSQLite), logging.Discard())
	require.NoError(t, err)
	assert.Nil(t, store)
}
