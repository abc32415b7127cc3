package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AWS_BUCKET_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "teacher123", cfg.TeacherUsername)
	assert.Equal(t, "secret123", cfg.TeacherPassword)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.StorageEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadBucketURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AWS_BUCKET_NAME", "board-files")
	t.Setenv("AWS_REGION", "ap-south-1")
	t.Setenv("STORE_DRIVER", "Badger")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverBadger, cfg.StoreDriver)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, "https://board-files.s3.ap-south-1.amazonaws.com/", cfg.S3PublicURL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:           "5000",
		StoreDriver:    DriverSQLite,
		DatabaseURL:    "file:test.sqlite",
		JWTSecret:      "secret",
		MaxUploadBytes: 1024,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "mongo" }, wantErr: "STORE_DRIVER"},
		{name: "badger without path", mutate: func(c *Config) { c.StoreDriver = DriverBadger }, wantErr: "BADGER_PATH"},
		{name: "bucket required", mutate: func(c *Config) { c.StorageRequired = true }, wantErr: "AWS_BUCKET_NAME"},
		{name: "upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: "MAX_UPLOAD_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
