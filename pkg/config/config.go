package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

type Config struct {
	Port            string `mapstructure:"PORT"`
	AppEnv          string `mapstructure:"APP_ENV"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	StoreDriver     string `mapstructure:"STORE_DRIVER"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	BadgerPath      string `mapstructure:"BADGER_PATH"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TeacherUsername string `mapstructure:"TEACHER_USERNAME"`
	TeacherPassword string `mapstructure:"TEACHER_PASSWORD"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	MaxUploadBytes  int64  `mapstructure:"MAX_UPLOAD_BYTES"`

	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	BucketName         string `mapstructure:"AWS_BUCKET_NAME"`
	S3Endpoint         string `mapstructure:"S3_ENDPOINT"`
	S3PublicURL        string `mapstructure:"S3_PUBLIC_URL"`
	StorageRequired    bool   `mapstructure:"STORAGE_REQUIRED"`
}

var defaults = map[string]any{
	"PORT":                  "5000",
	"APP_ENV":               "local",
	"LOG_LEVEL":             "info",
	"STORE_DRIVER":          DriverSQLite,
	"DATABASE_URL":          "file:linkboard.sqlite",
	"BADGER_PATH":           "./badger_data",
	"JWT_SECRET":            "",
	"TEACHER_USERNAME":      "teacher123",
	"TEACHER_PASSWORD":      "secret123",
	"CORS_ORIGINS":          "*",
	"MAX_UPLOAD_BYTES":      32 << 20,
	"AWS_ACCESS_KEY_ID":     "",
	"AWS_SECRET_ACCESS_KEY": "",
	"AWS_REGION":            "us-east-1",
	"AWS_BUCKET_NAME":       "",
	"S3_ENDPOINT":           "",
	"S3_PUBLIC_URL":         "",
	"STORAGE_REQUIRED":      false,
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.S3PublicURL == "" && cfg.BucketName != "" {
		cfg.S3PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.BucketName, cfg.AWSRegion)
	}

	return &cfg, nil
}

// Validate reports every problem that should stop the server from starting.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is empty"))
	}
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is empty"))
		}
	case DriverBadger:
		if c.BadgerPath == "" {
			errs = append(errs, errors.New("BADGER_PATH is empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.StorageRequired && c.BucketName == "" {
		errs = append(errs, errors.New("AWS_BUCKET_NAME is required when STORAGE_REQUIRED is set"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// StorageEnabled reports whether a bucket has been configured.
func (c *Config) StorageEnabled() bool {
	return c.BucketName != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
