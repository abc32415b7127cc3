// Package app wires configuration into a ready-to-serve router.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkboard/pkg/adapters/objectstore/s3store"
	"github.com/wadjakorntonsri/linkboard/pkg/adapters/repository/badgerdb"
	"github.com/wadjakorntonsri/linkboard/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/linkboard/pkg/config"
	"github.com/wadjakorntonsri/linkboard/pkg/core/services"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type App struct {
	Handler http.Handler
	Repo    ports.Repository
}

// New builds the repository, object store, services and router.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	repo, err := OpenRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := NewObjectStore(ctx, cfg, log)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return NewWithStore(cfg, repo, store, log), nil
}

// NewWithStore wires an already opened repository and object store.
// A nil store disables uploads and blob cleanup.
func NewWithStore(cfg *config.Config, repo ports.Repository, store ports.ObjectStore, log logrus.FieldLogger) *App {
	files := services.NewFileService(store, log)
	svc := handler.Services{
		Links:   services.NewLinkService(repo, files, log),
		Domains: services.NewDomainService(repo, files, log),
		Auth:    services.NewAuthService(cfg.TeacherUsername, cfg.TeacherPassword, cfg.JWTSecret),
		Files:   files,
	}

	return &App{
		Handler: handler.NewRouter(cfg, svc, log),
		Repo:    repo,
	}
}

func (a *App) Close() error {
	return a.Repo.Close()
}

// OpenRepository opens the document store selected by STORE_DRIVER.
func OpenRepository(cfg *config.Config, log logrus.FieldLogger) (ports.Repository, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repo, nil
	case config.DriverBadger:
		repo, err := badgerdb.NewBadgerRepository(cfg.BadgerPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewObjectStore returns the S3 store, or nil when no bucket is configured.
func NewObjectStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (ports.ObjectStore, error) {
	if !cfg.StorageEnabled() {
		log.Warn("AWS_BUCKET_NAME is not set, file uploads are disabled")
		return nil, nil
	}

	opts := s3store.Options{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
		Bucket:          cfg.BucketName,
		Endpoint:        cfg.S3Endpoint,
		PublicURL:       cfg.S3PublicURL,
	}
	client, err := s3store.NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s3store.New(client, opts, log), nil
}
