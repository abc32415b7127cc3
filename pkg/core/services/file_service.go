package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type FileService struct {
	store ports.ObjectStore // nil when no bucket is configured
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewFileService(store ports.ObjectStore, logger logrus.FieldLogger) *FileService {
	return &FileService{
		store: store,
		log:   logger.WithField("component", "files"),
		now:   time.Now,
	}
}

// Upload stores body under "<unix millis>_<filename>" and returns its public URL.
func (s *FileService) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if s.store == nil {
		return "", domain.ErrStorageDisabled
	}
	filename = path.Base(filename)
	if filename == "." || filename == "/" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}

	key := fmt.Sprintf("%d_%s", s.now().UnixMilli(), filename)
	s.log.WithFields(logrus.Fields{"file": filename, "key": key}).Info("Received file")

	url, err := s.store.Put(ctx, key, body, size, contentType)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *FileService) Download(ctx context.Context, key string) (*ports.Object, error) {
	if s.store == nil {
		return nil, domain.ErrStorageDisabled
	}
	return s.store.Get(ctx, key)
}

func (s *FileService) Remove(ctx context.Context, fileURL string) {
	if s.store == nil || fileURL == "" {
		return
	}

	key, ok := s.store.KeyFromURL(fileURL)
	if !ok {
		s.log.WithField("url", fileURL).Debug("Not an object in this bucket, skipping delete")
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to delete object")
	}
}
