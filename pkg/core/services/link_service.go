package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type LinkService struct {
	repo  ports.Repository
	files ports.FileService
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewLinkService(repo ports.Repository, files ports.FileService, logger logrus.FieldLogger) *LinkService {
	return &LinkService{
		repo:  repo,
		files: files,
		log:   logger.WithField("component", "links"),
		now:   time.Now,
	}
}

func (s *LinkService) CreateLink(ctx context.Context, in domain.LinkInput) (*domain.Link, error) {
	link := &domain.Link{
		ID:       uuid.NewString(),
		PostedAt: s.now().UTC(),
	}
	in.Apply(link)

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": link.ID, "domain": link.Domain}).Info("Link posted")
	return link, nil
}

func (s *LinkService) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return s.repo.ListLinks(ctx)
}

func (s *LinkService) ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error) {
	return s.repo.ListLinksByDomain(ctx, name)
}

// UpdateLink overwrites the editable fields. Unknown ids are ignored.
func (s *LinkService) UpdateLink(ctx context.Context, id string, in domain.LinkInput) error {
	return s.repo.UpdateLink(ctx, id, in)
}

// DeleteLink removes the link and, best effort, the object it points at.
func (s *LinkService) DeleteLink(ctx context.Context, id string) error {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		return nil
	}

	if link.IsFile() {
		s.files.Remove(ctx, fileRef(*link))
	}

	if err := s.repo.DeleteLink(ctx, id); err != nil {
		return err
	}
	s.log.WithField("id", id).Info("Link deleted")
	return nil
}

func fileRef(l domain.Link) string {
	if l.FileURL != "" {
		return l.FileURL
	}
	return l.URL
}
