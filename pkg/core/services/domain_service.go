package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type DomainService struct {
	repo  ports.Repository
	files ports.FileService
	log   logrus.FieldLogger
}

func NewDomainService(repo ports.Repository, files ports.FileService, logger logrus.FieldLogger) *DomainService {
	return &DomainService{
		repo:  repo,
		files: files,
		log:   logger.WithField("component", "domains"),
	}
}

func (s *DomainService) CreateDomain(ctx context.Context, name string) (*domain.Domain, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	d := &domain.Domain{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateDomain(ctx, d); err != nil {
		return nil, err
	}

	s.log.WithField("name", name).Info("Domain created")
	return d, nil
}

func (s *DomainService) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.repo.ListDomains(ctx)
}

// UpdateDomain renames a domain. Links keep the name they were posted with.
// An empty name leaves the domain as it is.
func (s *DomainService) UpdateDomain(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return s.repo.UpdateDomain(ctx, id, name)
}

// DeleteDomain removes the domain together with every link filed under its
// name. Objects behind those links are removed first, best effort.
func (s *DomainService) DeleteDomain(ctx context.Context, id string) error {
	d, err := s.repo.GetDomain(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}

	links, err := s.repo.ListLinksByDomain(ctx, d.Name)
	if err != nil {
		return err
	}
	for _, l := range links {
		if l.IsFile() {
			s.files.Remove(ctx, fileRef(l))
		}
	}

	n, err := s.repo.DeleteLinksByDomain(ctx, d.Name)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDomain(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"name": d.Name, "links": n}).Info("Domain and related posts deleted")
	return nil
}
