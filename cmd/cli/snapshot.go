package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

// Snapshot is the export file format.
type Snapshot struct {
	Domains []domain.Domain `json:"domains"`
	Links   []domain.Link   `json:"links"`
}

type importResult struct {
	Domains int
	Links   int
	Skipped int
}

func doExport(ctx context.Context, repo ports.Repository, w io.Writer) error {
	domains, err := repo.ListDomains(ctx)
	if err != nil {
		return err
	}
	links, err := repo.ListLinks(ctx)
	if err != nil {
		return err
	}

	snap := Snapshot{Domains: domains, Links: links}
	if snap.Domains == nil {
		snap.Domains = []domain.Domain{}
	}
	if snap.Links == nil {
		snap.Links = []domain.Link{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// doImport loads a snapshot. Domains whose name is taken and links whose id
// already exists are skipped.
func doImport(ctx context.Context, repo ports.Repository, r io.Reader, log logrus.FieldLogger) (importResult, error) {
	var res importResult

	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return res, fmt.Errorf("decode snapshot: %w", err)
	}

	for _, d := range snap.Domains {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		err := repo.CreateDomain(ctx, &d)
		if errors.Is(err, domain.ErrDuplicateDomain) {
			log.WithField("name", d.Name).Info("Skipping existing domain")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Domains++
	}

	for _, l := range snap.Links {
		if l.ID == "" {
			l.ID = uuid.NewString()
		} else {
			existing, err := repo.GetLink(ctx, l.ID)
			if err != nil {
				return res, err
			}
			if existing != nil {
				log.WithField("id", l.ID).Info("Skipping existing link")
				res.Skipped++
				continue
			}
		}
		if l.PostedAt.IsZero() {
			l.PostedAt = time.Now().UTC()
		}
		if err := repo.CreateLink(ctx, &l); err != nil {
			return res, err
		}
		res.Links++
	}

	return res, nil
}
