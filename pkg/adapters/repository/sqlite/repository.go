package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewSQLiteRepository(dbURL string, logger logrus.FieldLogger) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s database: %w", driverName, err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log := logger.WithField("component", "repository")
	log.WithField("driver", driverName).Info("SQL document store ready")
	return &SQLiteRepository{db: db, log: log}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		file_url TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		posted_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_links_posted_at ON links(posted_at);
	CREATE INDEX IF NOT EXISTS idx_links_domain ON links(domain);

	CREATE TABLE IF NOT EXISTS domains (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateLink(ctx context.Context, link *domain.Link) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.PostedAt.IsZero() {
		link.PostedAt = time.Now().UTC()
	}

	query := `INSERT INTO links (id, title, description, url, file_url, domain, posted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, link.ID, link.Title, link.Description, link.URL, link.FileURL,
		link.Domain, link.PostedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	query := `SELECT id, title, description, url, file_url, domain, posted_at FROM links WHERE id = ?`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get link %s: %w", id, err)
	}
	return link, nil
}

func (r *SQLiteRepository) UpdateLink(ctx context.Context, id string, in domain.LinkInput) error {
	query := `UPDATE links SET title = ?, description = ?, url = ?, file_url = ?, domain = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, in.Title, in.Description, in.URL, in.FileURL, in.Domain, id)
	if err != nil {
		return fmt.Errorf("update link %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteLink(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete link %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return r.queryLinks(ctx, `SELECT id, title, description, url, file_url, domain, posted_at
		FROM links ORDER BY posted_at DESC, rowid DESC`)
}

func (r *SQLiteRepository) ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error) {
	return r.queryLinks(ctx, `SELECT id, title, description, url, file_url, domain, posted_at
		FROM links WHERE domain = ? ORDER BY posted_at DESC, rowid DESC`, name)
}

func (r *SQLiteRepository) DeleteLinksByDomain(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE domain = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete links of domain %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRepository) queryLinks(ctx context.Context, query string, args ...any) ([]domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (*domain.Link, error) {
	var l domain.Link
	var postedAt int64
	if err := s.Scan(&l.ID, &l.Title, &l.Description, &l.URL, &l.FileURL, &l.Domain, &postedAt); err != nil {
		return nil, err
	}
	l.PostedAt = time.Unix(0, postedAt).UTC()
	return &l, nil
}

func (r *SQLiteRepository) CreateDomain(ctx context.Context, d *domain.Domain) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO domains (id, name) VALUES (?, ?)`, d.ID, d.Name)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert domain %q: %w", d.Name, domain.ErrDuplicateDomain)
	}
	if err != nil {
		return fmt.Errorf("insert domain %q: %w", d.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) GetDomain(ctx context.Context, id string) (*domain.Domain, error) {
	return r.getDomain(ctx, `SELECT id, name FROM domains WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetDomainByName(ctx context.Context, name string) (*domain.Domain, error) {
	return r.getDomain(ctx, `SELECT id, name FROM domains WHERE name = ?`, name)
}

func (r *SQLiteRepository) getDomain(ctx context.Context, query, arg string) (*domain.Domain, error) {
	var d domain.Domain
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&d.ID, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get domain: %w", err)
	}
	return &d, nil
}

func (r *SQLiteRepository) UpdateDomain(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE domains SET name = ? WHERE id = ?`, name, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("rename domain %s: %w", id, domain.ErrDuplicateDomain)
	}
	if err != nil {
		return fmt.Errorf("rename domain %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteDomain(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM domains WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete domain %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM domains`)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	domains := []domain.Domain{}
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

// Both drivers report constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Ensure interface compliance
var _ ports.Repository = (*SQLiteRepository)(nil)
