package ports

import (
	"context"
	"io"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
)

// Repository defines document storage for links and domains.
// Lookups by id return (nil, nil) when the record does not exist.
type Repository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	UpdateLink(ctx context.Context, id string, in domain.LinkInput) error // No-op for unknown ids
	DeleteLink(ctx context.Context, id string) error
	ListLinks(ctx context.Context) ([]domain.Link, error) // Newest first
	ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error)
	DeleteLinksByDomain(ctx context.Context, name string) (int64, error)

	CreateDomain(ctx context.Context, d *domain.Domain) error // ErrDuplicateDomain on name clash
	GetDomain(ctx context.Context, id string) (*domain.Domain, error)
	GetDomainByName(ctx context.Context, name string) (*domain.Domain, error)
	UpdateDomain(ctx context.Context, id, name string) error
	DeleteDomain(ctx context.Context, id string) error
	ListDomains(ctx context.Context) ([]domain.Domain, error)

	Close() error
}

// Object is a blob read back from the object store
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ObjectStore defines blob storage for uploaded files
type ObjectStore interface {
	// Put stores body under key and returns the public URL of the object.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL derives the object key from a public URL returned by Put.
	KeyFromURL(url string) (string, bool)
}

// LinkService defines the link operations
type LinkService interface {
	CreateLink(ctx context.Context, in domain.LinkInput) (*domain.Link, error)
	ListLinks(ctx context.Context) ([]domain.Link, error)
	ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error)
	UpdateLink(ctx context.Context, id string, in domain.LinkInput) error
	DeleteLink(ctx context.Context, id string) error
}

// DomainService defines the domain operations
type DomainService interface {
	CreateDomain(ctx context.Context, name string) (*domain.Domain, error)
	ListDomains(ctx context.Context) ([]domain.Domain, error)
	UpdateDomain(ctx context.Context, id, name string) error
	DeleteDomain(ctx context.Context, id string) error
}

// AuthService issues and verifies bearer tokens
type AuthService interface {
	Login(username, password string) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// FileService moves files between clients and the object store
type FileService interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
	Download(ctx context.Context, key string) (*Object, error)
	// Remove deletes the object behind a stored file URL. Failures are logged, not returned.
	Remove(ctx context.Context, fileURL string)
}
