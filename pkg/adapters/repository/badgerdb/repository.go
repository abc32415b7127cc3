package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

// InMemory is the path value that keeps the whole store in memory.
const InMemory = ":memory:"

const (
	linkPrefix       = "link:"
	domainPrefix     = "domain:"
	domainNamePrefix = "domain-name:"
)

// BadgerRepository stores links and domains as JSON documents in BadgerDB.
// Domain names are kept unique through a name -> id index key.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	if dbPath == InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(&badgerLogger{logger.WithField("component", "badgerdb")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.WithField("path", dbPath).Info("BadgerDB opened")

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

func (r *BadgerRepository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

func linkKey(id string) []byte { return []byte(linkPrefix + id) }

func domainKey(id string) []byte { return []byte(domainPrefix + id) }

func domainNameKey(name string) []byte { return []byte(domainNamePrefix + name) }

func getJSON(txn *badger.Txn, key []byte, v any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func (r *BadgerRepository) CreateLink(ctx context.Context, link *domain.Link) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.PostedAt.IsZero() {
		link.PostedAt = time.Now().UTC()
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, linkKey(link.ID), link)
	})
	if err != nil {
		return fmt.Errorf("save link: %w", err)
	}
	return nil
}

func (r *BadgerRepository) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	var link domain.Link
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getJSON(txn, linkKey(id), &link)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get link %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &link, nil
}

func (r *BadgerRepository) UpdateLink(ctx context.Context, id string, in domain.LinkInput) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var link domain.Link
		found, err := getJSON(txn, linkKey(id), &link)
		if err != nil || !found {
			return err
		}
		in.Apply(&link)
		return setJSON(txn, linkKey(id), &link)
	})
	if err != nil {
		return fmt.Errorf("update link %s: %w", id, err)
	}
	return nil
}

func (r *BadgerRepository) DeleteLink(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(linkKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete link %s: %w", id, err)
	}
	return nil
}

func (r *BadgerRepository) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return r.scanLinks(func(domain.Link) bool { return true })
}

func (r *BadgerRepository) ListLinksByDomain(ctx context.Context, name string) ([]domain.Link, error) {
	return r.scanLinks(func(l domain.Link) bool { return l.Domain == name })
}

// DeleteLinksByDomain removes matching links in a write batch, so large
// domains do not run into the transaction size limit.
func (r *BadgerRepository) DeleteLinksByDomain(ctx context.Context, name string) (int64, error) {
	links, err := r.ListLinksByDomain(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(links) == 0 {
		return 0, nil
	}

	wb := r.db.NewWriteBatch()
	for _, l := range links {
		if err := wb.Delete(linkKey(l.ID)); err != nil {
			wb.Cancel()
			return 0, fmt.Errorf("delete links of domain %q: %w", name, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("delete links of domain %q: %w", name, err)
	}
	return int64(len(links)), nil
}

// scanLinks walks every link document and returns the matches newest first.
func (r *BadgerRepository) scanLinks(match func(domain.Link) bool) ([]domain.Link, error) {
	links := []domain.Link{}
	prefix := []byte(linkPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var link domain.Link
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &link)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			if match(link) {
				links = append(links, link)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].PostedAt.After(links[j].PostedAt)
	})
	return links, nil
}

func (r *BadgerRepository) CreateDomain(ctx context.Context, d *domain.Domain) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(domainNameKey(d.Name)); err == nil {
			return domain.ErrDuplicateDomain
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(domainNameKey(d.Name), []byte(d.ID)); err != nil {
			return err
		}
		return setJSON(txn, domainKey(d.ID), d)
	})
	if err != nil {
		return fmt.Errorf("insert domain %q: %w", d.Name, err)
	}
	return nil
}

func (r *BadgerRepository) GetDomain(ctx context.Context, id string) (*domain.Domain, error) {
	var d domain.Domain
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getJSON(txn, domainKey(id), &d)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get domain %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &d, nil
}

func (r *BadgerRepository) GetDomainByName(ctx context.Context, name string) (*domain.Domain, error) {
	var id string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(domainNameKey(name))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		id = string(val)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get domain %q: %w", name, err)
	}
	return r.GetDomain(ctx, id)
}

func (r *BadgerRepository) UpdateDomain(ctx context.Context, id, name string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var d domain.Domain
		found, err := getJSON(txn, domainKey(id), &d)
		if err != nil || !found || d.Name == name {
			return err
		}

		if _, err := txn.Get(domainNameKey(name)); err == nil {
			return domain.ErrDuplicateDomain
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(domainNameKey(d.Name)); err != nil {
			return err
		}
		if err := txn.Set(domainNameKey(name), []byte(id)); err != nil {
			return err
		}
		d.Name = name
		return setJSON(txn, domainKey(id), &d)
	})
	if err != nil {
		return fmt.Errorf("rename domain %s: %w", id, err)
	}
	return nil
}

func (r *BadgerRepository) DeleteDomain(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var d domain.Domain
		found, err := getJSON(txn, domainKey(id), &d)
		if err != nil || !found {
			return err
		}
		if err := txn.Delete(domainNameKey(d.Name)); err != nil {
			return err
		}
		return txn.Delete(domainKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete domain %s: %w", id, err)
	}
	return nil
}

func (r *BadgerRepository) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	domains := []domain.Domain{}
	prefix := []byte(domainPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var d domain.Domain
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return err
			}
			domains = append(domains, d)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return domains, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warningf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Debugf(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }

var _ ports.Repository = (*BadgerRepository)(nil)
