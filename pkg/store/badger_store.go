package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/plexforge/kometa-studio/pkg/log"
	"github.com/plexforge/kometa-studio/pkg/types"
)

// BadgerStore implements the Store interface using BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	path   string
	mu     sync.RWMutex
	open   bool
	logger log.Logger
}

// NewBadgerStore creates a new BadgerDB-backed store.
func NewBadgerStore(logger log.Logger) *BadgerStore {
	if logger == nil {
		logger = log.GetDefaultLogger().WithComponent("badger-store")
	}
	return &BadgerStore{logger: logger}
}

// Open initializes and opens the BadgerDB database at the given path.
func (s *BadgerStore) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("store already open")
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = &badgerLogAdapter{logger: s.logger}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}

	s.db = db
	s.path = path
	s.open = true
	s.logger.Info("Opened badger store", log.Str("path", path))
	return nil
}

// Close closes the BadgerDB database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}

	s.open = false
	s.logger.Info("Closed badger store", log.Str("path", s.path))
	return nil
}

// Create creates a new resource. It fails if the resource already exists.
func (s *BadgerStore) Create(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to serialize resource: %w", err)
	}

	key := []byte(MakeKey(resourceType, name))
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("resource already exists: %s/%s", resourceType, name)
		}
		if err != badger.ErrKeyNotFound {
			return fmt.Errorf("failed to check resource existence: %w", err)
		}
		return txn.Set(key, data)
	})
}

// Get retrieves a resource by type and name.
func (s *BadgerStore) Get(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(MakeKey(resourceType, name))
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("resource not found: %s/%s", resourceType, name)
		}
		if err != nil {
			return fmt.Errorf("failed to get resource: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, resource)
		})
	})
}

// List retrieves the raw records of all resources of the given type.
func (s *BadgerStore) List(ctx context.Context, resourceType types.ResourceType) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(MakePrefix(resourceType))
	var records [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to read resource value: %w", err)
			}
			records = append(records, val)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update updates an existing resource. It fails if the resource is missing.
func (s *BadgerStore) Update(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to serialize resource: %w", err)
	}

	key := []byte(MakeKey(resourceType, name))
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("resource not found: %s/%s", resourceType, name)
		}
		if err != nil {
			return fmt.Errorf("failed to check resource existence: %w", err)
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a resource by type and name.
func (s *BadgerStore) Delete(ctx context.Context, resourceType types.ResourceType, name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(MakeKey(resourceType, name))
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("resource not found: %s/%s", resourceType, name)
		}
		if err != nil {
			return fmt.Errorf("failed to check resource existence: %w", err)
		}
		return txn.Delete(key)
	})
}

// badgerLogAdapter adapts our logger to badger's Logger interface.
type badgerLogAdapter struct {
	logger log.Logger
}

func (a *badgerLogAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Errorf(format, args...)
}

func (a *badgerLogAdapter) Warningf(format string, args ...interface{}) {
	a.logger.Warnf(format, args...)
}

func (a *badgerLogAdapter) Infof(format string, args ...interface{}) {
	a.logger.Debugf(format, args...)
}

func (a *badgerLogAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debugf(format, args...)
}
