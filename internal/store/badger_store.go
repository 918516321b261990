package store

import (
	"context"
	"errors"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"equipment-tracker-backend/internal/model"
)

var documentKey = []byte("equipment:document")

// badgerStore keeps the JSON document as a single value in Badger.
type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database in dir.
func NewBadgerStore(dir string) (Store, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir))
	opts.Logger = nil
	opts = opts.WithValueLogFileSize(1 << 20)
	return openBadger(opts)
}

// NewInMemoryBadgerStore opens a Badger database that lives only in memory.
func NewInMemoryBadgerStore() (Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, &StorageError{Op: "init", Err: err}
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Load(ctx context.Context) ([]model.Equipment, error) {
	var records []model.Equipment
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey)
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			decoded, err := decodeDocument(v)
			if err != nil {
				return err
			}
			records = decoded
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		if err := s.Save(ctx, []model.Equipment{}); err != nil {
			return nil, err
		}
		return []model.Equipment{}, nil
	}
	if err != nil {
		return nil, loadErr(err)
	}
	return records, nil
}

func (s *badgerStore) Save(ctx context.Context, records []model.Equipment) error {
	data, err := encodeDocument(records)
	if err != nil {
		return saveErr(err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(documentKey, data)
	})
	if err != nil {
		return saveErr(err)
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
