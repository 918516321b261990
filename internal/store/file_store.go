package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"equipment-tracker-backend/internal/model"
)

// fileStore keeps the collection in one pretty-printed JSON file.
type fileStore struct {
	path string
}

// NewFileStore returns a file-backed store, creating the parent directory
// and an empty document when none exists yet.
func NewFileStore(path string) (Store, error) {
	s := &fileStore{path: filepath.Clean(path)}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, &StorageError{Op: "init", Err: err}
	}
	if err := s.ensureDocument(); err != nil {
		return nil, &StorageError{Op: "init", Err: err}
	}
	return s, nil
}

func (s *fileStore) ensureDocument() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.write([]model.Equipment{})
}

func (s *fileStore) Load(ctx context.Context) ([]model.Equipment, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.write([]model.Equipment{}); err != nil {
			return nil, loadErr(err)
		}
		return []model.Equipment{}, nil
	}
	if err != nil {
		return nil, loadErr(err)
	}

	records, err := decodeDocument(raw)
	if err != nil {
		return nil, loadErr(fmt.Errorf("corrupt document %s: %w", s.path, err))
	}
	return records, nil
}

func (s *fileStore) Save(ctx context.Context, records []model.Equipment) error {
	if err := s.write(records); err != nil {
		return saveErr(err)
	}
	return nil
}

func (s *fileStore) Close() error {
	return nil
}

// write replaces the document using the temp-file, fsync, rename pattern
// so readers never observe a partial document.
func (s *fileStore) write(records []model.Equipment) error {
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".equipment-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// encodeDocument renders records as an indented JSON array.
func encodeDocument(records []model.Equipment) ([]byte, error) {
	if records == nil {
		records = []model.Equipment{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func decodeDocument(raw []byte) ([]model.Equipment, error) {
	var records []model.Equipment
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		// A literal null document is treated as corrupt.
		return nil, errors.New("document is not an array")
	}
	return records, nil
}
