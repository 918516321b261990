package store

import "fmt"

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// StorageError reports a failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func loadErr(err error) error {
	return &StorageError{Op: "load", Err: err}
}

func saveErr(err error) error {
	return &StorageError{Op: "save", Err: err}
}
