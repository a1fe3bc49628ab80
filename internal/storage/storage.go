package storage

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyExists     = errors.New("record already exists")
	ErrReferenceNotFound = errors.New("referenced record not found")
	ErrReferenced        = errors.New("record is referenced by other records")
)

// DefaultListLimit and MaxListLimit bound List calls on every repository.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type ListParams struct {
	Skip  int
	Limit int
}
