package aggregate

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
)

// DocumentError names the document that stopped a batch.
type DocumentError struct {
	Index int
	Name  string
	Path  string
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %d (%s at %s): %v", e.Index, e.Name, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
