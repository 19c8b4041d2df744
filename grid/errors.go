package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCell means an element refers to a cell the Spec does not name.
	ErrUnknownCell = errors.New("unknown cell")
	// ErrDuplicateCell means a Spec names the same cell twice.
	ErrDuplicateCell = errors.New("duplicate cell")
)

// CellError reports a problem with one named cell.
type CellError struct {
	Cell string
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("grid: cell %q: %v", e.Cell, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
