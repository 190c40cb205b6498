package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel categories. Concrete failures are marked with one of these so
// callers can classify them with errors.Is regardless of wrapping.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("unavailable")
	ErrInternal      = errors.New("internal error")
)

// Validationf builds a validation failure with a formatted message.
func Validationf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// Internal marks err as an internal failure, keeping the original cause.
func Internal(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, msg), ErrInternal)
}

// Unavailable marks err as a failure of a downstream dependency.
func Unavailable(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, msg), ErrUnavailable)
}

// StockConflictError reports a product whose stock could not cover the requested quantity.
type StockConflictError struct {
	Code      string
	Requested int64
	Available int64
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Code, e.Requested, e.Available)
}

// Is makes StockConflictError match ErrConflict.
func (e *StockConflictError) Is(target error) bool {
	return target == ErrConflict
}

// MissingProductsError lists product codes absent from the catalog.
type MissingProductsError struct {
	Codes []string
}

func (e *MissingProductsError) Error() string {
	return "products not found: " + strings.Join(e.Codes, ", ")
}

// Is makes MissingProductsError match ErrNotFound.
func (e *MissingProductsError) Is(target error) bool {
	return target == ErrNotFound
}
