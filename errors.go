package todolist

import (
	"github.com/denismitr/todolist/internal/storage"
	"github.com/pkg/errors"
)

// Error kinds, distinguishable with errors.Is.
var (
	ErrIO             = storage.ErrIO
	ErrParse          = storage.ErrParse
	ErrValidation     = storage.ErrValidation
	ErrDuplicate      = storage.ErrDuplicate
	ErrPrecondition   = storage.ErrPrecondition
	ErrDataConversion = errors.New("data file could not be converted to a todo list")
)

// DataConversionError reports a data file that exists but holds unusable
// data. It matches ErrDataConversion and the underlying kind.
type DataConversionError struct {
	Path string
	Err  error
}

func (e *DataConversionError) Error() string {
	return ErrDataConversion.Error() + " (" + e.Path + "): " + e.Err.Error()
}

func (e *DataConversionError) Unwrap() error { return e.Err }

func (e *DataConversionError) Is(target error) bool {
	return target == ErrDataConversion
}

func isDataConversion(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicate)
}
