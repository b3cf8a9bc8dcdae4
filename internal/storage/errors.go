package storage

import "github.com/pkg/errors"

var (
	ErrIO           = errors.New("storage io failed")
	ErrParse        = errors.New("data file is not a valid persons document")
	ErrValidation   = errors.New("person violates field constraints")
	ErrDuplicate    = errors.New("persons list contains duplicate person(s)")
	ErrPrecondition = errors.New("precondition failed")
)
