package parser

import (
	"errors"
)

var (
	// ErrTypeNotDefined is returned for filenames without an extension.
	ErrTypeNotDefined = errors.New("file type is not defined")
)
