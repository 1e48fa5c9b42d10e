package docx

import (
	"errors"
)

var (
	// ErrFill is returned for any failure raised by the render engine.
	// The engine's own errors never leave this package unwrapped.
	ErrFill = errors.New("failed to fill docx template")
)
