package xlsx

import (
	"errors"
)

var (
	// ErrWorkbookParse is returned when content is not a parseable workbook.
	ErrWorkbookParse = errors.New("content is not a parseable workbook")
)
