package docx

import (
	"bytes"
	"context"
	"fmt"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/geoirb/doc-templater/internal/values"
)

// Facade for docx templates. Filling delegates to the render engine;
// this package only coerces values and keeps the engine's errors from
// leaking upward.
type Facade struct{}

func NewFacade() *Facade {
	return &Facade{}
}

// Extract is a stub kept on purpose: listing tags of a docx without
// rendering it needs a scan of the document xml, which this service
// does not do yet. It reports no placeholders for any input.
func (s *Facade) Extract(_ []byte) ([]string, error) {
	return []string{}, nil
}

// FillIn renders the template with payload through the engine and
// returns the produced document.
func (s *Facade) FillIn(ctx context.Context, content []byte, payload map[string]interface{}) (result []byte, err error) {
	doc, err := docx.OpenBytes(content)
	if err != nil {
		err = fmt.Errorf("%w: open: %v", ErrFill, err)
		return
	}

	replacement := make(docx.PlaceholderMap, len(payload))
	for name, value := range payload {
		replacement[name] = values.String(value)
	}

	if err = doc.ReplaceAll(replacement); err != nil {
		err = fmt.Errorf("%w: render: %v", ErrFill, err)
		return
	}

	var buf bytes.Buffer
	if err = doc.Write(&buf); err != nil {
		err = fmt.Errorf("%w: serialize: %v", ErrFill, err)
		return
	}
	result = buf.Bytes()
	return
}
