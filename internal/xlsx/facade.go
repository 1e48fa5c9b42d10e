package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geoirb/doc-templater/internal/values"
)

type matcher interface {
	Find(str string) []string
	Replace(str string, lookup func(name string) (value string, ok bool)) string
}

type qrcode interface {
	Create(str string, size int) ([]byte, error)
}

// Facade for xlsx templates: placeholder extraction and filling over a
// parsed workbook.
type Facade struct {
	matcher matcher
	qrcode  qrcode
}

func NewFacade(
	matcher matcher,
	qrcode qrcode,
) *Facade {
	return &Facade{
		matcher: matcher,
		qrcode:  qrcode,
	}
}

// Extract returns the distinct placeholder names found in cell values
// and formulas, in first-seen order. Traversal is row-major per sheet,
// so the result is reproducible for a given workbook.
func (s *Facade) Extract(content []byte) (names []string, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrWorkbookParse, err)
		return
	}

	seen := make(map[string]struct{})
	add := func(found []string) {
		for _, name := range found {
			if _, isExist := seen[name]; isExist {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	err = s.walk(f, func(_ *excelize.File, _, _ string, value, formula string) error {
		if value != "" {
			add(s.matcher.Find(value))
		}
		if formula != "" {
			add(s.matcher.Find(formula))
		}
		return nil
	})
	return
}

// FillIn replaces every known placeholder in cell values and formulas
// by payload and returns the workbook serialized to a fresh buffer.
// Unknown placeholders stay verbatim. Substituted rich text collapses
// to a plain string.
func (s *Facade) FillIn(ctx context.Context, content []byte, payload map[string]interface{}) (result []byte, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrWorkbookParse, err)
		return
	}

	lookup := func(name string) (string, bool) {
		value, isExist := payload[name]
		if !isExist {
			return "", false
		}
		return values.String(value), true
	}

	err = s.walk(f, func(f *excelize.File, sheet, axis string, value, formula string) error {
		if value != "" {
			if handled, err := s.qrCodeCell(f, sheet, axis, value, payload); handled || err != nil {
				return err
			}
			if substituted := s.matcher.Replace(value, lookup); substituted != value {
				if err := f.SetCellStr(sheet, axis, substituted); err != nil {
					return err
				}
			}
		}
		if formula != "" {
			if substituted := s.matcher.Replace(formula, lookup); substituted != formula {
				if err := f.SetCellFormula(sheet, axis, substituted); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return
	}

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		err = fmt.Errorf("serialize workbook: %s", err)
		return
	}
	result = buf.Bytes()
	return
}

type cellFunc func(f *excelize.File, sheet, axis string, value, formula string) error

// walk visits every non-empty cell of every sheet in row-major order.
func (s *Facade) walk(f *excelize.File, fn cellFunc) error {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %s", sheet, err)
		}
		for rowIdx := 0; rowIdx < len(rows); rowIdx++ {
			for colIdx := 0; colIdx < len(rows[rowIdx]); colIdx++ {
				axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return err
				}
				formula, _ := f.GetCellFormula(sheet, axis)
				if rows[rowIdx][colIdx] == "" && formula == "" {
					continue
				}
				if err = fn(f, sheet, axis, rows[rowIdx][colIdx], formula); err != nil {
					return fmt.Errorf("cell %s!%s: %s", sheet, axis, err)
				}
			}
		}
	}
	return nil
}

// qrCodeCell renders a qr code image into the cell when the cell is a
// single placeholder resolving to a qrcode value descriptor.
func (s *Facade) qrCodeCell(f *excelize.File, sheet, axis, value string, payload map[string]interface{}) (handled bool, err error) {
	names := s.matcher.Find(value)
	if len(names) != 1 {
		return
	}
	rest := s.matcher.Replace(value, func(string) (string, bool) { return "", true })
	if strings.TrimSpace(rest) != "" {
		return
	}
	descriptor, ok := payload[names[0]].(map[string]interface{})
	if !ok || descriptor["_type"] != qrCodeValueType {
		return
	}
	str, ok := descriptor["content"].(string)
	if !ok {
		return false, fmt.Errorf("qrcode value %s: content must be a string", names[0])
	}
	size := defaultQRCodeSize
	if v, ok := descriptor["size"].(float64); ok && v > 0 {
		size = int(v)
	}

	data, err := s.qrcode.Create(str, size)
	if err != nil {
		return false, fmt.Errorf("qrcode generate: %s", err)
	}
	if err = f.AddPictureFromBytes(sheet, axis, "", "", ".png", data); err != nil {
		return
	}
	err = f.SetCellStr(sheet, axis, "")
	handled = true
	return
}
