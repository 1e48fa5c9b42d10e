package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnavailable the office converter binary cannot be run.
	ErrUnavailable = errors.New("pdf conversion service is unavailable")
)

// Converter turns office documents into pdf through a headless
// LibreOffice binary.
type Converter struct {
	binary  string
	timeout time.Duration
}

// NewConverter ...
func NewConverter(binary string, timeout time.Duration) *Converter {
	return &Converter{
		binary:  binary,
		timeout: timeout,
	}
}

// Available probes the converter binary.
func (c *Converter) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return exec.CommandContext(ctx, c.binary, "--version").Run() == nil
}

// Convert writes content to a scratch dir, runs the converter and
// returns the produced pdf.
func (c *Converter) Convert(ctx context.Context, content []byte, filename string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "doc-templater-pdf-")
	if err != nil {
		return nil, fmt.Errorf("convert to pdf: %s", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, filepath.Base(filename))
	if err = os.WriteFile(input, content, 0o600); err != nil {
		return nil, fmt.Errorf("convert to pdf: %s", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, "--headless", "--convert-to", "pdf", "--outdir", dir, input)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, err, strings.TrimSpace(string(out)))
	}

	result, err := os.ReadFile(strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf")
	if err != nil {
		return nil, fmt.Errorf("convert to pdf: read result: %s", err)
	}
	return result, nil
}
