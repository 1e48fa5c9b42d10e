package qrcode

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Creator renders qr code images placed into filled documents.
type Creator struct{}

// NewCreator ...
func NewCreator() *Creator {
	return &Creator{}
}

// Create returns png bytes of a qr code for payload, size pixels a side.
func (c *Creator) Create(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, size)
}
