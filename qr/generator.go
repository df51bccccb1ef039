package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Size bounds for rendered codes, in pixels
const (
	MinSize     = 100
	MaxSize     = 400
	DefaultSize = 200
)

var ErrEmptyPayload = errors.New("qr payload is empty")

// Preset is a ready-made payload offered next to the generator
type Preset struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Presets returns the example payloads shown with the generator
func Presets() []Preset {
	return []Preset{
		{Label: "Product Batch", Data: "BATCH-TOMATO-001"},
		{Label: "Farm Location", Data: "Farm A, California, USA"},
		{Label: "Harvest Date", Data: "2024-01-15"},
		{Label: "Blockchain Hash", Data: "0x1234567890abcdef..."},
	}
}

// Generator renders text into PNG QR codes
type Generator struct {
	level qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{level: qrcode.Medium}
}

// ClampSize maps a requested size into [MinSize, MaxSize]; zero or less means DefaultSize
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// Generate encodes text as typed into a size x size PNG. Blank text is refused.
func (g *Generator) Generate(text string, size int) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPayload
	}

	png, err := qrcode.Encode(text, g.level, ClampSize(size))
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}

// DataURL wraps PNG bytes for inline use
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
