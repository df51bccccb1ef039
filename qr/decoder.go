package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

var (
	ErrCameraUnavailable = errors.New("unable to read camera frame")
	ErrNoCode            = errors.New("no qr code found in frame")
)

// Decoder extracts the text of a QR code from an image
type Decoder interface {
	Decode(img image.Image) (string, error)
}

// ZXingDecoder decodes QR codes with gozxing
type ZXingDecoder struct{}

func (ZXingDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCode, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCode, err)
	}
	return result.GetText(), nil
}

// DecodeFrame turns raw frame bytes into an image
func DecodeFrame(frame []byte) (image.Image, error) {
	if len(frame) == 0 {
		return nil, ErrCameraUnavailable
	}
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	return img, nil
}
