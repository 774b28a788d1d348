package service

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// decodeQR pulls the authenticity payload out of a QR code printed on the
// payslip. Brazilian and Portuguese digital payslips carry a verification
// code there; the payload is reported as-is, verification against the
// issuer is out of scope here.
func decodeQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}

	return result.GetText(), nil
}

// firstQRPayload tries every page and returns the first decodable QR code.
func firstQRPayload(images []image.Image) (string, bool) {
	for _, img := range images {
		if payload, err := decodeQR(img); err == nil && payload != "" {
			return payload, true
		}
	}
	return "", false
}
