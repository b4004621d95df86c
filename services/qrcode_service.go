// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap the encoder.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateVenueQRCode creates a PNG QR code pointing at a venue page,
// for hosts to print and share.
func GenerateVenueQRCode(venueURL string, size int, encode QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if venueURL == "" {
		return nil, errors.New("venue URL is required")
	}

	png, err := encode(venueURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
