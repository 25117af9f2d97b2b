package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	dataURLPrefix = "data:image/png;base64,"
	imageSize     = 256
)

// Encoder renders the verification link of a ticket into a PNG QR code.
type Encoder struct {
	baseURL string
}

func NewEncoder(baseURL string) Encoder {
	return Encoder{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (e Encoder) VerifyURL(code string) string {
	return e.baseURL + "/verify/" + code
}

// DataURL returns the QR image as a data URI that can be dropped into an
// <img src>.
func (e Encoder) DataURL(code string) (string, error) {
	png, err := qrcode.Encode(e.VerifyURL(code), qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("encoding qr code for %s: %w", code, err)
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
