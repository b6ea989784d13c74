package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// ErrNoLogo is returned when the letterhead carries no logo at all.
var ErrNoLogo = errors.New("report: no logo configured")

// LogoError reports logo data that cannot be decoded into an image.
type LogoError struct {
	Err error
}

// Error implements the error interface.
func (e *LogoError) Error() string {
	if e == nil || e.Err == nil {
		return "report: unusable logo"
	}
	return "report: unusable logo: " + e.Err.Error()
}

// Unwrap exposes the decode failure.
func (e *LogoError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DecodeLogo decodes a logo stored as a data URL or as bare base64 text.
func DecodeLogo(data string) (image.Image, error) {
	payload := strings.TrimSpace(data)
	if payload == "" {
		return nil, ErrNoLogo
	}
	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, &LogoError{Err: errors.New("data URL without payload")}
		}
		if !strings.HasSuffix(header, ";base64") {
			return nil, &LogoError{Err: fmt.Errorf("unsupported data URL encoding %q", header)}
		}
		payload = body
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, &LogoError{Err: fmt.Errorf("decode base64: %w", err)}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &LogoError{Err: fmt.Errorf("decode image: %w", err)}
	}
	if img.Bounds().Empty() {
		return nil, &LogoError{Err: errors.New("empty image")}
	}
	return img, nil
}

// EncodeLogo reads an uploaded PNG or JPEG and returns it as a data URL.
func EncodeLogo(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", &LogoError{Err: fmt.Errorf("decode image: %w", err)}
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// PrepareLogo scales img to fit a side×side square, centres it on a white
// background and encodes the result as PNG.
func PrepareLogo(img image.Image, side int) ([]byte, error) {
	if side <= 0 {
		side = logoPixels
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, &LogoError{Err: errors.New("empty image")}
	}

	scale := float64(side) / float64(w)
	if alt := float64(side) / float64(h); alt < scale {
		scale = alt
	}
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	dc := gg.NewContext(side, side)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(scaled, (side-dw)/2, (side-dh)/2)

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}
