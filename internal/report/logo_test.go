package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeLogo(t *testing.T) {
	t.Parallel()

	raw := solidPNG(t, 4, 2, color.Black)

	if _, err := DecodeLogo("  "); !errors.Is(err, ErrNoLogo) {
		t.Fatalf("expected ErrNoLogo, got %v", err)
	}

	img, err := DecodeLogo("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("decode data URL: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	if _, err := DecodeLogo(base64.RawStdEncoding.EncodeToString(raw)); err != nil {
		t.Fatalf("decode bare base64: %v", err)
	}

	for _, corrupt := range []string{"data:image/png;base64,AAAA", "data:image/png,plain", "%%%"} {
		_, err := DecodeLogo(corrupt)
		var logoErr *LogoError
		if !errors.As(err, &logoErr) {
			t.Fatalf("DecodeLogo(%q) error = %v, want *LogoError", corrupt, err)
		}
	}
}

func TestEncodeLogo(t *testing.T) {
	t.Parallel()

	raw := solidPNG(t, 2, 2, color.White)
	url, err := EncodeLogo(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("EncodeLogo: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data URL prefix: %q", url[:30])
	}
	if _, err := DecodeLogo(url); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	if _, err := EncodeLogo(strings.NewReader("not an image")); err == nil {
		t.Fatalf("expected error for non-image upload")
	}
}

func TestPrepareLogoFitsSquare(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 255, A: 255}
	src, err := png.Decode(bytes.NewReader(solidPNG(t, 100, 50, red)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	out, err := PrepareLogo(src, 64)
	if err != nil {
		t.Fatalf("PrepareLogo: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected output bounds %v", img.Bounds())
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("corner should be white background, got %v %v %v", r>>8, g>>8, b>>8)
	}
	r, g, _, _ = img.At(32, 32).RGBA()
	if r>>8 < 200 || g>>8 > 50 {
		t.Fatalf("centre should be red, got r=%v g=%v", r>>8, g>>8)
	}
}
