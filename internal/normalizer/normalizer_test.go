package normalizer_test

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgtext/internal/config"
	"imgtext/internal/domain"
	"imgtext/internal/normalizer"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20" width="40" height="20">
  <rect x="0" y="0" width="20" height="20" fill="#ff0000"/>
</svg>`

func newNormalizer() *normalizer.Normalizer {
	return normalizer.New(&config.NormalizerConfig{JPEGQuality: 90, SVGDefaultSize: 64})
}

func TestNeedsTranscode(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		detected    string
		ref         domain.ImageReference
		want        bool
	}{
		{"svg content type", "image/svg+xml", "", "https://a.com/logo", true},
		{"svg content type with charset", "image/SVG+xml; charset=utf-8", "", "https://a.com/x", true},
		{"svg extension uppercase", "", "", "https://a.com/LOGO.SVG", true},
		{"svg extension with query", "application/octet-stream", "", "https://a.com/logo.svg?v=2", true},
		{"sniffed svg", "", "image/svg+xml", "https://a.com/icon", true},
		{"png", "image/png", "image/png", "https://a.com/a.png", false},
		{"jpeg", "image/jpeg", "image/jpeg", "https://a.com/a.jpg", false},
		{"svg only in query", "image/png", "image/png", "https://a.com/a.png?fallback=b.svg", false},
		{"png data uri", "image/png", "image/png", "data:image/png;base64,AAAA", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &domain.RawImage{ContentType: tt.contentType, Detected: tt.detected}
			assert.Equal(t, tt.want, normalizer.NeedsTranscode(img, tt.ref))
		})
	}
}

func TestNormalize_PassesRasterThrough(t *testing.T) {
	in := &domain.RawImage{Bytes: []byte{1, 2, 3}, ContentType: "image/png", Detected: "image/png"}

	out, err := newNormalizer().Normalize(in, "https://a.com/a.png")

	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestNormalize_SVGBecomesJPEGOnWhite(t *testing.T) {
	in := &domain.RawImage{Bytes: []byte(redSquare), ContentType: "image/svg+xml"}

	out, err := newNormalizer().Normalize(in, "https://a.com/logo.svg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.ContentType)

	decoded, err := jpeg.Decode(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), decoded.Bounds())

	// Left half is the red rect; right half was transparent and must be white.
	r, g, b, _ := decoded.At(5, 10).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(60))
	assert.Less(t, b>>8, uint32(60))

	r, g, b, _ = decoded.At(35, 10).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestNormalize_SVGWithoutViewBoxUsesDefaultSize(t *testing.T) {
	in := &domain.RawImage{Bytes: []byte(`<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="4"/></svg>`)}

	out, err := newNormalizer().Normalize(in, "https://a.com/dot.svg")
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}

func TestNormalize_BadSVGIsTranscodeError(t *testing.T) {
	for name, payload := range map[string]string{
		"not svg":   "hello world",
		"malformed": `<svg xmlns="http://www.w3.org/2000/svg"><rect </svg`,
	} {
		t.Run(name, func(t *testing.T) {
			in := &domain.RawImage{Bytes: []byte(payload), ContentType: "image/svg+xml"}

			_, err := newNormalizer().Normalize(in, "https://a.com/bad.svg")

			var tErr *normalizer.TranscodeError
			require.True(t, errors.As(err, &tErr))
			assert.Equal(t, "https://a.com/bad.svg", tErr.URL)
		})
	}
}

func TestNormalize_SVGWithTextIsTranscodeError(t *testing.T) {
	for name, payload := range map[string]string{
		"text only": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 40">
  <text x="10" y="30" font-size="24">SALE 50% OFF</text>
</svg>`,
		"text with shapes": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 40">
  <rect width="200" height="40" fill="#eee"/>
  <text x="10" y="30"><tspan>営業中</tspan></text>
</svg>`,
		"prefixed text": `<svg:svg xmlns:svg="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><svg:text>A</svg:text></svg:svg>`,
	} {
		t.Run(name, func(t *testing.T) {
			in := &domain.RawImage{Bytes: []byte(payload), ContentType: "image/svg+xml"}

			out, err := newNormalizer().Normalize(in, "https://a.com/banner.svg")

			assert.Nil(t, out)
			var tErr *normalizer.TranscodeError
			require.True(t, errors.As(err, &tErr))
			assert.ErrorIs(t, err, normalizer.ErrSVGText)
		})
	}
}
