// Package normalizer converts images the recognition capability cannot take
// (SVG) into JPEG, and passes everything else through.
package normalizer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/url"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"imgtext/internal/config"
	"imgtext/internal/domain"
)

const maxDimension = 4096

var errNotSVG = errors.New("payload is not an svg document")

// ErrSVGText is returned for SVGs with text content. Such an item fails
// instead of being reported as an image without text.
var ErrSVGText = errors.New("svg contains text elements the rasterizer cannot render")

// textElement matches the SVG elements that carry glyphs. The rasterizer
// drops them silently, which would turn a text-only image into a blank one.
var textElement = regexp.MustCompile(`(?i)<(?:[a-z0-9_-]+:)?(?:text|tspan|textpath)[\s>/]`)

// TranscodeError reports an SVG that could not be rasterized.
type TranscodeError struct {
	URL string
	Err error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcoding %s: %v", e.URL, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// Normalizer implements port.ImageNormalizer.
type Normalizer struct {
	quality     int
	defaultSize int
}

// New creates a Normalizer from cfg. Zero values fall back to quality 90 and a
// 512px canvas for SVGs without a usable viewBox.
func New(cfg *config.NormalizerConfig) *Normalizer {
	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	size := cfg.SVGDefaultSize
	if size <= 0 {
		size = 512
	}
	return &Normalizer{quality: quality, defaultSize: size}
}

// NeedsTranscode reports whether img must be rasterized before recognition.
func NeedsTranscode(img *domain.RawImage, ref domain.ImageReference) bool {
	if strings.Contains(strings.ToLower(img.ContentType), "svg") {
		return true
	}
	if strings.Contains(img.Detected, "svg") {
		return true
	}
	if ref.IsDataURI() {
		return false
	}
	u, err := url.Parse(ref.String())
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".svg")
}

// Normalize returns img unchanged unless it is an SVG, in which case it is
// rendered onto a white canvas and encoded as JPEG.
func (n *Normalizer) Normalize(img *domain.RawImage, ref domain.ImageReference) (*domain.RawImage, error) {
	if !NeedsTranscode(img, ref) {
		return img, nil
	}

	log.Debugf("normalizer.Normalize: converting svg to jpeg: %s", ref)
	out, err := n.svgToJPEG(img.Bytes)
	if err != nil {
		return nil, &TranscodeError{URL: ref.String(), Err: err}
	}
	return &domain.RawImage{Bytes: out, ContentType: "image/jpeg", Detected: "image/jpeg"}, nil
}

func (n *Normalizer) svgToJPEG(data []byte) ([]byte, error) {
	if !bytes.Contains(bytes.ToLower(data), []byte("<svg")) {
		return nil, errNotSVG
	}
	if textElement.Match(data) {
		return nil, ErrSVGText
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}

	w, h := n.canvasSize(icon.ViewBox.W, icon.ViewBox.H)
	icon.SetTarget(0, 0, float64(w), float64(h))

	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, layer, layer.Bounds())), 1)

	// JPEG has no alpha; composite over white so transparent areas stay light.
	canvas := image.NewRGBA(layer.Bounds())
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), layer, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: n.quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// canvasSize picks the raster size from the viewBox, clamped to maxDimension
// on the longer side.
func (n *Normalizer) canvasSize(vw, vh float64) (int, int) {
	if vw <= 0 || vh <= 0 {
		return n.defaultSize, n.defaultSize
	}
	scale := 1.0
	if longest := max(vw, vh); longest > maxDimension {
		scale = maxDimension / longest
	}
	w := max(1, int(vw*scale+0.5))
	h := max(1, int(vh*scale+0.5))
	return w, h
}
