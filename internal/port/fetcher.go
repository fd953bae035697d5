package port

import (
	"context"
	"net/url"

	"imgtext/internal/domain"
)

// ImageFetcher retrieves the bytes of one image reference.
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref domain.ImageReference) (*domain.RawImage, error)
}

// PageFetcher retrieves the raw HTML of a page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL *url.URL) ([]byte, error)
}

// ImageNormalizer converts an image into a form the recognizer accepts.
type ImageNormalizer interface {
	Normalize(img *domain.RawImage, ref domain.ImageReference) (*domain.RawImage, error)
}
