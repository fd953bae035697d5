package domain

import "errors"

var (
	ErrMissingCredential       = errors.New("api key is required")
	ErrMissingTarget           = errors.New("website url is required")
	ErrInvalidTarget           = errors.New("website url is not a valid absolute http(s) url")
	ErrMissingImageData        = errors.New("image data is required")
	ErrInvalidImageData        = errors.New("image data is not valid base64")
	ErrNoImagesFound           = errors.New("no images found on page")
	ErrPageFetchFailed         = errors.New("failed to fetch page")
	ErrRecognitionFailed       = errors.New("text recognition failed")
	ErrRateLimited             = errors.New("recognition provider rate limited")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrEmptyExport             = errors.New("no results to export")
)
