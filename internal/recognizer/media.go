package recognizer

import (
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"
)

// providerMediaTypes are the raster types vision APIs accept in a base64 block.
var providerMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SniffMediaType returns the media type of the base64 image payload when it
// is one providers accept, and fallback otherwise.
func SniffMediaType(imageBase64, fallback string) string {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil || len(data) == 0 {
		return fallback
	}
	if mt := mimetype.Detect(data).String(); providerMediaTypes[mt] {
		return mt
	}
	return fallback
}
