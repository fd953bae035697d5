package extractor

// SourceAttribute names an <img> attribute that may carry an image location.
type SourceAttribute struct {
	Name string
	// Multi marks srcset-style values: comma-separated candidates, each
	// optionally followed by a width or density descriptor.
	Multi bool
}

// DefaultSourceAttributes lists the attributes probed on every image, in
// order. Lazy-load variants used by WordPress and similar CMSs sit between the
// plain src and the responsive srcset attributes.
var DefaultSourceAttributes = []SourceAttribute{
	{Name: "src"},
	{Name: "data-src"},
	{Name: "data-lazy-src"},
	{Name: "data-original"},
	{Name: "data-lazy"},
	{Name: "data-original-src"},
	{Name: "data-fallback-src"},
	{Name: "data-srcset", Multi: true},
	{Name: "srcset", Multi: true},
}
