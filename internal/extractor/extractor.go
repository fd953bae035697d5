// Package extractor discovers image references in a parsed HTML document.
package extractor

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"imgtext/internal/domain"
	"imgtext/internal/resolver"
)

// Extractor scans documents for <img> elements, including those inside
// <noscript> fallbacks, and collects every resolvable source.
type Extractor struct {
	attrs []SourceAttribute
}

// New creates an Extractor probing DefaultSourceAttributes.
func New() *Extractor {
	return NewWithAttributes(DefaultSourceAttributes)
}

// NewWithAttributes creates an Extractor probing attrs in the given order.
func NewWithAttributes(attrs []SourceAttribute) *Extractor {
	return &Extractor{attrs: attrs}
}

// ParseDocument parses HTML the way a scripting browser would, so <noscript>
// content stays inert text.
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Extract returns the distinct image references in doc in order of first
// discovery.
func (e *Extractor) Extract(doc *goquery.Document, pageURL *url.URL) []domain.ImageReference {
	set := newOrderedSet()

	doc.Find("img, noscript").Each(func(i int, s *goquery.Selection) {
		node := s.Get(0)
		if node.DataAtom == atom.Noscript {
			e.scanNoscript(s, pageURL, set)
			return
		}
		e.scanImage(s, pageURL, set)
	})

	log.Debugf("extractor.Extract: %d distinct image references on %s", set.Len(), pageURL)
	return set.Items()
}

func (e *Extractor) scanImage(s *goquery.Selection, pageURL *url.URL, set *orderedSet) {
	for _, attr := range e.attrs {
		value, ok := s.Attr(attr.Name)
		if !ok || value == "" {
			continue
		}
		if attr.Multi {
			for _, candidate := range SplitSrcset(value) {
				addResolved(set, candidate, pageURL, attr.Name)
			}
			continue
		}
		addResolved(set, value, pageURL, attr.Name)
	}
}

// scanNoscript handles a <noscript> fallback. When the document was parsed
// with scripting enabled its content is raw markup, so it is parsed again as
// a fragment and only plain src attributes are read. Element children mean
// the images were already visited by the main selector.
func (e *Extractor) scanNoscript(s *goquery.Selection, pageURL *url.URL, set *orderedSet) {
	if s.Children().Length() > 0 {
		return
	}
	markup := s.Text()
	if !strings.Contains(markup, "<") {
		return
	}

	fragment, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		log.Warnf("extractor.scanNoscript: parsing fallback markup: %v", err)
		return
	}
	fragment.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			addResolved(set, src, pageURL, "noscript src")
		}
	})
}

func addResolved(set *orderedSet, candidate string, pageURL *url.URL, from string) {
	ref, ok := resolver.Resolve(candidate, pageURL)
	if !ok {
		return
	}
	if set.Add(ref) {
		log.Debugf("extractor: %s -> %s", from, ref)
	}
}

// SplitSrcset returns the URL token of every comma-separated entry in a
// srcset value, dropping width and density descriptors.
func SplitSrcset(value string) []string {
	var out []string
	for _, entry := range strings.Split(value, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}
