// Package resolver turns image source candidates found in markup into
// absolute, fetchable references.
package resolver

import (
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"imgtext/internal/domain"
)

// Resolve converts candidate into an absolute reference against base.
//
// Data URIs are returned verbatim. Root-relative candidates ("/x.jpg") are
// resolved against the origin of base, everything else against base itself.
// The second return value is false when the candidate is empty or cannot be
// parsed; callers skip it.
func Resolve(candidate string, base *url.URL) (domain.ImageReference, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || base == nil {
		return "", false
	}
	if strings.HasPrefix(candidate, domain.DataURIPrefix) {
		return domain.ImageReference(candidate), true
	}

	ref, err := url.Parse(candidate)
	if err != nil {
		log.Warnf("resolver.Resolve: unparseable candidate %q: %v", candidate, err)
		return "", false
	}

	against := base
	if strings.HasPrefix(candidate, "/") {
		against = Origin(base)
	}

	resolved := against.ResolveReference(ref)
	if resolved.Scheme == "" || (resolved.Host == "" && resolved.Opaque == "") {
		log.Warnf("resolver.Resolve: candidate %q did not resolve to an absolute url", candidate)
		return "", false
	}
	return domain.ImageReference(resolved.String()), true
}

// Origin returns the scheme and host of u with path, query and fragment dropped.
func Origin(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

// ParseTarget parses a page URL supplied by a caller. Only absolute http and
// https URLs are accepted.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, domain.ErrInvalidTarget
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.ErrInvalidTarget
	}
	return u, nil
}
