// Package fetcher retrieves pages and images over HTTP with browser-like
// headers, and decodes inline data URIs.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
	"github.com/vincent-petithory/dataurl"

	"imgtext/internal/config"
	"imgtext/internal/domain"
)

const (
	acceptImage = "image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"
	acceptPage  = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8"
)

var errBodyTooLarge = errors.New("response body exceeds size limit")

// Client implements port.ImageFetcher and port.PageFetcher.
type Client struct {
	http           *http.Client
	userAgent      string
	acceptLanguage string
	maxBody        int64
}

// NewClient creates a Client enforcing the timeout, redirect and size limits of cfg.
func NewClient(cfg *config.FetchConfig) *Client {
	return NewClientWithTransport(cfg, nil)
}

// NewClientWithTransport creates a Client using rt for outbound requests (for testing).
func NewClientWithTransport(cfg *config.FetchConfig, rt http.RoundTripper) *Client {
	maxRedirects := cfg.MaxRedirects
	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: rt,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		maxBody:        cfg.MaxBodyBytes(),
	}
}

// FetchImage retrieves the bytes behind ref. Data URIs are decoded locally.
func (c *Client) FetchImage(ctx context.Context, ref domain.ImageReference) (*domain.RawImage, error) {
	if ref.IsDataURI() {
		return decodeDataURI(ref)
	}

	target, err := url.Parse(ref.String())
	if err != nil {
		return nil, &FetchError{URL: ref.String(), Err: err}
	}

	header := http.Header{}
	header.Set("Accept", acceptImage)
	header.Set("Referer", target.Scheme+"://"+target.Host)

	body, contentType, err := c.get(ctx, target, header)
	if err != nil {
		return nil, err
	}

	return &domain.RawImage{
		Bytes:       body,
		ContentType: contentType,
		Detected:    mimetype.Detect(body).String(),
	}, nil
}

// FetchPage retrieves the raw HTML of pageURL.
func (c *Client) FetchPage(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	header := http.Header{}
	header.Set("Accept", acceptPage)

	body, _, err := c.get(ctx, pageURL, header)
	return body, err
}

func (c *Client) get(ctx context.Context, target *url.URL, header http.Header) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, "", &FetchError{URL: target.String(), Err: err}
	}
	req.Header = header
	req.Header.Set("User-Agent", c.userAgent)
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &FetchError{URL: target.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", &FetchError{URL: target.String(), StatusCode: resp.StatusCode}
	}

	reader := io.Reader(resp.Body)
	if c.maxBody > 0 {
		reader = io.LimitReader(resp.Body, c.maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", &FetchError{URL: target.String(), Err: err}
	}
	if c.maxBody > 0 && int64(len(body)) > c.maxBody {
		return nil, "", &FetchError{URL: target.String(), Err: errBodyTooLarge}
	}

	log.Debugf("fetcher.get: %s -> %d bytes (%s)", target, len(body), resp.Header.Get("Content-Type"))
	return body, resp.Header.Get("Content-Type"), nil
}

func decodeDataURI(ref domain.ImageReference) (*domain.RawImage, error) {
	parsed, err := dataurl.DecodeString(ref.String())
	if err != nil {
		return nil, &FetchError{URL: truncate(ref.String(), 64), Err: err}
	}
	contentType := parsed.MediaType.ContentType()
	if strings.EqualFold(contentType, "text/plain") {
		// dataurl defaults a missing media type to text/plain.
		contentType = ""
	}
	return &domain.RawImage{
		Bytes:       parsed.Data,
		ContentType: contentType,
		Detected:    mimetype.Detect(parsed.Data).String(),
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
