package recognizer

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultRetryAfter is assumed when a provider throttles without a usable Retry-After.
const DefaultRetryAfter = 60 * time.Second

// RateLimitError indicates a recognition provider returned HTTP 429.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. A non-positive retryAfter becomes DefaultRetryAfter.
func NewRateLimitError(provider string, err error, retryAfter time.Duration) *RateLimitError {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &RateLimitError{Provider: provider, RetryAfter: retryAfter, Err: err}
}

// ParseRetryAfter reads a Retry-After value in either delta-seconds or
// HTTP-date form. Dates in the past, empty and malformed values give 0.
func ParseRetryAfter(val string, now time.Time) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	at, err := http.ParseTime(val)
	if err != nil {
		return 0
	}
	if d := at.Sub(now); d > 0 {
		return d.Round(time.Second)
	}
	return 0
}

// ResponseError converts a non-200 provider response into an error. HTTP 429
// becomes a *RateLimitError carrying the provider's Retry-After.
func ResponseError(provider string, resp *http.Response, body []byte) error {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, resp.StatusCode, Truncate(string(body), 500))
	entry := log.WithFields(log.Fields{"provider": provider, "status": resp.StatusCode})
	if resp.StatusCode == http.StatusTooManyRequests {
		rlErr := NewRateLimitError(provider, baseErr, ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()))
		entry.Warnf("recognizer.ResponseError: throttled, retry after %s", rlErr.RetryAfter)
		return rlErr
	}
	entry.Warnf("recognizer.ResponseError: %s", Truncate(string(body), 200))
	return baseErr
}

// Truncate shortens provider error bodies for log and error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
