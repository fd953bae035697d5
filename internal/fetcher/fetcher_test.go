package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgtext/internal/config"
	"imgtext/internal/domain"
	"imgtext/internal/fetcher"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func testConfig() *config.FetchConfig {
	return &config.FetchConfig{
		Timeout:        2 * time.Second,
		MaxRedirects:   2,
		UserAgent:      config.DefaultUserAgent,
		AcceptLanguage: "ja,en-US;q=0.9,en;q=0.8",
		MaxBodyMB:      1,
	}
}

func TestFetchImage_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	}))
	defer server.Close()

	c := fetcher.NewClient(testConfig())
	img, err := c.FetchImage(context.Background(), domain.ImageReference(server.URL+"/deep/img.png"))

	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Bytes)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "image/png", img.Detected)
	assert.Equal(t, config.DefaultUserAgent, got.Get("User-Agent"))
	assert.Contains(t, got.Get("Accept"), "image/svg+xml")
	assert.Equal(t, "ja,en-US;q=0.9,en;q=0.8", got.Get("Accept-Language"))
	assert.Equal(t, server.URL, got.Get("Referer"))
}

func TestFetchImage_MissingContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`))
	}))
	defer server.Close()

	img, err := fetcher.NewClient(testConfig()).FetchImage(context.Background(), domain.ImageReference(server.URL+"/logo"))

	require.NoError(t, err)
	assert.Empty(t, img.ContentType)
	assert.Equal(t, "image/svg+xml", img.Detected)
}

func TestFetchImage_Non2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	ref := domain.ImageReference(server.URL + "/missing.jpg")
	_, err := fetcher.NewClient(testConfig()).FetchImage(context.Background(), ref)

	var fetchErr *fetcher.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, ref.String(), fetchErr.URL)
}

func TestFetchImage_FollowsBoundedRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/hop1", func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/hop2", http.StatusFound) })
	mux.HandleFunc("/hop2", func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/final", http.StatusFound) })
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/loop", http.StatusFound) })
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := fetcher.NewClient(testConfig())

	img, err := c.FetchImage(context.Background(), domain.ImageReference(server.URL+"/hop1"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Bytes)

	_, err = c.FetchImage(context.Background(), domain.ImageReference(server.URL+"/loop"))
	assert.Error(t, err)
}

func TestFetchImage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	_, err := fetcher.NewClient(cfg).FetchImage(context.Background(), domain.ImageReference(server.URL+"/slow.jpg"))

	var fetchErr *fetcher.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
}

func TestFetchImage_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, (1<<20)+10))
	}))
	defer server.Close()

	_, err := fetcher.NewClient(testConfig()).FetchImage(context.Background(), domain.ImageReference(server.URL+"/huge.jpg"))
	assert.Error(t, err)
}

func TestFetchImage_DataURI(t *testing.T) {
	img, err := fetcher.NewClient(testConfig()).FetchImage(context.Background(),
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciLz4=")

	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", img.ContentType)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`, string(img.Bytes))
}

func TestFetchImage_BadDataURI(t *testing.T) {
	_, err := fetcher.NewClient(testConfig()).FetchImage(context.Background(), "data:image/png;base64")
	assert.Error(t, err)
}

func TestFetchPage(t *testing.T) {
	var accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html><img src='/a.png'></html>"))
	}))
	defer server.Close()

	pageURL, _ := url.Parse(server.URL + "/page")
	body, err := fetcher.NewClient(testConfig()).FetchPage(context.Background(), pageURL)

	require.NoError(t, err)
	assert.Contains(t, string(body), "/a.png")
	assert.Contains(t, accept, "text/html")
}
