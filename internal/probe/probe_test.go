package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProberHealthy(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res := NewHTTPProber().Probe(context.Background(), srv.URL, time.Second)

	assert.True(t, res.Healthy)
	require.NotNil(t, res.StatusCode)
	assert.Equal(t, http.StatusNoContent, *res.StatusCode)
	assert.Equal(t, http.MethodHead, method)
}

func TestHTTPProberFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := NewHTTPProber().Probe(context.Background(), srv.URL+"/old", time.Second)

	assert.True(t, res.Healthy)
	assert.Equal(t, http.StatusOK, *res.StatusCode)
}

func TestHTTPProberErrorStatus(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		res := NewHTTPProber().Probe(context.Background(), srv.URL, time.Second)
		srv.Close()

		assert.False(t, res.Healthy, "status %d", code)
		require.NotNil(t, res.StatusCode)
		assert.Equal(t, code, *res.StatusCode)
	}
}

func TestHTTPProberTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	res := NewHTTPProber().Probe(context.Background(), srv.URL, 50*time.Millisecond)

	assert.False(t, res.Healthy)
	assert.Nil(t, res.StatusCode)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPProberInvalidURL(t *testing.T) {
	res := NewHTTPProber().Probe(context.Background(), "://not a url", time.Second)
	assert.False(t, res.Healthy)
	assert.Nil(t, res.StatusCode)
}

func TestTemplatePreviewer(t *testing.T) {
	p := NewTemplatePreviewer("https://image.thum.io/get/width/1200/crop/800/{url}")
	assert.Equal(t, "https://image.thum.io/get/width/1200/crop/800/https://example.com", p.PreviewURL("https://example.com"))

	appended := NewTemplatePreviewer("https://shots.example/?u=")
	assert.Equal(t, "https://shots.example/?u=https://example.com", appended.PreviewURL("https://example.com"))
}
