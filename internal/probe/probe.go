// Package probe talks to the outside world on behalf of an App: liveness
// checks against its url and preview-image url construction.
package probe

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of one liveness probe. StatusCode is nil when no
// response was received (transport error, timeout).
type Result struct {
	Healthy    bool
	StatusCode *int
}

// Prober checks whether a url answers. Implementations must honor timeout
// and never block past it.
type Prober interface {
	Probe(ctx context.Context, url string, timeout time.Duration) Result
}

// HTTPProber issues HEAD requests, following redirects. Any status below
// 400 counts as healthy.
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{client: &http.Client{}}
}

func (p *HTTPProber) Probe(ctx context.Context, url string, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Result{}
	}
	req.Header.Set("User-Agent", "AppHub-LinkProbe/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	return Result{Healthy: code < http.StatusBadRequest, StatusCode: &code}
}

// Previewer maps an App url to a preview-image url.
type Previewer interface {
	PreviewURL(appURL string) string
}

// URLPlaceholder marks where the App url goes in a preview template.
const URLPlaceholder = "{url}"

// TemplatePreviewer substitutes the App url into a fixed screenshot-service
// template. The service is not contacted.
type TemplatePreviewer struct {
	template string
}

func NewTemplatePreviewer(template string) *TemplatePreviewer {
	if !strings.Contains(template, URLPlaceholder) {
		template += URLPlaceholder
	}
	return &TemplatePreviewer{template: template}
}

func (p *TemplatePreviewer) PreviewURL(appURL string) string {
	return strings.ReplaceAll(p.template, URLPlaceholder, appURL)
}
