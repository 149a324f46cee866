// Package webpage fetches a URL and reduces it to plain text for use as LLM
// context.
package webpage

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// maxContentBytes caps extracted text so a single oversized page cannot blow
// out a prompt.
const maxContentBytes = 20000

// Fetcher retrieves page text.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Option configures the fetcher.
type Option func(*httpFetcher)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *httpFetcher) {
		f.http = hc
	}
}

type httpFetcher struct {
	http *http.Client
}

// NewFetcher creates a page fetcher.
func NewFetcher(opts ...Option) Fetcher {
	f := &httpFetcher{
		http: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// FetchText downloads the page and returns its visible text with scripts and
// styles stripped, capped at maxContentBytes.
func (f *httpFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrapf(err, "webpage: create request %s", url)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; leadgen-cli/1.0)")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "webpage: fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("webpage: unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", eris.Wrapf(err, "webpage: parse %s", url)
	}

	doc.Find("script, style, noscript, iframe").Remove()
	text := normalizeWhitespace(doc.Find("body").Text())
	if len(text) > maxContentBytes {
		text = text[:maxContentBytes]
	}
	return text, nil
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
