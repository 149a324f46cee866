// Package wikipedia wraps the English Wikipedia MediaWiki API for company
// lookups. Articles are fetched as raw wikitext so callers can parse the
// infobox directly.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// ErrNotFound is returned when no article matches the search term.
var ErrNotFound = errors.New("wikipedia: no matching article")

// Client looks up articles by free-text search.
type Client interface {
	FindArticle(ctx context.Context, term string) (*Article, error)
}

// Article is the lead section of a Wikipedia article in raw wikitext.
type Article struct {
	Title    string
	Wikitext string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Wikipedia API client. No API key is required.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type revisionsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Revisions []struct {
				Slots map[string]struct {
					Content string `json:"*"`
				} `json:"slots"`
				Content string `json:"*"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// FindArticle searches for the term and fetches the lead section of the best
// match. Returns ErrNotFound when the search has no hits.
func (c *httpClient) FindArticle(ctx context.Context, term string) (*Article, error) {
	title, err := c.bestTitle(ctx, term)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"prop":          {"revisions"},
		"rvprop":        {"content"},
		"rvsection":     {"0"},
		"rvslots":       {"main"},
		"titles":        {title},
		"formatversion": {"1"},
	}
	var rev revisionsResponse
	if err := c.get(ctx, params, &rev); err != nil {
		return nil, err
	}

	for _, page := range rev.Query.Pages {
		if len(page.Revisions) == 0 {
			continue
		}
		r := page.Revisions[0]
		content := r.Content
		if main, ok := r.Slots["main"]; ok && main.Content != "" {
			content = main.Content
		}
		if content == "" {
			continue
		}
		return &Article{Title: page.Title, Wikitext: content}, nil
	}
	return nil, ErrNotFound
}

func (c *httpClient) bestTitle(ctx context.Context, term string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {term},
		"srlimit":  {"1"},
	}
	var sr searchResponse
	if err := c.get(ctx, params, &sr); err != nil {
		return "", err
	}
	if len(sr.Query.Search) == 0 {
		return "", ErrNotFound
	}
	return sr.Query.Search[0].Title, nil
}

func (c *httpClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "wikipedia: create request")
	}
	req.Header.Set("User-Agent", "leadgen-cli/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "wikipedia: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "wikipedia: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("wikipedia: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "wikipedia: unmarshal response")
	}
	return nil
}
