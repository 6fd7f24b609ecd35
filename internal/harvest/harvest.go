// Package harvest extracts candidate document links from source listing
// pages.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/payroll-radar/internal/fetch"
	"github.com/jonathan/payroll-radar/internal/types"
)

// Fetcher retrieves pages. *fetch.Client satisfies this.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// RenderFunc renders a page in a headless browser. fetch.RenderedHTML
// satisfies this.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Error represents a failure to harvest a source. The scanner treats it as
// a per-source warning, never as a scan abort.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("harvest error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("harvest error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Harvester fetches a source page and extracts its anchors as candidates.
type Harvester struct {
	fetcher Fetcher
	render  RenderFunc
}

// New creates a Harvester. render may be nil when no source needs browser
// rendering.
func New(fetcher Fetcher, render RenderFunc) *Harvester {
	return &Harvester{fetcher: fetcher, render: render}
}

// Harvest fetches the source page and returns (text, absolute URL) pairs
// for every anchor worth considering. Relative hrefs are resolved against
// the source's BaseURL when configured, otherwise against the page URL.
// Anchors pointing off-domain are dropped unless they are direct document
// files; fragment-only and script pseudo-protocol hrefs are dropped always.
func (h *Harvester) Harvest(ctx context.Context, src types.Source) ([]types.Candidate, error) {
	html, err := h.pageHTML(ctx, src)
	if err != nil {
		return nil, err
	}

	base := src.URL
	if src.BaseURL != "" {
		base = src.BaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, &Error{Source: src.URL, Message: "invalid base URL", Cause: err}
	}
	pageHost := baseURL.Host
	if pageURL, perr := url.Parse(src.URL); perr == nil && pageURL.Host != "" {
		pageHost = pageURL.Host
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Source: src.URL, Message: "failed to parse HTML", Cause: err}
	}

	var candidates []types.Candidate
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || hasPseudoProtocol(href) {
			return
		}

		text := strings.Join(strings.Fields(s.Text()), " ")
		if len(text) < 5 {
			return
		}

		hrefURL, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(hrefURL)
		resolved.Fragment = ""
		absolute := resolved.String()

		// Listing pages link out to news portals and sister agencies;
		// only direct document files are worth following off-domain.
		if resolved.Host != pageHost && !strings.HasSuffix(strings.ToLower(resolved.Path), ".pdf") {
			return
		}

		if seen[absolute] {
			return
		}
		seen[absolute] = true

		candidates = append(candidates, types.Candidate{
			Text:   text,
			URL:    absolute,
			Source: src,
		})
	})

	return candidates, nil
}

func (h *Harvester) pageHTML(ctx context.Context, src types.Source) (string, error) {
	if src.UseBrowser && h.render != nil {
		html, err := h.render(ctx, src.URL, 0)
		if err != nil {
			return "", &Error{Source: src.URL, Message: "browser rendering failed", Cause: err}
		}
		return html, nil
	}

	result, err := h.fetcher.Get(ctx, src.URL)
	if err != nil {
		return "", &Error{Source: src.URL, Message: "page fetch failed", Cause: err}
	}
	return result.HTML(), nil
}

func hasPseudoProtocol(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:")
}
