// Package extract turns a document URL into bounded plain text for
// classification. Every failure mode degrades to a sentinel string rather
// than an error: the classifier falls back to title-only mode when it sees
// one.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/payroll-radar/internal/fetch"
)

// Extraction limits.
const (
	// MaxPDFPages bounds how many pages of a PDF are read. The operative
	// content of a circular is on the first pages.
	MaxPDFPages = 3
	// MaxContentLength truncates extracted text before it reaches the
	// classifier, bounding prompt size.
	MaxContentLength = 4000
	// MinTextLength below which a PDF is assumed to be a scanned image
	// with no text layer.
	MinTextLength = 50
)

// SentinelNoText marks a document with no extractable text layer.
const SentinelNoText = "[no extractable text]"

// IsSentinel reports whether s is a degraded-extraction marker rather than
// real content. All sentinels are bracket-prefixed.
func IsSentinel(s string) bool {
	return strings.HasPrefix(s, "[")
}

// Fetcher retrieves documents. *fetch.Client satisfies this.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// Extractor fetches a document and flattens it to plain text.
type Extractor struct {
	fetcher Fetcher
}

// New creates an Extractor.
func New(fetcher Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract fetches url and returns (text, ok). ok is false when the returned
// text is a sentinel. The branch between the PDF and markup paths follows
// the URL suffix and the declared content type.
func (e *Extractor) Extract(ctx context.Context, url string) (string, bool) {
	result, err := e.fetcher.Get(ctx, url)
	if err != nil {
		if result != nil && result.StatusCode != 0 {
			return fmt.Sprintf("[HTTP %d]", result.StatusCode), false
		}
		return fmt.Sprintf("[fetch error: %s]", clip(err.Error(), 80)), false
	}

	if isPDF(url, result.ContentType) {
		return extractPDF(result.Body)
	}
	return extractHTML(result.HTML())
}

func isPDF(url, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	path := strings.ToLower(url)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(path, ".pdf")
}

// extractHTML strips chrome elements and flattens the page to text.
func extractHTML(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Sprintf("[page error: %s]", clip(err.Error(), 80)), false
	}

	doc.Find("script, style, nav, footer, header, aside, menu, noscript").Remove()

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) < MinTextLength {
		return SentinelNoText, false
	}
	return clip(text, MaxContentLength), true
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
