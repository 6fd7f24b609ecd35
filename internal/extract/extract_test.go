package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/payroll-radar/internal/fetch"
)

func newTestExtractor() *Extractor {
	return New(fetch.NewClient(&fetch.Options{OriginDelay: time.Millisecond}))
}

func TestExtract_HTMLStripsChrome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><script>trackPageView()</script><style>body { color: red }</style></head>
<body>
<nav>Main navigation menu with many links</nav>
<header>Agency portal header</header>
<main>
<h1>Circular No. 45/2025</h1>
<p>Employers must apply the revised PAYE rates from 1 February 2025.</p>
</main>
<footer>Copyright notice and footer links</footer>
</body>
</html>`))
	}))
	defer server.Close()

	text, ok := newTestExtractor().Extract(context.Background(), server.URL+"/circular")
	require.True(t, ok)
	assert.Contains(t, text, "Circular No. 45/2025")
	assert.Contains(t, text, "revised PAYE rates")
	assert.NotContains(t, text, "navigation menu")
	assert.NotContains(t, text, "portal header")
	assert.NotContains(t, text, "footer links")
	assert.NotContains(t, text, "trackPageView")
}

func TestExtract_HTMLTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("wage regulation text ", 500) + "</p></body></html>"))
	}))
	defer server.Close()

	text, ok := newTestExtractor().Extract(context.Background(), server.URL)
	require.True(t, ok)
	assert.Len(t, text, MaxContentLength)
}

func TestExtract_EmptyPageIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Loading...</p></body></html>`))
	}))
	defer server.Close()

	text, ok := newTestExtractor().Extract(context.Background(), server.URL)
	assert.False(t, ok)
	assert.Equal(t, SentinelNoText, text)
	assert.True(t, IsSentinel(text))
}

func TestExtract_HTTPErrorIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	text, ok := newTestExtractor().Extract(context.Background(), server.URL+"/missing.pdf")
	assert.False(t, ok)
	assert.Equal(t, "[HTTP 404]", text)
	assert.True(t, IsSentinel(text))
}

func TestExtract_UnreachableHostIsSentinel(t *testing.T) {
	// Reserved TEST-NET address; nothing listens there.
	client := fetch.NewClient(&fetch.Options{Timeout: 200 * time.Millisecond, OriginDelay: time.Millisecond})

	text, ok := New(client).Extract(context.Background(), "http://192.0.2.1/doc.pdf")
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(text, "[fetch error:"))
	assert.True(t, IsSentinel(text))
}

func TestExtract_CorruptPDFIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 truncated garbage that is not a valid document body"))
	}))
	defer server.Close()

	text, ok := newTestExtractor().Extract(context.Background(), server.URL+"/broken.pdf")
	assert.False(t, ok)
	assert.True(t, IsSentinel(text))
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        bool
	}{
		{"pdf extension", "https://example.gov/doc.pdf", "text/html", true},
		{"pdf extension with query", "https://example.gov/doc.PDF?v=2", "", true},
		{"pdf content type", "https://example.gov/download?id=7", "application/pdf", true},
		{"html page", "https://example.gov/doc.html", "text/html", false},
		{"pdf in path only", "https://example.gov/pdf/listing", "text/html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPDF(tt.url, tt.contentType))
		})
	}
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel("[no extractable text]"))
	assert.True(t, IsSentinel("[HTTP 500]"))
	assert.False(t, IsSentinel("Circular No. 45/2025 full text"))
	assert.False(t, IsSentinel(""))
}
