package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/payroll-radar/internal/fetch"
	"github.com/jonathan/payroll-radar/internal/types"
)

func newTestClient() *fetch.Client {
	return fetch.NewClient(&fetch.Options{OriginDelay: time.Millisecond})
}

func TestHarvest_ResolvesAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		html := `<!DOCTYPE html>
<html><body>
<a href="/circulars/45-2025.pdf">Circular No. 45/2025 on PAYE rates</a>
<a href="notices/wage-order.html">Minimum wage order effective 2025</a>
<a href="#top">Back to top of this page</a>
<a href="javascript:void(0)">Open the filter panel</a>
<a href="mailto:info@agency.gov">Write to the agency</a>
<a href="/circulars/45-2025.pdf">Circular No. 45/2025 on PAYE rates</a>
<a href="https://other.example.org/news/item">External news coverage item</a>
<a href="https://other.example.org/files/notice.pdf">Gazette notice hosted elsewhere</a>
<a href="/short">abc</a>
</body></html>`
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	h := New(newTestClient(), nil)
	src := types.Source{Jurisdiction: "Kenya", Agency: "KRA", URL: server.URL + "/notices"}

	candidates, err := h.Harvest(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "Circular No. 45/2025 on PAYE rates", candidates[0].Text)
	assert.Equal(t, server.URL+"/circulars/45-2025.pdf", candidates[0].URL)
	assert.Equal(t, src, candidates[0].Source)

	// Relative href resolved against the page URL.
	assert.Equal(t, server.URL+"/notices/wage-order.html", candidates[1].URL)

	// Off-domain PDFs survive; off-domain HTML does not.
	assert.Equal(t, "https://other.example.org/files/notice.pdf", candidates[2].URL)
}

func TestHarvest_BaseURLOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<a href="docs/advisory-01.pdf">Labor Advisory No. 01 series of 2025</a>`))
	}))
	defer server.Close()

	h := New(newTestClient(), nil)
	src := types.Source{
		Jurisdiction: "Philippines",
		Agency:       "DOLE",
		URL:          server.URL + "/issuances/index.html",
		BaseURL:      server.URL + "/issuances/",
	}

	candidates, err := h.Harvest(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, server.URL+"/issuances/docs/advisory-01.pdf", candidates[0].URL)
}

func TestHarvest_StripsFragments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<a href="/notices/circular-12.html#section-2">Circular 12 of 2025 details</a>`))
	}))
	defer server.Close()

	h := New(newTestClient(), nil)
	src := types.Source{Jurisdiction: "India", Agency: "EPFO", URL: server.URL}

	candidates, err := h.Harvest(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, server.URL+"/notices/circular-12.html", candidates[0].URL)
}

func TestHarvest_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	h := New(newTestClient(), nil)
	src := types.Source{Jurisdiction: "UAE", Agency: "MOHRE", URL: server.URL}

	_, err := h.Harvest(context.Background(), src)
	require.Error(t, err)

	var harvestErr *Error
	require.ErrorAs(t, err, &harvestErr)
	assert.Equal(t, server.URL, harvestErr.Source)
}

func TestHarvest_BrowserRendering(t *testing.T) {
	rendered := `<html><body><a href="https://agency.gov/orders/wage-order-2025.pdf">Wage Order 2025 full text</a></body></html>`

	var renderedFor string
	render := func(_ context.Context, pageURL string, _ time.Duration) (string, error) {
		renderedFor = pageURL
		return rendered, nil
	}

	h := New(newTestClient(), render)
	src := types.Source{
		Jurisdiction: "Nigeria",
		Agency:       "FIRS",
		URL:          "https://agency.gov/portal",
		UseBrowser:   true,
	}

	candidates, err := h.Harvest(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "https://agency.gov/portal", renderedFor)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://agency.gov/orders/wage-order-2025.pdf", candidates[0].URL)
}

func TestHarvest_BrowserRenderingFailure(t *testing.T) {
	render := func(_ context.Context, _ string, _ time.Duration) (string, error) {
		return "", errors.New("chrome not reachable")
	}

	h := New(newTestClient(), render)
	src := types.Source{Jurisdiction: "Ghana", Agency: "GRA", URL: "https://agency.gov/portal", UseBrowser: true}

	_, err := h.Harvest(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser rendering failed")
}

func TestHarvest_ManyAnchorsKeepPageOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for i := 0; i < 10; i++ {
			_, _ = fmt.Fprintf(w, `<a href="/notices/%d.pdf">Notification No. %d of 2025</a>`, i, i)
		}
	}))
	defer server.Close()

	h := New(newTestClient(), nil)
	src := types.Source{Jurisdiction: "India", Agency: "CBDT", URL: server.URL}

	candidates, err := h.Harvest(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, candidates, 10)
	for i, cand := range candidates {
		parsed, perr := url.Parse(cand.URL)
		require.NoError(t, perr)
		assert.Equal(t, fmt.Sprintf("/notices/%d.pdf", i), parsed.Path)
	}
}
