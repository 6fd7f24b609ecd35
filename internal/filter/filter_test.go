package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNavigationJunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		url  string
		want bool
	}{
		{"too short", "PDF", "https://example.gov/doc.pdf", true},
		{"exact blocklist hit", "Contact Us", "https://example.gov/contact", true},
		{"blocked phrase as prefix", "Contact us today", "https://example.gov/page", true},
		{"blocked phrase as suffix", "Go back to top", "https://example.gov/page", true},
		{"two blocked phrases in short label", "About Us | Careers", "https://example.gov/page", true},
		{"case and whitespace insensitive", "  SKIP TO    MAIN CONTENT ", "https://example.gov/page", true},
		{"nav url fragment", "Annual compliance information portal", "https://example.gov/about/compliance", true},
		{"nav url fragment but pdf wins", "Annual compliance information portal", "https://example.gov/about/compliance.pdf", false},
		{"services url fragment", "Employer payroll registration guidance", "https://example.gov/services/payroll", true},
		{"products url fragment", "Statutory deduction tables overview", "https://example.gov/products/tables", true},
		{"services url fragment but pdf wins", "Employer payroll registration guidance", "https://example.gov/services/guide.pdf", false},
		{"real document title", "Circular No. 12/2025 on revised PAYE rates", "https://example.gov/circulars/12-2025.pdf", false},
		{"long title leading with blocked phrase survives", "Press release regarding amendment of provident fund contribution rates for 2025", "https://example.gov/pr/2025", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNavigationJunk(tt.text, tt.url))
		})
	}
}

func TestFilter_Passes_DocumentLink(t *testing.T) {
	f := New()

	text := "Circular No. 12/2025: Revision of minimum wage rates effective January 1, 2025"
	url := "https://example.gov/circulars/wage-circular-2025.pdf"

	passed, score := f.Passes(text, url)
	assert.True(t, passed)
	assert.GreaterOrEqual(t, score, DefaultMinScore)
	assert.LessOrEqual(t, score, 1.0)
}

func TestFilter_Passes_JunkScoresZero(t *testing.T) {
	f := New()

	// Junk is rejected before scoring, even when the URL looks documentish.
	passed, score := f.Passes("Home", "https://example.gov/circulars/home.pdf")
	assert.False(t, passed)
	assert.Equal(t, 0.0, score)
}

func TestFilter_Passes_ThresholdIsInclusive(t *testing.T) {
	// Isolate one evidence source so the score lands exactly on the
	// threshold.
	f := New(WithWeights(Weights{Date: 0.25}))

	passed, score := f.Passes("Published January 5, 2025", "https://example.gov/updates")
	assert.True(t, passed)
	assert.Equal(t, 0.25, score)
}

func TestFilter_Passes_BelowThreshold(t *testing.T) {
	f := New()

	passed, score := f.Passes("Quarterly update", "https://example.gov/updates/q1")
	assert.False(t, passed)
	assert.Less(t, score, DefaultMinScore)
}

func TestFilter_Score_ExtraKeywordsNeverLower(t *testing.T) {
	text := "Notice on PAYE remittance deadlines for employers"
	url := "https://example.gov/notices/paye"

	plain := New()
	boosted := New(WithExtraKeywords([]string{"paye", "nssf"}))

	assert.GreaterOrEqual(t, boosted.Score(text, url), plain.Score(text, url))
}

func TestFilter_Score_ClampedToOne(t *testing.T) {
	f := New()

	// Every evidence source at once.
	text := "Circular No. 45/2025 dated 15/01/2025: amendment to income tax withholding tax and provident fund contribution rates, compliance deadline notice"
	url := "https://example.gov/circulars/download/45-2025.pdf"

	assert.Equal(t, 1.0, f.Score(text, url))
}

func TestFilter_Score_KeywordCaps(t *testing.T) {
	f := New()

	// Six regulatory keywords but the regulatory contribution is capped, so
	// the score stays well below what uncapped accumulation would give.
	text := "vat levy duty cess surcharge penalty"
	score := f.Score(text, "https://example.gov/x/y")

	// No doc ID, date, file extension, or URL indicator: reg cap 0.15 plus
	// the single length bonus.
	assert.InDelta(t, 0.20, score, 1e-9)
}
