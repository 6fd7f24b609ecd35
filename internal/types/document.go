// Package types defines the shared data model for the payroll radar pipeline.
package types

import "time"

// Source is a configured regulatory origin to scan. Sources are immutable
// and loaded once at startup.
type Source struct {
	Jurisdiction string `json:"jurisdiction" validate:"required"`
	Agency       string `json:"agency" validate:"required"`
	URL          string `json:"url" validate:"required,url"`
	// BaseURL overrides the page URL for relative-link resolution. Optional.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
	// DocType is a coarse label for what the page lists (circular, notice, ...).
	DocType string `json:"doc_type,omitempty"`
	// UseBrowser renders the page in a headless browser before harvesting,
	// for portals that only populate their listings via JavaScript.
	UseBrowser bool `json:"use_browser,omitempty"`
	// Keywords are jurisdiction-specific regulatory terms that supplement
	// the global keyword sets during filtering. Optional.
	Keywords []string `json:"keywords,omitempty"`
}

// Candidate is a link harvested from a source page, before filtering.
// Candidates live for a single scan pass and are discarded on rejection.
type Candidate struct {
	Text   string
	URL    string
	Source Source
}

// Category is the classifier-assigned document category.
type Category string

// Document categories recognized by the classifier.
const (
	CategoryTax            Category = "tax"
	CategoryLabor          Category = "labor"
	CategoryPension        Category = "pension"
	CategorySocialSecurity Category = "social_security"
	CategoryCompliance     Category = "compliance"
	CategoryOther          Category = "other"
)

// ParseCategory maps a free-form category token to a Category, falling back
// to CategoryOther for anything unrecognized.
func ParseCategory(token string) Category {
	switch normalizeToken(token) {
	case "tax":
		return CategoryTax
	case "labor", "labour":
		return CategoryLabor
	case "pension":
		return CategoryPension
	case "social_security", "social security":
		return CategorySocialSecurity
	case "compliance":
		return CategoryCompliance
	default:
		return CategoryOther
	}
}

func normalizeToken(token string) string {
	out := make([]rune, 0, len(token))
	for _, r := range token {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	// Trim surrounding junk the model sometimes emits ("[TAX]", "tax.").
	s := string(out)
	for len(s) > 0 && !isWordRune(rune(s[0])) {
		s = s[1:]
	}
	for len(s) > 0 && !isWordRune(rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return s
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == ' '
}

// Document is a candidate that passed the relevance filter, enriched with
// derived attributes and, after classification, the final verdict.
type Document struct {
	URL          string
	Title        string
	Jurisdiction string
	Agency       string
	DocID        string    // regex-derived, may be empty
	Published    string    // regex-derived, "unknown" when absent
	DiscoveredAt time.Time
	IsPDF        bool
	Score        float64 // heuristic relevance score in [0,1]
	Snippet      string  // extracted content or a sentinel value
	Category     Category
	Summary      string
	Relevant     bool
}

// ScanStats summarizes a completed scan pass.
type ScanStats struct {
	RunID         string
	SourcesTotal  int
	SourcesFailed int
	Harvested     int
	Filtered      int
	New           int
	Relevant      int
	MessagesSent  int
	Duration      time.Duration
}
