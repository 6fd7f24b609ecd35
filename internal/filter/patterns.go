// Package filter implements the heuristic relevance filter that decides
// which harvested links are worth extracting and classifying.
package filter

import "regexp"

// The pattern library is shared by the filter and the harvester. Within each
// slice, patterns are tried in order and the first match wins; keep the most
// specific patterns first.

// DatePatterns match common numeric and month-name date formats found in
// regulatory listings.
var DatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)dated?\s*:?\s*(\d{1,2}[./-]\d{1,2}[./-]20\d{2})`),
	regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](20\d{2})`),
	regexp.MustCompile(`(20\d{2})[./-](\d{1,2})[./-](\d{1,2})`),
	regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(20\d{2})`),
	regexp.MustCompile(`(?i)(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December),?\s+(20\d{2})`),
}

// DocIDPatterns match document identifiers: circular and notification
// numbers, gazette references, statutory-instrument numbers and similar.
var DocIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:circular|notification|order|memo|advisory|resolution)\s*(?:no\.?|number|#)\s*([\w./-]+)`),
	regexp.MustCompile(`(?i)(?:RMC|RMO|RR|DA|DO|LA)\s*(?:No\.?)?\s*([\d-]+)`),
	regexp.MustCompile(`(?i)F\.?\s*No\.?\s*([\d/.-]+)`),
	regexp.MustCompile(`(?i)(?:No\.?|Number)\s*(\d+[/-]\d+(?:[/-]\d+)?)`),
	regexp.MustCompile(`(?i)(?:S\.?O\.?|G\.?S\.?R\.?)\s*(\d+)`),
	regexp.MustCompile(`\b(\d{1,4}[/-]20\d{2})\b`),
	regexp.MustCompile(`\b([A-Z]{2,5}[-/]?\d{2,5}[-/]?20\d{2})\b`),
}

// recentYear matches year tokens close to the present; documents citing one
// are more likely to be current issuances than archive pages.
var recentYear = regexp.MustCompile(`\b(202[4-7])\b`)

// fileExt matches URLs pointing at downloadable document formats.
var fileExt = regexp.MustCompile(`(?i)\.(pdf|docx?|xlsx?|rtf)(?:\?|$)`)

// ExtractDocID returns the first document identifier found in text, or ""
// when none of the patterns match.
func ExtractDocID(text string) string {
	for _, p := range DocIDPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return m[1]
			}
			return m[0]
		}
	}
	return ""
}

// ExtractDate returns the first date-like token found in text, or "" when
// none of the patterns match.
func ExtractDate(text string) string {
	for _, p := range DatePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// IsDocumentFile reports whether the URL points at a downloadable document.
func IsDocumentFile(url string) bool {
	return fileExt.MatchString(url)
}
