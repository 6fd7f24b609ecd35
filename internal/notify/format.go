package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/payroll-radar/internal/types"
)

// maxPerCategory caps how many documents one category section lists.
const maxPerCategory = 5

// splitAt is where an oversized report is cut into a continuation message.
const splitAt = 3800

var categoryEmojis = map[types.Category]string{
	types.CategoryTax:            "💰",
	types.CategoryLabor:          "👷",
	types.CategoryPension:        "🏦",
	types.CategorySocialSecurity: "🛡️",
	types.CategoryCompliance:     "📋",
	types.CategoryOther:          "📄",
}

// FormatJurisdictionReport renders one jurisdiction's relevant documents as
// one or more Telegram-sized messages, grouped by category. Long reports
// are split at paragraph boundaries with a CONTINUED header.
func FormatJurisdictionReport(jurisdiction string, docs []types.Document) []string {
	if len(docs) == 0 {
		return nil
	}

	byCategory := make(map[types.Category][]types.Document)
	for _, doc := range docs {
		byCategory[doc.Category] = append(byCategory[doc.Category], doc)
	}

	// Stable category order keeps consecutive reports comparable.
	categories := make([]types.Category, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var sb strings.Builder
	fmt.Fprintf(&sb, "🚨 *%s — REGULATORY UPDATES*\n", strings.ToUpper(jurisdiction))
	fmt.Fprintf(&sb, "_%d new document(s)_\n\n", len(docs))

	for _, cat := range categories {
		emoji := categoryEmojis[cat]
		if emoji == "" {
			emoji = "📄"
		}
		fmt.Fprintf(&sb, "%s *%s*\n", emoji, categoryLabel(cat))

		catDocs := byCategory[cat]
		if len(catDocs) > maxPerCategory {
			catDocs = catDocs[:maxPerCategory]
		}
		for _, doc := range catDocs {
			fmt.Fprintf(&sb, "\n• *%s*\n", scrub(doc.Title, 80))
			if doc.DocID != "" {
				fmt.Fprintf(&sb, "  📝 %s\n", scrub(doc.DocID, 40))
			}
			if doc.Summary != "" {
				fmt.Fprintf(&sb, "  💡 %s\n", scrub(doc.Summary, 150))
			}
			if doc.Published != "" && doc.Published != "unknown" {
				fmt.Fprintf(&sb, "  📅 %s\n", doc.Published)
			}
			fmt.Fprintf(&sb, "  [🔗 Open](%s)\n", doc.URL)
		}
		sb.WriteString("\n")
	}

	return splitReport(jurisdiction, sb.String())
}

// FormatSummary renders the terminal scan summary.
func FormatSummary(stats types.ScanStats) string {
	return fmt.Sprintf(`✅ *SCAN COMPLETE*

📊 *Results:*
• Links harvested: *%d*
• Passed filter: *%d*
• New documents: *%d*
• Relevant updates: *%d*
• Duration: *%.0fs*

📅 %s`,
		stats.Harvested, stats.Filtered, stats.New, stats.Relevant,
		stats.Duration.Seconds(),
		time.Now().UTC().Format("2006-01-02 15:04 UTC"))
}

// FormatNoUpdates renders the "nothing new" notice for manual runs.
func FormatNoUpdates() string {
	return fmt.Sprintf(
		"✅ *SCAN COMPLETE*\n\nNo new payroll or compliance updates found.\n\n📅 %s",
		time.Now().UTC().Format("2006-01-02 15:04 UTC"))
}

// FormatFatalError renders the best-effort alert sent before a fatal exit.
func FormatFatalError(err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Sprintf("⚠️ *SCAN FAILED*\n\n`%s`", msg)
}

func categoryLabel(cat types.Category) string {
	label := strings.ReplaceAll(string(cat), "_", " ")
	if label == "" {
		label = "other"
	}
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// scrub removes characters that break Telegram Markdown out of scraped text
// and clips it to max bytes.
func scrub(s string, max int) string {
	replacer := strings.NewReplacer("*", "", "_", "", "[", "(", "]", ")", "`", "'")
	s = replacer.Replace(s)
	if len(s) > max {
		s = s[:max]
	}
	return strings.TrimSpace(s)
}

// splitReport cuts an oversized report into ceiling-sized chunks, breaking
// at blank lines where possible.
func splitReport(jurisdiction, msg string) []string {
	if len(msg) <= TruncateAt {
		return []string{msg}
	}

	var parts []string
	rest := msg
	first := true
	for len(rest) > splitAt {
		cut := strings.LastIndex(rest[:splitAt], "\n\n")
		if cut <= 0 {
			cut = splitAt
		}
		part := rest[:cut]
		if !first {
			part = continuedHeader(jurisdiction) + part
		}
		parts = append(parts, part)
		rest = rest[cut:]
		first = false
	}
	if strings.TrimSpace(rest) != "" {
		parts = append(parts, continuedHeader(jurisdiction)+rest)
	}
	return parts
}

func continuedHeader(jurisdiction string) string {
	return fmt.Sprintf("🚨 *%s — CONTINUED*\n\n", strings.ToUpper(jurisdiction))
}
