package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads up to MaxPDFPages of text from raw PDF bytes. Corrupt
// files make the parser panic, so the whole read runs behind a recover.
func extractPDF(data []byte) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("[pdf error: %v]", r)
			ok = false
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Sprintf("[pdf error: %s]", clip(err.Error(), 80)), false
	}

	pages := reader.NumPage()
	if pages > MaxPDFPages {
		pages = MaxPDFPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if len(out) < MinTextLength {
		// Likely a scanned image with no embedded text layer.
		return SentinelNoText, false
	}
	return clip(out, MaxContentLength), true
}
