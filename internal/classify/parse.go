package classify

import (
	"strings"

	"github.com/jonathan/payroll-radar/internal/types"
)

// ParseVerdict extracts the verdict from the model's free-form answer. The
// prompt asks for RELEVANT/CATEGORY/SUMMARY lines, but the parser tolerates
// reordered, missing or decorated fields: an unrecognized category falls
// back to "other", a missing summary to a fixed placeholder, and a missing
// RELEVANT line to not-relevant.
func ParseVerdict(answer string) Result {
	result := unknownResult()

	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "*_`"))
		if line == "" {
			continue
		}

		key, value, ok := splitField(line)
		if !ok {
			continue
		}

		switch key {
		case "relevant":
			result.Relevant = strings.Contains(strings.ToUpper(value), "YES")
		case "category":
			result.Category = types.ParseCategory(value)
		case "summary":
			if value != "" {
				result.Summary = value
			}
		}
	}

	return result
}

// splitField splits "KEY: value" case-insensitively.
func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	switch key {
	case "relevant", "category", "summary":
		return key, value, true
	}
	return "", "", false
}
