package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/payroll-radar/internal/types"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   Result
	}{
		{
			name:   "well formed",
			answer: "RELEVANT: YES\nCATEGORY: TAX\nSUMMARY: PAYE rates revised from February 2025.",
			want: Result{
				Relevant: true,
				Category: types.CategoryTax,
				Summary:  "PAYE rates revised from February 2025.",
			},
		},
		{
			name:   "not relevant",
			answer: "RELEVANT: NO\nCATEGORY: OTHER\nSUMMARY: Generic news item.",
			want: Result{
				Relevant: false,
				Category: types.CategoryOther,
				Summary:  "Generic news item.",
			},
		},
		{
			name:   "reordered fields",
			answer: "SUMMARY: Provident fund contribution cap raised.\nCATEGORY: PENSION\nRELEVANT: YES",
			want: Result{
				Relevant: true,
				Category: types.CategoryPension,
				Summary:  "Provident fund contribution cap raised.",
			},
		},
		{
			name:   "markdown decorated",
			answer: "**RELEVANT: YES**\n*CATEGORY: LABOR*\n`SUMMARY: Overtime rules amended.`",
			want: Result{
				Relevant: true,
				Category: types.CategoryLabor,
				Summary:  "Overtime rules amended.",
			},
		},
		{
			name:   "british spelling and case",
			answer: "relevant: yes\ncategory: Labour\nsummary: Working time directive updated.",
			want: Result{
				Relevant: true,
				Category: types.CategoryLabor,
				Summary:  "Working time directive updated.",
			},
		},
		{
			name:   "unknown category falls back to other",
			answer: "RELEVANT: YES\nCATEGORY: IMMIGRATION\nSUMMARY: Work permit changes.",
			want: Result{
				Relevant: true,
				Category: types.CategoryOther,
				Summary:  "Work permit changes.",
			},
		},
		{
			name:   "missing summary keeps placeholder",
			answer: "RELEVANT: YES\nCATEGORY: COMPLIANCE",
			want: Result{
				Relevant: true,
				Category: types.CategoryCompliance,
				Summary:  "analysis unavailable",
			},
		},
		{
			name:   "missing relevant line defaults to no",
			answer: "CATEGORY: TAX\nSUMMARY: Something about rates.",
			want: Result{
				Relevant: false,
				Category: types.CategoryTax,
				Summary:  "Something about rates.",
			},
		},
		{
			name:   "prose around the fields",
			answer: "Here is my analysis.\n\nRELEVANT: YES\nCATEGORY: SOCIAL_SECURITY\nSUMMARY: ESI wage ceiling raised.\n\nLet me know if you need more.",
			want: Result{
				Relevant: true,
				Category: types.CategorySocialSecurity,
				Summary:  "ESI wage ceiling raised.",
			},
		},
		{
			name:   "empty answer",
			answer: "",
			want:   unknownResult(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVerdict(tt.answer))
		})
	}
}

func TestParseVerdict_RelevantRequiresYes(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"YES", true},
		{"yes", true},
		{"Yes, this is a regulatory update", true},
		{"NO", false},
		{"UNCLEAR", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := ParseVerdict("RELEVANT: " + tt.value)
			assert.Equal(t, tt.want, got.Relevant)
		})
	}
}
