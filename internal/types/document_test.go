package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		token string
		want  Category
	}{
		{"tax", CategoryTax},
		{"TAX", CategoryTax},
		{"[TAX]", CategoryTax},
		{"tax.", CategoryTax},
		{"labor", CategoryLabor},
		{"LABOUR", CategoryLabor},
		{"pension", CategoryPension},
		{"SOCIAL_SECURITY", CategorySocialSecurity},
		{"social security", CategorySocialSecurity},
		{"social-security", CategorySocialSecurity},
		{"compliance", CategoryCompliance},
		{"other", CategoryOther},
		{"immigration", CategoryOther},
		{"", CategoryOther},
		{"   ", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.token))
		})
	}
}
