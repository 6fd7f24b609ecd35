// Package sources holds the catalog of regulatory listing pages to scan.
// The built-in catalog covers the jurisdictions the product tracks; a JSON
// file can replace it per deployment.
package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/payroll-radar/internal/types"
)

// Default returns the built-in source catalog.
func Default() []types.Source {
	return []types.Source{
		// India
		{Jurisdiction: "India", Agency: "Income Tax", URL: "https://incometaxindia.gov.in/pages/communications/circulars.aspx", DocType: "circular"},
		{Jurisdiction: "India", Agency: "Income Tax", URL: "https://incometaxindia.gov.in/pages/communications/notifications.aspx", DocType: "notification"},
		{Jurisdiction: "India", Agency: "EPFO", URL: "https://www.epfindia.gov.in/site_en/Circulars.php", DocType: "circular",
			Keywords: []string{"epf", "provident fund", "pension", "edli"}},
		{Jurisdiction: "India", Agency: "ESIC", URL: "https://www.esic.gov.in/circulars", DocType: "circular",
			Keywords: []string{"esi", "contribution"}},

		// UAE
		{Jurisdiction: "UAE", Agency: "MOHRE", URL: "https://www.mohre.gov.ae/en/laws-and-regulations/resolutions-and-circulars.aspx", DocType: "resolution",
			Keywords: []string{"wps", "wage protection", "end of service", "gratuity"}},
		{Jurisdiction: "UAE", Agency: "FTA", URL: "https://tax.gov.ae/en/content/guides.references.aspx", DocType: "guide"},

		// Philippines
		{Jurisdiction: "Philippines", Agency: "BIR", URL: "https://www.bir.gov.ph/index.php/revenue-issuances/revenue-memorandum-circulars.html", DocType: "circular",
			Keywords: []string{"rmc", "rmo", "revenue regulation", "train law"}},
		{Jurisdiction: "Philippines", Agency: "BIR", URL: "https://www.bir.gov.ph/index.php/revenue-issuances/revenue-memorandum-orders.html", DocType: "order"},
		{Jurisdiction: "Philippines", Agency: "DOLE", URL: "https://www.dole.gov.ph/issuances/labor-advisories/", DocType: "advisory",
			Keywords: []string{"13th month", "labor advisory", "department order"}},
		{Jurisdiction: "Philippines", Agency: "PhilHealth", URL: "https://www.philhealth.gov.ph/circulars/", DocType: "circular",
			Keywords: []string{"philhealth", "premium"}},
		{Jurisdiction: "Philippines", Agency: "Pag-IBIG", URL: "https://www.pagibigfund.gov.ph/circulars.html", DocType: "circular",
			Keywords: []string{"pag-ibig", "hdmf"}},

		// Kenya
		{Jurisdiction: "Kenya", Agency: "KRA", URL: "https://www.kra.go.ke/news-center/public-notices", DocType: "notice",
			Keywords: []string{"paye", "finance act"}},

		// Nigeria
		{Jurisdiction: "Nigeria", Agency: "FIRS", URL: "https://www.firs.gov.ng/press-release/", DocType: "press_release",
			Keywords: []string{"paye", "finance act", "nsitf", "itf"}},
		{Jurisdiction: "Nigeria", Agency: "PenCom", URL: "https://pencom.gov.ng/category/circulars/", DocType: "circular",
			Keywords: []string{"pencom", "pension"}},

		// Ghana
		{Jurisdiction: "Ghana", Agency: "GRA", URL: "https://gra.gov.gh/practice-notes/", DocType: "practice_note"},
		{Jurisdiction: "Ghana", Agency: "SSNIT", URL: "https://www.ssnit.org.gh/news-events/", DocType: "news",
			Keywords: []string{"ssnit", "contribution"}},

		// South Africa
		{Jurisdiction: "South Africa", Agency: "SARS", URL: "https://www.sars.gov.za/legal-counsel/secondary-legislation/public-notices/", DocType: "notice",
			Keywords: []string{"paye", "uif", "sdl"}},
	}
}

// LoadFile reads a JSON source catalog and validates every entry.
func LoadFile(path string) ([]types.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var srcs []types.Source
	if err := json.Unmarshal(data, &srcs); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	validate := validator.New()
	for i, src := range srcs {
		if err := validate.Struct(src); err != nil {
			return nil, fmt.Errorf("invalid source at index %d (%s): %w", i, src.URL, err)
		}
	}
	return srcs, nil
}

// Load returns the catalog from path when set, else the built-in default.
func Load(path string) ([]types.Source, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
