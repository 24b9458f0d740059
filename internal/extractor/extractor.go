package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"sirescan/internal/config"
	"sirescan/internal/model"
)

// Fact-years outside this window are treated as pattern noise, e.g. a
// four-digit sale lot number drifting into the match.
const (
	minPlausibleYear = 1990
	maxPlausibleYear = 2030
)

// feePattern matches "<YYYY> Stud Fee ... $<amount>" with arbitrary
// intervening characters up to the dollar amount, case-insensitively and
// across line breaks. Amounts keep their thousands separators in the
// capture and are stripped during parsing.
var feePattern = regexp.MustCompile(`(?is)(\d{4})\s*Stud\s+Fee[^$]*\$([\d,]+)`)

// Extractor scans one fetched document body for stud-fee facts.
type Extractor struct {
	// marker is the literal substring gating extraction.
	marker string

	// feeYearSource selects how a matched fee maps to a fact-year.
	feeYearSource config.FeeYearSource
}

// New creates an Extractor from the configuration.
func New(cfg *config.Config) *Extractor {
	return &Extractor{
		marker:        cfg.SectionMarker,
		feeYearSource: cfg.FeeYearSource,
	}
}

// Extract returns the (fact-year, amount) facts found in body. The pageYear
// is the year the page was addressed with; it becomes the fact-year basis
// when the prior-page-year convention is configured.
//
// Pages without the section marker yield an empty map. When multiple
// matches share a fact-year within one page, the last match wins; this is
// within-page behavior, distinct from the cross-page first-wins merge the
// harvester applies.
func (e *Extractor) Extract(body string, pageYear int) model.PageFacts {
	facts := make(model.PageFacts)

	if !strings.Contains(body, e.marker) {
		return facts
	}

	for _, m := range feePattern.FindAllStringSubmatch(body, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		amount, err := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		if err != nil || amount < 0 {
			continue
		}

		if e.feeYearSource == config.FeeYearPriorPageYear {
			year = pageYear - 1
		}
		if year < minPlausibleYear || year > maxPlausibleYear {
			continue
		}

		facts[year] = amount
	}

	return facts
}
