package extractor

import (
	"reflect"
	"testing"

	"sirescan/internal/config"
	"sirescan/internal/model"
)

func newTestExtractor(source config.FeeYearSource) *Extractor {
	cfg := config.New()
	cfg.FeeYearSource = source
	return New(cfg)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(config.FeeYearLiteral)

	tests := []struct {
		name     string
		body     string
		pageYear int
		want     model.PageFacts
	}{
		{
			name:     "single fee",
			body:     "Weanlings ... 2015 Stud Fee $15,000",
			pageYear: 2016,
			want:     model.PageFacts{2015: 15000},
		},
		{
			name:     "missing marker yields nothing",
			body:     "2015 Stud Fee $15,000",
			pageYear: 2016,
			want:     model.PageFacts{},
		},
		{
			name:     "multiple fee years",
			body:     "Weanlings 2014 Stud Fee $10,000 ... 2015 Stud Fee $15,000",
			pageYear: 2016,
			want:     model.PageFacts{2014: 10000, 2015: 15000},
		},
		{
			name:     "last match wins within a page",
			body:     "Weanlings 2015 Stud Fee $15,000 ... 2015 Stud Fee $17,500",
			pageYear: 2016,
			want:     model.PageFacts{2015: 17500},
		},
		{
			name:     "case insensitive with intervening markup",
			body:     "Weanlings <td>2015  stud fee</td><td>sold for $20,000</td>",
			pageYear: 2016,
			want:     model.PageFacts{2015: 20000},
		},
		{
			name:     "matches across line breaks",
			body:     "Weanlings\n2015 Stud Fee\nresults: $15,000",
			pageYear: 2016,
			want:     model.PageFacts{2015: 15000},
		},
		{
			name:     "amount without separators",
			body:     "Weanlings 2015 Stud Fee $7500",
			pageYear: 2016,
			want:     model.PageFacts{2015: 7500},
		},
		{
			name:     "implausible year is dropped",
			body:     "Weanlings 1024 Stud Fee $5,000",
			pageYear: 2016,
			want:     model.PageFacts{},
		},
		{
			name:     "fact-year may differ from page-year",
			body:     "Weanlings 2019 Stud Fee $35,000",
			pageYear: 2015,
			want:     model.PageFacts{2019: 35000},
		},
		{
			name:     "empty body",
			body:     "",
			pageYear: 2016,
			want:     model.PageFacts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.Extract(tt.body, tt.pageYear)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractPriorPageYear(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(config.FeeYearPriorPageYear)

	t.Run("fee is recorded against pageYear minus one", func(t *testing.T) {
		t.Parallel()

		got := e.Extract("Weanlings 2015 Stud Fee $15,000", 2018)
		want := model.PageFacts{2017: 15000}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Extract() = %v, want %v", got, want)
		}
	})

	t.Run("multiple matches collapse onto one fact-year", func(t *testing.T) {
		t.Parallel()

		got := e.Extract("Weanlings 2014 Stud Fee $10,000 ... 2015 Stud Fee $15,000", 2018)
		want := model.PageFacts{2017: 15000}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Extract() = %v, want %v", got, want)
		}
	})
}

func TestExtractCustomMarker(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.SectionMarker = "Yearlings"
	e := New(cfg)

	if got := e.Extract("Weanlings 2015 Stud Fee $15,000", 2016); len(got) != 0 {
		t.Errorf("expected no facts without the configured marker, got %v", got)
	}
	if got := e.Extract("Yearlings 2015 Stud Fee $15,000", 2016); len(got) != 1 {
		t.Errorf("expected one fact with the configured marker, got %v", got)
	}
}
