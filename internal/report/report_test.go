package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"sirescan/internal/model"
)

// testRun builds a run with one resolved sire, one unresolved sire, and a
// resolved sire that harvested nothing.
func testRun() *model.RunReport {
	return &model.RunReport{
		StartedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		FirstPageYear: 2006,
		LastPageYear:  2025,
		Sires: []*model.SireReport{
			{
				Sire:     "Gio Ponti",
				SaleYear: 2015,
				Resolved: &model.ResolvedEntity{ID: "123456", Slug: "gio-ponti"},
				Strategy: "probe-redirect",
				Fees: []model.FactRow{
					{Year: 2014, Amount: 10000},
					{Year: 2015, Amount: 15000},
				},
				PagesFetched: 20,
			},
			{
				Sire:     "Unknown Horse",
				SaleYear: 2018,
				Fees:     []model.FactRow{},
			},
			{
				Sire:         "Quiet Sire",
				SaleYear:     2019,
				Resolved:     &model.ResolvedEntity{ID: "654321", Slug: "quiet-sire"},
				Strategy:     "search-query",
				Fees:         []model.FactRow{},
				PagesFetched: 18,
				PagesFailed:  2,
			},
		},
	}
}

func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	n, err := w.Write(testRun())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{"Sire", "stud_fee_year", "stud_fee_usd"},
		{"Gio Ponti", "2014", "10000"},
		{"Gio Ponti", "2015", "15000"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("unexpected CSV records:\ngot  %v\nwant %v", records, want)
	}
}

func TestCSVWriterEmptyRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	if _, err := w.Write(&model.RunReport{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header only.
	if got := strings.TrimSpace(buf.String()); got != "Sire,stud_fee_year,stud_fee_usd" {
		t.Errorf("expected lone header, got %q", got)
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		if _, err := w.Write(testRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got model.RunReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(got.Sires) != 3 {
			t.Errorf("expected 3 sires, got %d", len(got.Sires))
		}
		if got.Sires[0].Resolved == nil || got.Sires[0].Resolved.ID != "123456" {
			t.Errorf("unexpected resolved identity %+v", got.Sires[0].Resolved)
		}
		if got.Sires[1].Resolved != nil {
			t.Error("expected unresolved sire to stay unresolved")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())
		if _, err := w.Write(testRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)
	if _, err := w.Write(testRun()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Stud Fee Harvest Report",
		"Gio Ponti",
		"Unknown Horse",
		"15,000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewCSVWriter(&a), NewCSVWriter(&b))

	n, err := mw.Write(testRun())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.String() != b.String() {
		t.Error("expected identical output from both writers")
	}
	if n != a.Len()+b.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, a.Len()+b.Len())
	}
}
