package model

import "testing"

func TestFactTableMerge(t *testing.T) {
	t.Parallel()

	t.Run("first observation wins", func(t *testing.T) {
		t.Parallel()

		table := NewFactTable()
		if got := table.Merge(PageFacts{2015: 15000}); got != 1 {
			t.Errorf("expected 1 inserted, got %d", got)
		}
		if got := table.Merge(PageFacts{2015: 16000}); got != 0 {
			t.Errorf("expected 0 inserted for duplicate year, got %d", got)
		}

		rows := table.Rows()
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].Amount != 15000 {
			t.Errorf("expected first-observed amount 15000, got %d", rows[0].Amount)
		}
	})

	t.Run("distinct years accumulate", func(t *testing.T) {
		t.Parallel()

		table := NewFactTable()
		table.Merge(PageFacts{2016: 20000, 2014: 10000})
		table.Merge(PageFacts{2015: 15000})

		if table.Len() != 3 {
			t.Errorf("expected 3 fact-years, got %d", table.Len())
		}
	})

	t.Run("empty page merges nothing", func(t *testing.T) {
		t.Parallel()

		table := NewFactTable()
		if got := table.Merge(PageFacts{}); got != 0 {
			t.Errorf("expected 0 inserted, got %d", got)
		}
		if table.Len() != 0 {
			t.Errorf("expected empty table, got %d rows", table.Len())
		}
	})
}

func TestFactTableRows(t *testing.T) {
	t.Parallel()

	table := NewFactTable()
	table.Merge(PageFacts{2019: 35000, 2015: 15000, 2017: 25000})

	rows := table.Rows()
	wantYears := []int{2015, 2017, 2019}
	if len(rows) != len(wantYears) {
		t.Fatalf("expected %d rows, got %d", len(wantYears), len(rows))
	}
	for i, want := range wantYears {
		if rows[i].Year != want {
			t.Errorf("row %d: expected year %d, got %d", i, want, rows[i].Year)
		}
	}
}

func TestRunReportCounts(t *testing.T) {
	t.Parallel()

	resolved := &ResolvedEntity{ID: "123456", Slug: "gio-ponti"}
	run := &RunReport{
		Sires: []*SireReport{
			{Sire: "Gio Ponti", Resolved: resolved, Fees: []FactRow{{Year: 2015, Amount: 15000}, {Year: 2016, Amount: 20000}}},
			{Sire: "Unknown Horse", Fees: []FactRow{}},
		},
	}

	if got := run.TotalRows(); got != 2 {
		t.Errorf("expected 2 total rows, got %d", got)
	}
	if got := run.ResolvedCount(); got != 1 {
		t.Errorf("expected 1 resolved sire, got %d", got)
	}
	if run.Sires[1].ResolvedOK() {
		t.Error("expected unresolved sire to report ResolvedOK() == false")
	}
}
