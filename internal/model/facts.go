package model

import "sort"

// PageFacts maps a fact-year to a stud-fee amount (whole currency units)
// extracted from a single auctions page. The map is ephemeral: it is produced
// by the extractor and immediately merged into a FactTable.
type PageFacts map[int]int

// FactRow is one finalized (fact-year, amount) pair.
type FactRow struct {
	// Year is the fact-year the fee applies to. Independent of the
	// page-year the fee was harvested from: a page addressed by year 2015
	// may assert a fee for 2014 or 2016.
	Year int `json:"year"`

	// Amount is the stud fee in whole currency units, never negative.
	Amount int `json:"amount"`
}

// FactTable accumulates stud-fee facts for one resolved entity across the
// page-year crawl. Keys are unique fact-years; the merge rule is
// first-observation-wins, so with ascending page-year iteration the earliest
// crawled assertion of a year is the one retained.
//
// The zero value is not usable; create with NewFactTable. Only the harvester
// mutates a FactTable.
type FactTable struct {
	facts map[int]int
}

// NewFactTable creates an empty FactTable.
func NewFactTable() *FactTable {
	return &FactTable{facts: make(map[int]int)}
}

// Merge inserts every (year, amount) pair from page into the table unless
// that year is already present. It returns the number of newly inserted
// years. Later assertions of an already-recorded year are discarded.
func (t *FactTable) Merge(page PageFacts) int {
	inserted := 0
	for year, amount := range page {
		if _, ok := t.facts[year]; ok {
			continue
		}
		t.facts[year] = amount
		inserted++
	}
	return inserted
}

// Len returns the number of distinct fact-years recorded.
func (t *FactTable) Len() int {
	return len(t.facts)
}

// Rows returns the recorded facts sorted ascending by fact-year.
func (t *FactTable) Rows() []FactRow {
	rows := make([]FactRow, 0, len(t.facts))
	for year, amount := range t.facts {
		rows = append(rows, FactRow{Year: year, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}
