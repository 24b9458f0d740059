package model

import "time"

// SireReport holds everything collected for a single input sire: the
// resolution outcome and the harvested fee rows. A sire that failed to
// resolve has Resolved == nil and zero fee rows.
type SireReport struct {
	// Sire is the input name, verbatim.
	Sire string `json:"sire"`

	// SaleYear is the input sale-year hint.
	SaleYear int `json:"sale_year,omitempty"`

	// Resolved is the canonical identity, or nil if no strategy matched.
	Resolved *ResolvedEntity `json:"resolved,omitempty"`

	// Strategy names the resolution strategy that succeeded, e.g.
	// "probe-redirect" or "search-query". Empty when unresolved.
	Strategy string `json:"strategy,omitempty"`

	// Fees are the harvested (fact-year, amount) rows, sorted ascending
	// by year and unique by year.
	Fees []FactRow `json:"fees"`

	// PagesFetched counts auctions pages successfully fetched for this sire.
	PagesFetched int `json:"pages_fetched"`

	// PagesFailed counts page-years whose fetch failed after retries.
	PagesFailed int `json:"pages_failed"`
}

// ResolvedOK reports whether the sire was resolved to a canonical identity.
func (r *SireReport) ResolvedOK() bool {
	return r.Resolved != nil
}

// RunReport is the full result of one harvest run, in input order.
// It is the unit consumed by report writers and the history database.
type RunReport struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed.
	FinishedAt time.Time `json:"finished_at"`

	// FirstPageYear and LastPageYear record the crawled page-year range,
	// both endpoints inclusive.
	FirstPageYear int `json:"first_page_year"`
	LastPageYear  int `json:"last_page_year"`

	// Sires holds one report per input row, in input order.
	Sires []*SireReport `json:"sires"`
}

// TotalRows returns the total number of output fee rows across all sires.
func (r *RunReport) TotalRows() int {
	total := 0
	for _, s := range r.Sires {
		total += len(s.Fees)
	}
	return total
}

// ResolvedCount returns the number of sires that resolved successfully.
func (r *RunReport) ResolvedCount() int {
	n := 0
	for _, s := range r.Sires {
		if s.ResolvedOK() {
			n++
		}
	}
	return n
}
