package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"sirescan/internal/model"
)

// csvHeader matches the tidy output contract consumed downstream.
var csvHeader = []string{"Sire", "stud_fee_year", "stud_fee_usd"}

// CSVWriter outputs the tidy fee stream: one row per unique fact-year per
// sire, sires in input order, fact-years ascending within each sire.
// This is the default output format.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run as CSV. Unresolved sires and sires with no
// harvested fees contribute zero rows; the header is always written.
func (w *CSVWriter) Write(run *model.RunReport) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, err
	}

	for _, sire := range run.Sires {
		for _, fee := range sire.Fees {
			record := []string{
				sire.Sire,
				strconv.Itoa(fee.Year),
				strconv.Itoa(fee.Amount),
			}
			if err := cw.Write(record); err != nil {
				return counter.n, err
			}
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// countingWriter tracks bytes written so Write can report them.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
