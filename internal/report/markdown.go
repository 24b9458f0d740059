package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"sirescan/internal/model"
)

// MarkdownWriter outputs harvest results as a GitHub Flavored Markdown
// document, for sharing and documentation. It uses the nao1215/markdown
// library for type-safe generation of headers and tables.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(run *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	for _, sire := range run.Sires {
		w.writeSire(md, sire)
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the document title and the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.RunReport) {
	md.H1("Stud Fee Harvest Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Finished", run.FinishedAt.Format("2006-01-02 15:04:05 MST")},
			{"Page-Year Range", fmt.Sprintf("%d–%d", run.FirstPageYear, run.LastPageYear)},
			{"Sires Processed", strconv.Itoa(len(run.Sires))},
			{"Sires Resolved", strconv.Itoa(run.ResolvedCount())},
			{"Fee Rows", strconv.Itoa(run.TotalRows())},
		},
	})
	md.PlainText("")
}

// writeSire writes one sire's section: identity line plus fee table, or a
// note when the sire could not be resolved.
func (w *MarkdownWriter) writeSire(md *markdown.Markdown, sire *model.SireReport) {
	md.H2(sire.Sire)
	md.PlainText("")

	if !sire.ResolvedOK() {
		md.Warning("No stallion record found; sire skipped.")
		md.PlainText("")
		return
	}

	md.BulletList(
		"Stallion ID: `"+sire.Resolved.ID+"`",
		"Slug: `"+sire.Resolved.Slug+"`",
		"Resolved via: "+sire.Strategy,
		fmt.Sprintf("Pages fetched: %d (failed: %d)", sire.PagesFetched, sire.PagesFailed),
	)
	md.PlainText("")

	if len(sire.Fees) == 0 {
		md.Note("No stud fees found in the crawled page-year range.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(sire.Fees))
	for _, fee := range sire.Fees {
		rows = append(rows, []string{
			strconv.Itoa(fee.Year),
			"$" + humanAmount(fee.Amount),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Fee Year", "Stud Fee"},
		Rows:   rows,
	})
	md.PlainText("")
}

// humanAmount formats an integer amount with thousands separators,
// matching how the register itself prints fees.
func humanAmount(amount int) string {
	s := strconv.Itoa(amount)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
