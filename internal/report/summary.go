package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"struct-sync/internal/engine"
	"struct-sync/internal/schema"
)

// WriteSummary renders per-kind status counts of an annotated forest.
func WriteSummary(w io.Writer, forest []*schema.Schema) {
	counts := engine.CountResults(engine.Summarize(forest))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Object", "Matched", "Modified", "NotExist", "Total"})

	var totals [3]int
	for _, kind := range engine.Kinds {
		c := counts[kind]
		if c == nil {
			continue
		}
		row := [3]int{c[schema.Matched], c[schema.Modified], c[schema.NotExist]}
		for i := range totals {
			totals[i] += row[i]
		}
		t.AppendRow(table.Row{kind, row[0], row[1], row[2], row[0] + row[1] + row[2]})
	}
	t.AppendFooter(table.Row{"total", totals[0], totals[1], totals[2], totals[0] + totals[1] + totals[2]})
	t.Render()
}

// WriteChanges lists every node that is not Matched, one per row.
func WriteChanges(w io.Writer, forest []*schema.Schema) int {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Schema", "Table", "Kind", "Name", "Status"})

	n := 0
	for _, r := range engine.Summarize(forest) {
		if r.Status == schema.Matched {
			continue
		}
		t.AppendRow(table.Row{r.Schema, r.Table, r.Kind, r.Name, r.Status.String()})
		n++
	}
	if n > 0 {
		t.Render()
	}
	return n
}
