package engine

import (
	"struct-sync/internal/schema"
)

// Node kinds used in DiffResult.Kind.
const (
	KindSchema    = "schema"
	KindTable     = "table"
	KindColumn    = "column"
	KindIndex     = "index"
	KindView      = "view"
	KindFunction  = "function"
	KindProcedure = "procedure"
)

// Kinds lists node kinds in display order.
var Kinds = []string{KindSchema, KindTable, KindColumn, KindIndex, KindView, KindFunction, KindProcedure}

// Summarize flattens an annotated forest into one record per node, in tree
// order.
func Summarize(forest []*schema.Schema) []schema.DiffResult {
	var out []schema.DiffResult
	for _, s := range forest {
		if s == nil {
			continue
		}
		out = append(out, schema.DiffResult{Schema: s.Name, Kind: KindSchema, Name: s.Name, Status: s.Status})
		for _, t := range s.Tables {
			out = append(out, schema.DiffResult{Schema: s.Name, Kind: KindTable, Name: t.Name, Status: t.Status})
			for _, c := range t.Columns {
				out = append(out, schema.DiffResult{Schema: s.Name, Table: t.Name, Kind: KindColumn, Name: c.Name, Status: c.Status})
			}
			for _, idx := range t.Indexes {
				out = append(out, schema.DiffResult{Schema: s.Name, Table: t.Name, Kind: KindIndex, Name: idx.Name, Status: idx.Status})
			}
		}
		for _, v := range s.Views {
			out = append(out, schema.DiffResult{Schema: s.Name, Kind: KindView, Name: v.Name, Status: v.Status})
		}
		for _, f := range s.Functions {
			out = append(out, schema.DiffResult{Schema: s.Name, Kind: KindFunction, Name: f.Name, Status: f.Status})
		}
		for _, p := range s.Procedures {
			out = append(out, schema.DiffResult{Schema: s.Name, Kind: KindProcedure, Name: p.Name, Status: p.Status})
		}
	}
	return out
}

// Counts tallies results per kind and status.
type Counts map[string]map[schema.Status]int

func CountResults(results []schema.DiffResult) Counts {
	counts := make(Counts)
	for _, r := range results {
		if counts[r.Kind] == nil {
			counts[r.Kind] = make(map[schema.Status]int)
		}
		counts[r.Kind][r.Status]++
	}
	return counts
}

// HasChanges reports whether any node of an annotated forest is not Matched.
func HasChanges(forest []*schema.Schema) bool {
	for _, r := range Summarize(forest) {
		if r.Status != schema.Matched {
			return true
		}
	}
	return false
}
