package engine

import (
	"struct-sync/internal/schema"
)

// Compare annotates every node of source with its status relative to target.
// Only Status fields of source are written; target is read-only. onProgress,
// when set, is called once per compared table, view, function and procedure.
func Compare(source, target []*schema.Schema, onProgress func()) {
	tick := func() {
		if onProgress != nil {
			onProgress()
		}
	}

	for _, s := range source {
		if s == nil {
			continue
		}
		t := schema.Find(target, s.Name)
		if t == nil {
			markAbsent(s, tick)
			continue
		}
		compareSchema(s, t, tick)
	}
}

// CountObjects returns how many times Compare will report progress for forest.
func CountObjects(forest []*schema.Schema) int {
	n := 0
	for _, s := range forest {
		if s == nil {
			continue
		}
		n += len(s.Tables) + len(s.Views) + len(s.Functions) + len(s.Procedures)
	}
	return n
}

func compareSchema(s, t *schema.Schema, tick func()) {
	changed := false

	for _, tbl := range s.Tables {
		if compareTable(tbl, t.FindTable(tbl.Name)) != schema.Matched {
			changed = true
		}
		tick()
	}

	for _, v := range s.Views {
		ddl, ok := findView(t.Views, v.Name)
		v.Status = compareDDL(v.DDL, ddl, ok)
		changed = changed || v.Status != schema.Matched
		tick()
	}
	for _, f := range s.Functions {
		ddl, ok := findFunction(t.Functions, f.Name)
		f.Status = compareDDL(f.DDL, ddl, ok)
		changed = changed || f.Status != schema.Matched
		tick()
	}
	for _, p := range s.Procedures {
		ddl, ok := findProcedure(t.Procedures, p.Name)
		p.Status = compareDDL(p.DDL, ddl, ok)
		changed = changed || p.Status != schema.Matched
		tick()
	}

	s.Status = schema.Matched
	if changed {
		s.Status = schema.Modified
	}
}

// compareTable sets the status of tbl and its columns and indexes, and
// returns the table status.
func compareTable(tbl, target *schema.Table) schema.Status {
	if target == nil {
		markTableAbsent(tbl)
		return tbl.Status
	}

	changed := false
	for _, c := range tbl.Columns {
		tc := target.FindColumn(c.Name)
		switch {
		case tc == nil:
			c.Status = schema.NotExist
		case schema.NormalizeSQL(c.DataType) == schema.NormalizeSQL(tc.DataType):
			c.Status = schema.Matched
		default:
			c.Status = schema.Modified
		}
		changed = changed || c.Status != schema.Matched
	}

	for _, idx := range tbl.Indexes {
		ddl, ok := findIndex(target.Indexes, idx.Name)
		idx.Status = compareDDL(idx.DDL, ddl, ok)
		changed = changed || idx.Status != schema.Matched
	}

	if len(MissingForeignKeys(tbl, target)) > 0 {
		changed = true
	}

	tbl.Status = schema.Matched
	if changed {
		tbl.Status = schema.Modified
	}
	return tbl.Status
}

// MissingForeignKeys returns the foreign keys of tbl whose normalized text is
// not among the foreign keys of target. A nil target misses all of them.
func MissingForeignKeys(tbl, target *schema.Table) []string {
	have := make(map[string]bool)
	if target != nil {
		for _, fk := range target.ForeignKeys {
			have[schema.NormalizeSQL(fk)] = true
		}
	}
	var missing []string
	for _, fk := range tbl.ForeignKeys {
		if !have[schema.NormalizeSQL(fk)] {
			missing = append(missing, fk)
		}
	}
	return missing
}

// compareDDL compares ddl with the DDL of the same-named target object; ok is
// false when the target has no such object.
func compareDDL(ddl, found string, ok bool) schema.Status {
	if !ok {
		return schema.NotExist
	}
	if schema.NormalizeSQL(ddl) == schema.NormalizeSQL(found) {
		return schema.Matched
	}
	return schema.Modified
}

func markAbsent(s *schema.Schema, tick func()) {
	s.Status = schema.NotExist
	for _, tbl := range s.Tables {
		markTableAbsent(tbl)
		tick()
	}
	for _, v := range s.Views {
		v.Status = schema.NotExist
		tick()
	}
	for _, f := range s.Functions {
		f.Status = schema.NotExist
		tick()
	}
	for _, p := range s.Procedures {
		p.Status = schema.NotExist
		tick()
	}
}

func markTableAbsent(tbl *schema.Table) {
	tbl.Status = schema.NotExist
	for _, c := range tbl.Columns {
		c.Status = schema.NotExist
	}
	for _, idx := range tbl.Indexes {
		idx.Status = schema.NotExist
	}
}

func findIndex(list []*schema.Index, name string) (string, bool) {
	k := schema.Key(name)
	for _, x := range list {
		if schema.Key(x.Name) == k {
			return x.DDL, true
		}
	}
	return "", false
}

func findView(list []*schema.View, name string) (string, bool) {
	k := schema.Key(name)
	for _, x := range list {
		if schema.Key(x.Name) == k {
			return x.DDL, true
		}
	}
	return "", false
}

func findFunction(list []*schema.Function, name string) (string, bool) {
	k := schema.Key(name)
	for _, x := range list {
		if schema.Key(x.Name) == k {
			return x.DDL, true
		}
	}
	return "", false
}

func findProcedure(list []*schema.Procedure, name string) (string, bool) {
	k := schema.Key(name)
	for _, x := range list {
		if schema.Key(x.Name) == k {
			return x.DDL, true
		}
	}
	return "", false
}
