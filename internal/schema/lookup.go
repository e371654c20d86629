package schema

import (
	"strings"
)

// Lookup finds the DDL of one object by a dotted path: "schema",
// "schema.object" for tables, views, functions and procedures, or
// "schema.table.child" for a column or index. kind names what was found.
func Lookup(forest []*Schema, path string) (kind, ddl string, ok bool) {
	parts := strings.SplitN(path, ".", 3)
	for i := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(parts[i]), `"`)
	}

	s := Find(forest, parts[0])
	if s == nil {
		return "", "", false
	}
	if len(parts) == 1 {
		return "schema", s.DDL, true
	}

	name := Key(parts[1])
	if t := s.FindTable(name); t != nil {
		if len(parts) == 2 {
			return "table", t.DDL, true
		}
		if c := t.FindColumn(parts[2]); c != nil {
			return "column", c.DDL, true
		}
		for _, idx := range t.Indexes {
			if Key(idx.Name) == Key(parts[2]) {
				return "index", idx.DDL, true
			}
		}
		return "", "", false
	}
	if len(parts) > 2 {
		return "", "", false
	}

	for _, v := range s.Views {
		if Key(v.Name) == name {
			return "view", v.DDL, true
		}
	}
	for _, f := range s.Functions {
		if Key(f.Name) == name {
			return "function", f.DDL, true
		}
	}
	for _, p := range s.Procedures {
		if Key(p.Name) == name {
			return "procedure", p.DDL, true
		}
	}
	return "", "", false
}
