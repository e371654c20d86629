package engine

import (
	"fmt"
	"strings"

	"struct-sync/internal/schema"
)

// SyncScript lists the DDL that would bring target toward an annotated source
// forest. Statements are grouped so that dependencies come first: schemas,
// tables (ordered by foreign-key dependency), columns, indexes, foreign keys,
// then routines and views. Modified objects follow as commented DDL for
// manual review; nothing is ever dropped.
func SyncScript(source, target []*schema.Schema) []string {
	var (
		schemas, tables, columns, indexes, fks, routines, views, review []string
	)

	for _, s := range source {
		if s == nil || s.Status == schema.Matched {
			continue
		}
		ts := schema.Find(target, s.Name)

		if s.Status == schema.NotExist {
			ddl := s.DDL
			if ddl == "" {
				ddl = fmt.Sprintf("CREATE SCHEMA %s;", schema.QuoteIdent(s.Name))
			}
			schemas = append(schemas, ddl)
		}

		var missing []*schema.Table
		for _, t := range s.Tables {
			switch t.Status {
			case schema.NotExist:
				missing = append(missing, t)
			case schema.Modified:
				var tt *schema.Table
				if ts != nil {
					tt = ts.FindTable(t.Name)
				}
				for _, c := range t.Columns {
					switch c.Status {
					case schema.NotExist:
						columns = append(columns, c.DDL)
					case schema.Modified:
						review = append(review, commented(fmt.Sprintf("column %s.%s changed", schema.QualifiedName(s.Name, t.Name), c.Name), c.DDL))
					}
				}
				for _, idx := range t.Indexes {
					switch idx.Status {
					case schema.NotExist:
						indexes = append(indexes, idx.DDL)
					case schema.Modified:
						review = append(review, commented("index "+idx.Name+" changed", idx.DDL))
					}
				}
				fks = append(fks, MissingForeignKeys(t, tt)...)
			}
		}

		for _, t := range schema.SortTablesByFKCount(missing, s.Name) {
			tables = append(tables, t.DDL)
			for _, idx := range t.Indexes {
				indexes = append(indexes, idx.DDL)
			}
			fks = append(fks, t.ForeignKeys...)
		}

		for _, f := range s.Functions {
			routines, review = place(routines, review, f.Status, "function "+schema.QualifiedName(s.Name, f.Name), f.DDL)
		}
		for _, p := range s.Procedures {
			routines, review = place(routines, review, p.Status, "procedure "+schema.QualifiedName(s.Name, p.Name), p.DDL)
		}
		for _, v := range s.Views {
			views, review = place(views, review, v.Status, "view "+schema.QualifiedName(s.Name, v.Name), v.DDL)
		}
	}

	var out []string
	for _, group := range [][]string{schemas, tables, columns, indexes, fks, routines, views, review} {
		out = append(out, group...)
	}
	return out
}

// place appends ddl to create when the object is missing, or a commented copy
// to review when it differs.
func place(create, review []string, status schema.Status, label, ddl string) ([]string, []string) {
	switch status {
	case schema.NotExist:
		create = append(create, ddl)
	case schema.Modified:
		review = append(review, commented(label+" changed", ddl))
	}
	return create, review
}

func commented(title, ddl string) string {
	var b strings.Builder
	b.WriteString("-- " + title + "\n")
	lines := strings.Split(strings.TrimSpace(ddl), "\n")
	for i, line := range lines {
		b.WriteString("-- " + line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
