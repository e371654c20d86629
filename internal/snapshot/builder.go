package snapshot

import (
	"fmt"
	"regexp"
	"strings"

	"struct-sync/internal/schema"
)

// ident matches a quoted or bare identifier as two alternative groups.
const ident = `(?:"([^"]+)"|(\w+))`

const qualified = ident + `\.` + ident

var (
	schemaNameRe = regexp.MustCompile(`(?i)CREATE\s+SCHEMA\s+(?:IF\s+NOT\s+EXISTS\s+)?` + ident)
	tableNameRe  = regexp.MustCompile(`(?i)CREATE\s+(?:UNLOGGED\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` + qualified)
	viewNameRe   = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?VIEW\s+` + qualified)
	funcNameRe   = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\s+` + ident + `\.("[^"]+"|[^\s(]+)`)
	procNameRe   = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?PROCEDURE\s+` + ident + `\.("[^"]+"|[^\s(]+)`)
	indexNameRe  = regexp.MustCompile(`(?i)CREATE\s+(?:UNIQUE\s+)?INDEX\s+(?:CONCURRENTLY\s+)?(?:IF\s+NOT\s+EXISTS\s+)?` + ident + `\s+ON\s+(?:ONLY\s+)?` + qualified)

	alterHead  = `(?is)ALTER\s+TABLE\s+(?:IF\s+EXISTS\s+)?(?:ONLY\s+)?` + qualified
	primaryRe  = regexp.MustCompile(alterHead + `.*ADD\s+CONSTRAINT.*PRIMARY\s+KEY\s*\(([^)]+)\)`)
	foreignRe  = regexp.MustCompile(alterHead + `.*ADD\s+CONSTRAINT.*FOREIGN\s+KEY\s*\(([^)]+)\)\s+REFERENCES\s+([^\s(]+)\s*\(([^)]+)\)`)
	identityRe = regexp.MustCompile(alterHead + `.*ALTER\s+COLUMN\s+` + ident + `.*ADD\s+GENERATED`)

	quotedColumnRe = regexp.MustCompile(`^\s*"([^"]+)"\s+(\S.*)$`)
	bareColumnRe   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_$]*)\s+(\S.*)$`)
)

// Table-level clauses that start a line inside a column list but are not columns.
var tableConstraintWords = map[string]bool{
	"constraint": true,
	"primary":    true,
	"unique":     true,
	"check":      true,
	"foreign":    true,
	"exclude":    true,
	"like":       true,
}

// Stats counts what the builder saw and what it silently left out.
type Stats struct {
	Statements      map[Kind]int
	Unnamed         int // recognized statements whose name could not be extracted
	DroppedIndexes  int // indexes whose table was not built yet
	DroppedAlters   int // ALTER facts whose schema or table could not be resolved
	UnmatchedAlters int // ALTER statements matching none of the known patterns
}

// Result is a built forest plus parse diagnostics.
type Result struct {
	Schemas []*schema.Schema
	Stats   Stats
}

type builder struct {
	schemas []*schema.Schema
	byKey   map[string]*schema.Schema
	stats   Stats
}

// Build turns segmented statements into a forest of schemas. Object creation
// runs first; ALTER statements are applied afterwards so every table they
// reference that exists at all has already been built.
func Build(stmts []Statement) *Result {
	b := &builder{
		byKey: make(map[string]*schema.Schema),
		stats: Stats{Statements: make(map[Kind]int)},
	}

	var alters []Statement
	for _, s := range stmts {
		b.stats.Statements[s.Kind]++
		switch s.Kind {
		case KindSchema:
			b.addSchema(s.Text)
		case KindTable:
			b.addTable(s.Text)
		case KindView:
			b.addView(s.Text)
		case KindFunction:
			b.addFunction(s.Text)
		case KindProcedure:
			b.addProcedure(s.Text)
		case KindIndex:
			b.addIndex(s.Text)
		case KindAlter:
			alters = append(alters, s)
		}
	}

	for _, s := range alters {
		b.applyAlter(s.Text)
	}

	if b.schemas == nil {
		b.schemas = []*schema.Schema{}
	}
	return &Result{Schemas: b.schemas, Stats: b.stats}
}

func (b *builder) ensureSchema(name string) *schema.Schema {
	k := schema.Key(name)
	if s, ok := b.byKey[k]; ok {
		return s
	}
	s := schema.NewSchema(name)
	b.byKey[k] = s
	b.schemas = append(b.schemas, s)
	return s
}

func (b *builder) lookupTable(schemaName, tableName string) *schema.Table {
	s, ok := b.byKey[schema.Key(schemaName)]
	if !ok {
		return nil
	}
	return s.FindTable(tableName)
}

func (b *builder) addSchema(text string) {
	m := schemaNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	b.ensureSchema(pick(m, 1)).DDL = text
}

func (b *builder) addTable(text string) {
	m := tableNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	schemaName, tableName := pick(m, 1), pick(m, 3)

	t := schema.NewTable(tableName, strings.TrimSpace(text))
	t.Columns = parseColumns(text, schemaName, tableName)
	s := b.ensureSchema(schemaName)
	s.Tables = append(s.Tables, t)
}

// parseColumns reads column definitions from the top level of a CREATE TABLE
// column list, one per line.
func parseColumns(text, schemaName, tableName string) []*schema.Column {
	cols := []*schema.Column{}
	depth := 0
	for _, line := range strings.Split(text, "\n") {
		before := depth
		depth = parenDepth(line, depth)
		if before != 1 {
			continue
		}

		def := strings.TrimSpace(line)
		if depth < 1 {
			def = strings.TrimSuffix(def, ";")
			def = strings.TrimSpace(strings.TrimSuffix(def, ")"))
		}
		def = strings.TrimSpace(strings.TrimSuffix(def, ","))
		if def == "" || strings.HasPrefix(def, "--") {
			continue
		}

		var name, dataType string
		if m := quotedColumnRe.FindStringSubmatch(def); m != nil {
			name, dataType = m[1], m[2]
		} else if m := bareColumnRe.FindStringSubmatch(def); m != nil && !tableConstraintWords[strings.ToLower(m[1])] {
			name, dataType = m[1], m[2]
		} else {
			continue
		}

		cols = append(cols, &schema.Column{
			Name:     name,
			DataType: strings.TrimSpace(dataType),
			DDL:      fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", schema.QualifiedName(schemaName, tableName), def),
			Status:   schema.Matched,
		})
	}
	return cols
}

func (b *builder) addView(text string) {
	m := viewNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	s := b.ensureSchema(pick(m, 1))
	s.Views = append(s.Views, &schema.View{
		Name:   pick(m, 3),
		DDL:    strings.TrimSpace(text),
		Status: schema.Matched,
	})
}

func (b *builder) addFunction(text string) {
	m := funcNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	s := b.ensureSchema(pick(m, 1))
	s.Functions = append(s.Functions, &schema.Function{
		Name:   routineName(m[3]),
		DDL:    strings.TrimSpace(text),
		Status: schema.Matched,
	})
}

func (b *builder) addProcedure(text string) {
	m := procNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	s := b.ensureSchema(pick(m, 1))
	s.Procedures = append(s.Procedures, &schema.Procedure{
		Name:   routineName(m[3]),
		DDL:    strings.TrimSpace(text),
		Status: schema.Matched,
	})
}

// routineName strips a parameter list and quotes from a routine name.
func routineName(raw string) string {
	if strings.HasPrefix(raw, `"`) {
		return strings.Trim(raw, `"`)
	}
	return strings.Trim(strings.SplitN(raw, "(", 2)[0], `"`)
}

func (b *builder) addIndex(text string) {
	m := indexNameRe.FindStringSubmatch(text)
	if m == nil {
		b.stats.Unnamed++
		return
	}
	indexName, schemaName, tableName := pick(m, 1), pick(m, 3), pick(m, 5)

	s, ok := b.byKey[schema.Key(schemaName)]
	if !ok {
		b.stats.DroppedIndexes++
		return
	}
	t := s.LastTable(tableName)
	if t == nil {
		b.stats.DroppedIndexes++
		return
	}
	t.Indexes = append(t.Indexes, &schema.Index{
		Name:   indexName,
		DDL:    strings.TrimSpace(text),
		Status: schema.Matched,
	})
}

// applyAlter records primary keys, foreign keys and identity columns. Each
// pattern is tried on its own.
func (b *builder) applyAlter(text string) {
	matched := false

	if m := primaryRe.FindStringSubmatch(text); m != nil {
		matched = true
		if t := b.lookupTable(pick(m, 1), pick(m, 3)); t != nil {
			for _, name := range strings.Split(m[5], ",") {
				if c := t.FindColumn(strings.Trim(strings.TrimSpace(name), `"`)); c != nil {
					c.IsPK = true
				}
			}
		} else {
			b.stats.DroppedAlters++
		}
	}

	if m := foreignRe.FindStringSubmatch(text); m != nil {
		matched = true
		if t := b.lookupTable(pick(m, 1), pick(m, 3)); t != nil {
			t.ForeignKeys = append(t.ForeignKeys, strings.TrimSpace(text))
		} else {
			b.stats.DroppedAlters++
		}
	}

	if m := identityRe.FindStringSubmatch(text); m != nil {
		matched = true
		if t := b.lookupTable(pick(m, 1), pick(m, 3)); t != nil {
			t.Indexes = append(t.Indexes, &schema.Index{
				Name:     "identity_" + pick(m, 5),
				DDL:      strings.TrimSpace(text),
				Identity: true,
				Status:   schema.Matched,
			})
		} else {
			b.stats.DroppedAlters++
		}
	}

	if !matched {
		b.stats.UnmatchedAlters++
	}
}

// pick returns the quoted alternative at i or the bare one at i+1.
func pick(m []string, i int) string {
	if m[i] != "" {
		return m[i]
	}
	return m[i+1]
}
