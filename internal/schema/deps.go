package schema

import (
	"regexp"
	"strings"
)

var referencesRe = regexp.MustCompile(`(?is)REFERENCES\s+(?:(?:"([^"]+)"|(\w+))\.)?(?:"([^"]+)"|(\w+))`)

// References extracts the schema and table named by the REFERENCES clause of
// a foreign-key statement. The schema is empty when unqualified.
func References(fk string) (schemaName, tableName string, ok bool) {
	m := referencesRe.FindStringSubmatch(fk)
	if m == nil {
		return "", "", false
	}
	return firstNonEmpty(m[1], m[2]), firstNonEmpty(m[3], m[4]), true
}

// Dependencies lists the names of tables in the same schema that t references
// through its foreign keys, excluding self references.
func Dependencies(t *Table, schemaName string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, fk := range t.ForeignKeys {
		refSchema, refTable, ok := References(fk)
		if !ok {
			continue
		}
		if refSchema != "" && Key(refSchema) != Key(schemaName) {
			continue
		}
		k := Key(refTable)
		if k == Key(t.Name) || seen[k] {
			continue
		}
		seen[k] = true
		deps = append(deps, refTable)
	}
	return deps
}

// SortTablesByFKCount orders tables so that referenced tables come before the
// tables referencing them. Cycles are broken with a score: fewer unresolved
// dependencies first, tables taking part in a two-table cycle preferred.
func SortTablesByFKCount(tables []*Table, schemaName string) []*Table {
	known := make(map[string]*Table, len(tables))
	for _, t := range tables {
		known[Key(t.Name)] = t
	}

	// Only dependencies on tables in this set take part in ordering.
	deps := make(map[*Table][]string, len(tables))
	for _, t := range tables {
		for _, d := range Dependencies(t, schemaName) {
			if _, ok := known[Key(d)]; ok {
				deps[t] = append(deps[t], Key(d))
			}
		}
	}

	var sorted []*Table
	processed := make(map[string]bool)

	for len(sorted) < len(tables) {
		added := false

		for _, t := range tables {
			if processed[Key(t.Name)] {
				continue
			}
			ready := true
			for _, d := range deps[t] {
				if !processed[d] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, t)
				processed[Key(t.Name)] = true
				added = true
			}
		}

		if added {
			continue
		}

		var best *Table
		bestScore := 0
		for _, t := range tables {
			if processed[Key(t.Name)] {
				continue
			}
			score := 0
			circular := false
			for _, d := range deps[t] {
				if processed[d] {
					continue
				}
				score -= 100
				for _, back := range deps[known[d]] {
					if back == Key(t.Name) {
						circular = true
					}
				}
			}
			if circular {
				score += 500
			}
			if best == nil || score > bestScore || (score == bestScore && Key(t.Name) < Key(best.Name)) {
				best = t
				bestScore = score
			}
		}
		if best == nil {
			break
		}
		sorted = append(sorted, best)
		processed[Key(best.Name)] = true
	}

	return sorted
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
