package schema

import (
	"regexp"
	"strings"
)

// Key is the canonical lookup key for an object name. The original casing is
// kept on the object itself; Key is only used for matching.
func Key(name string) string {
	return strings.ToLower(name)
}

// NormalizeSQL collapses whitespace runs, trims, drops one trailing
// semicolon and folds case. It is the only equality used when comparing DDL.
func NormalizeSQL(sql string) string {
	joined := strings.Join(strings.Fields(sql), " ")
	if strings.HasSuffix(joined, ";") {
		joined = strings.TrimRight(joined[:len(joined)-1], " ")
	}
	return strings.ToLower(joined)
}

var lowerIdent = regexp.MustCompile(`^[a-z0-9_]+$`)

// QuoteIdent double-quotes an identifier unless it is plain lower case.
func QuoteIdent(name string) string {
	if lowerIdent.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QualifiedName renders schema.name with quoting where needed.
func QualifiedName(schemaName, name string) string {
	return QuoteIdent(schemaName) + "." + QuoteIdent(name)
}
