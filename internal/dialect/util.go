package dialect

import (
	"strings"
)

// systemNames builds a quoted, comma separated IN list of catalog names.
func systemNames(names ...string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + strings.ReplaceAll(n, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
