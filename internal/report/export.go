package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"struct-sync/internal/schema"
)

// Formats accepted by Export.
const (
	FormatTree = "tree"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Export writes forest to w as YAML or JSON.
func Export(w io.Writer, forest []*schema.Schema, format string) error {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(forest); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(forest); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteScript prints sync statements separated by blank lines, highlighted
// when h is not nil.
func WriteScript(w io.Writer, stmts []string, h *Highlighter) error {
	if len(stmts) == 0 {
		_, err := fmt.Fprintln(w, "-- nothing to apply")
		return err
	}
	for i, stmt := range stmts {
		if h != nil {
			stmt = h.Highlight(stmt)
		}
		sep := "\n\n"
		if i == len(stmts)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, stmt+sep); err != nil {
			return err
		}
	}
	return nil
}
