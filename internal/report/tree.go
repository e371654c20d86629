package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"struct-sync/internal/schema"
)

var constraintRe = regexp.MustCompile(`(?is)\bCONSTRAINT\s+(.*)$`)

// Tree builds the display tree of a forest: schema, object groups, tables
// with their columns, indexes and foreign keys.
func Tree(forest []*schema.Schema, opts Options) *tree.Tree {
	root := tree.New()
	for _, s := range forest {
		if s == nil || opts.hidden(s.Status) {
			continue
		}
		node := tree.Root(opts.paint(s.Name, s.Status))

		if tables := tableGroup(s.Tables, opts); tables != nil {
			node.Child(tables)
		}
		addLeaves(node, "Views", opts, len(s.Views), func(i int) (string, schema.Status) {
			return s.Views[i].Name, s.Views[i].Status
		})
		addLeaves(node, "Functions", opts, len(s.Functions), func(i int) (string, schema.Status) {
			return s.Functions[i].Name, s.Functions[i].Status
		})
		addLeaves(node, "Procedures", opts, len(s.Procedures), func(i int) (string, schema.Status) {
			return s.Procedures[i].Name, s.Procedures[i].Status
		})
		root.Child(node)
	}
	return root
}

// WriteTree renders forest to w.
func WriteTree(w io.Writer, forest []*schema.Schema, opts Options) error {
	out := Tree(forest, opts).String()
	if out == "" {
		_, err := fmt.Fprintln(w, "(no objects)")
		return err
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func tableGroup(tables []*schema.Table, opts Options) *tree.Tree {
	group := tree.Root(opts.group("Tables"))
	n := 0
	for _, t := range tables {
		if opts.hidden(t.Status) {
			continue
		}
		node := tree.Root(opts.paint(t.Name, t.Status))
		addLeaves(node, "Columns", opts, len(t.Columns), func(i int) (string, schema.Status) {
			return ColumnLabel(t.Columns[i]), t.Columns[i].Status
		})
		addLeaves(node, "Indexes", opts, len(t.Indexes), func(i int) (string, schema.Status) {
			return t.Indexes[i].Name, t.Indexes[i].Status
		})
		if len(t.ForeignKeys) > 0 && !opts.OnlyChanges {
			fks := tree.Root(opts.group("Foreign Keys"))
			for _, fk := range t.ForeignKeys {
				fks.Child(ForeignKeyLabel(fk))
			}
			node.Child(fks)
		}
		group.Child(node)
		n++
	}
	if n == 0 {
		return nil
	}
	return group
}

// addLeaves adds a titled group of n leaves to parent, skipping hidden ones
// and the group itself when nothing is left.
func addLeaves(parent *tree.Tree, title string, opts Options, n int, at func(int) (string, schema.Status)) {
	group := tree.Root(opts.group(title))
	added := 0
	for i := 0; i < n; i++ {
		name, status := at(i)
		if opts.hidden(status) {
			continue
		}
		group.Child(opts.paint(name, status))
		added++
	}
	if added > 0 {
		parent.Child(group)
	}
}

// ColumnLabel formats a column as "name : type", marking primary keys.
func ColumnLabel(c *schema.Column) string {
	label := c.Name + " : " + c.DataType
	if c.IsPK {
		label += " [PK]"
	}
	return label
}

// ForeignKeyLabel shortens a foreign-key statement to its constraint clause.
func ForeignKeyLabel(fk string) string {
	text := strings.Join(strings.Fields(fk), " ")
	if m := constraintRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	return strings.TrimSuffix(text, ";")
}
