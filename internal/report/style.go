// Package report renders parsed and compared schema forests for the terminal
// and exports them as YAML or JSON.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"struct-sync/internal/schema"
)

// Options controls how a forest is rendered.
type Options struct {
	Color       bool // color nodes by status and highlight DDL
	OnlyChanges bool // hide nodes whose status is Matched
	ShowStatus  bool // append the status to every node label
}

var (
	matchedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	notExistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC143C"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DAA520"))
	groupStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// StatusStyle returns the style used for nodes with status s.
func StatusStyle(s schema.Status) lipgloss.Style {
	switch s {
	case schema.NotExist:
		return notExistStyle
	case schema.Modified:
		return modifiedStyle
	default:
		return matchedStyle
	}
}

func (o Options) paint(text string, s schema.Status) string {
	if o.ShowStatus {
		text += " [" + s.String() + "]"
	}
	if !o.Color {
		return text
	}
	return StatusStyle(s).Render(text)
}

func (o Options) group(text string) string {
	if !o.Color {
		return text
	}
	return groupStyle.Render(text)
}

func (o Options) hidden(s schema.Status) bool {
	return o.OnlyChanges && s == schema.Matched
}
