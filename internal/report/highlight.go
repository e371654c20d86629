package report

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

var (
	keywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#569CD6")).Bold(true)
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4EC9B0"))
	functionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DCDCAA"))
	stringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178"))
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B5CEA8"))
	commentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6A9955")).Italic(true)
	operatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4"))
)

// Highlighter colors DDL text using the chroma PostgreSQL lexer.
type Highlighter struct {
	lexer chroma.Lexer
}

func NewHighlighter() *Highlighter {
	l := lexers.Get("PostgreSQL")
	if l == nil {
		l = lexers.Get("SQL")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(l)}
}

// Highlight returns sql with every recognized token styled. Newlines are kept
// outside the styled segments so the text lines up as written.
func (h *Highlighter) Highlight(sql string) string {
	iter, err := h.lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) * 2)
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		style, ok := styleFor(tok.Type)
		if !ok {
			b.WriteString(tok.Value)
			continue
		}
		lines := strings.Split(tok.Value, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i < len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func styleFor(tt chroma.TokenType) (lipgloss.Style, bool) {
	switch {
	case tt == chroma.KeywordType || tt == chroma.NameBuiltin:
		return typeStyle, true
	case tt == chroma.NameFunction:
		return functionStyle, true
	case tt.InCategory(chroma.Keyword):
		return keywordStyle, true
	case tt.InSubCategory(chroma.LiteralString):
		return stringStyle, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return numberStyle, true
	case tt.InCategory(chroma.Comment):
		return commentStyle, true
	case tt == chroma.Operator || tt == chroma.OperatorWord:
		return operatorStyle, true
	default:
		return lipgloss.Style{}, false
	}
}
