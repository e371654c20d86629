package snapshot

import (
	"regexp"
	"strings"
)

// Kind classifies a statement by its leading keywords.
type Kind int

const (
	KindOther Kind = iota
	KindTable
	KindView
	KindIndex
	KindSchema
	KindFunction
	KindProcedure
	KindAlter
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "TABLE"
	case KindView:
		return "VIEW"
	case KindIndex:
		return "INDEX"
	case KindSchema:
		return "SCHEMA"
	case KindFunction:
		return "FUNCTION"
	case KindProcedure:
		return "PROCEDURE"
	case KindAlter:
		return "ALTER"
	default:
		return "OTHER"
	}
}

// Statement is one complete statement cut out of a dump.
type Statement struct {
	Kind Kind
	Text string
	Line int // 1-based line the statement starts on
}

var statementStarts = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindFunction, regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\b`)},
	{KindProcedure, regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?PROCEDURE\b`)},
	{KindTable, regexp.MustCompile(`(?i)^\s*CREATE\s+(?:UNLOGGED\s+)?TABLE\b`)},
	{KindView, regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?VIEW\b`)},
	{KindIndex, regexp.MustCompile(`(?i)^\s*CREATE\s+(?:UNIQUE\s+)?INDEX\b`)},
	{KindSchema, regexp.MustCompile(`(?i)^\s*CREATE\s+SCHEMA\b`)},
	{KindAlter, regexp.MustCompile(`(?i)^\s*ALTER\s+TABLE\b`)},
}

// bodyOpen finds the AS marker that opens a dollar-quoted routine body.
var bodyOpen = regexp.MustCompile(`(?i)\bAS\s+\$([A-Za-z0-9_]*)\$`)

// scanState is the state of the routine body scanner.
type scanState int

const (
	stateNormal scanState = iota
	stateQuotedBody
	stateAwaitTerminator
)

// SplitLines splits dump text into lines, dropping carriage returns.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Segment cuts lines into classified statements, in source order. Lines that
// start no recognized statement are skipped unless they end with a
// terminator, in which case they form a single-line KindOther statement.
func Segment(lines []string) []Statement {
	var stmts []Statement
	for i := 0; i < len(lines); {
		kind, ok := classify(lines[i])
		if !ok {
			if endsWithTerminator(lines[i]) {
				stmts = append(stmts, Statement{Kind: KindOther, Text: lines[i], Line: i + 1})
			}
			i++
			continue
		}

		var end int
		switch kind {
		case KindFunction, KindProcedure:
			end = routineEnd(lines, i)
		case KindTable:
			end = tableEnd(lines, i)
		default:
			end = terminatorEnd(lines, i)
		}

		stmts = append(stmts, Statement{
			Kind: kind,
			Text: strings.Join(lines[i:end+1], "\n"),
			Line: i + 1,
		})
		i = end + 1
	}
	return stmts
}

func classify(line string) (Kind, bool) {
	for _, s := range statementStarts {
		if s.re.MatchString(line) {
			return s.kind, true
		}
	}
	return KindOther, false
}

func endsWithTerminator(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t\r"), ";")
}

// terminatorEnd returns the index of the first line at or after start that
// ends with a terminator, or the last line when input runs out.
func terminatorEnd(lines []string, start int) int {
	for j := start; j < len(lines); j++ {
		if endsWithTerminator(lines[j]) {
			return j
		}
	}
	return len(lines) - 1
}

// routineEnd ends a function or procedure. Once a $tag$ body has been opened
// only the same tag closes it, and the statement then ends at the next
// terminator. An unclosed body falls back to the first terminator.
func routineEnd(lines []string, start int) int {
	state := stateNormal
	tag := ""

	for j := start; j < len(lines); j++ {
		line := lines[j]
		switch state {
		case stateNormal:
			loc := bodyOpen.FindStringSubmatchIndex(line)
			if loc == nil {
				if endsWithTerminator(line) {
					return j
				}
				continue
			}
			tag = "$" + line[loc[2]:loc[3]] + "$"
			state = stateQuotedBody
			if strings.Contains(line[loc[1]:], tag) {
				state = stateAwaitTerminator
				if endsWithTerminator(line) {
					return j
				}
			}
		case stateQuotedBody:
			if strings.Contains(line, tag) {
				state = stateAwaitTerminator
				if endsWithTerminator(line) {
					return j
				}
			}
		case stateAwaitTerminator:
			if endsWithTerminator(line) {
				return j
			}
		}
	}

	if state == stateQuotedBody {
		return terminatorEnd(lines, start)
	}
	return len(lines) - 1
}

// tableEnd ends a CREATE TABLE at the first line closing its parenthesized
// block with ");". A statement that never opens a block ends at its first
// terminator, and so does one whose block is never closed.
func tableEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for j := start; j < len(lines); j++ {
		depth = parenDepth(lines[j], depth)
		if depth > 0 {
			opened = true
		}
		if depth <= 0 && strings.HasSuffix(strings.TrimRight(lines[j], " \t\r"), ");") {
			return j
		}
		if !opened && depth <= 0 && endsWithTerminator(lines[j]) {
			return j
		}
	}
	return terminatorEnd(lines, start)
}

// parenDepth adds the parentheses of line to depth, ignoring quoted text and
// trailing -- comments.
func parenDepth(line string, depth int) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '-':
			if i+1 < len(line) && line[i+1] == '-' {
				return depth
			}
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth
}
