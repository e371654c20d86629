// Package snapshot turns a structure-only PostgreSQL dump into a schema
// forest, and produces such dumps by running pg_dump.
package snapshot

import (
	"io"
	"os"
)

// ParseFile reads and parses the dump at path. The only error it returns is
// a *ReadError; statements it cannot make sense of are left out silently.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return ParseText(string(data)), nil
}

// Parse reads r to the end and parses it.
func Parse(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	return ParseText(string(data)), nil
}

// ParseText parses dump text already held in memory.
func ParseText(text string) *Result {
	return Build(Segment(SplitLines(text)))
}
