package snapshot

import (
	"errors"
	"fmt"
)

// ErrDumpUnsupported is returned when a server cannot produce a
// PostgreSQL-dialect structure dump.
var ErrDumpUnsupported = errors.New("structure dump not supported for this driver")

// ReadError reports that the dump text could not be obtained.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read snapshot: %v", e.Err)
	}
	return fmt.Sprintf("read snapshot %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DumpError reports a failed dump run, with whatever the tool wrote to stderr.
type DumpError struct {
	Database string
	Stderr   string
	Err      error
}

func (e *DumpError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("dump of %q failed: %v: %s", e.Database, e.Err, e.Stderr)
	}
	return fmt.Sprintf("dump of %q failed: %v", e.Database, e.Err)
}

func (e *DumpError) Unwrap() error { return e.Err }
