package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lib/pq"
)

// ConnParams are the explicit connection values handed to the dump tool.
type ConnParams struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// runFunc executes name with args and extra environment, returning stderr.
type runFunc func(ctx context.Context, name string, args, env []string) (string, error)

// Dumper produces a structure-only dump file with pg_dump.
type Dumper struct {
	Binary string
	Params ConnParams
	run    runFunc
}

func NewDumper(binary string, params ConnParams) *Dumper {
	if binary == "" {
		binary = "pg_dump"
	}
	return &Dumper{Binary: binary, Params: params, run: execRun}
}

// Args builds the pg_dump argument list writing to path.
func (d *Dumper) Args(path string) []string {
	var args []string
	if d.Params.Host != "" {
		args = append(args, "-h", d.Params.Host)
	}
	if d.Params.Port != "" {
		args = append(args, "-p", d.Params.Port)
	}
	if d.Params.User != "" {
		args = append(args, "-U", d.Params.User)
	}
	if d.Params.Database != "" {
		args = append(args, "-d", d.Params.Database)
	}
	return append(args, "--schema-only", "-f", path)
}

func (d *Dumper) env() []string {
	var env []string
	if d.Params.Password != "" {
		env = append(env, "PGPASSWORD="+d.Params.Password)
	}
	if d.Params.SSLMode != "" {
		env = append(env, "PGSSLMODE="+d.Params.SSLMode)
	}
	return env
}

// Dump writes the dump to path or fails with a *DumpError.
func (d *Dumper) Dump(ctx context.Context, path string) error {
	run := d.run
	if run == nil {
		run = execRun
	}
	stderr, err := run(ctx, d.Binary, d.Args(path), d.env())
	if err != nil {
		return &DumpError{Database: d.Params.Database, Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return nil
}

func execRun(ctx context.Context, name string, args, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// TempSnapshotPath reserves a temporary file for a dump and returns its path.
func TempSnapshotPath(prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.sql")
	if err != nil {
		return "", fmt.Errorf("create temp snapshot file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp snapshot file: %w", err)
	}
	return name, nil
}

// ParseConnParams accepts a postgres:// URL, a libpq key=value string or a
// semicolon separated Host=...;Port=...;Database=...;Username=...;Password=...
// connection string.
func ParseConnParams(dsn string) (ConnParams, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		kv, err := pq.ParseURL(dsn)
		if err != nil {
			return ConnParams{}, fmt.Errorf("parse connection url: %w", err)
		}
		return fromPairs(parseKeyValues(kv)), nil
	case strings.Contains(dsn, ";"):
		pairs := make(map[string]string)
		for _, part := range strings.Split(dsn, ";") {
			k, v, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}
			pairs[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}
		return fromPairs(pairs), nil
	default:
		return fromPairs(parseKeyValues(dsn)), nil
	}
}

func fromPairs(pairs map[string]string) ConnParams {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := pairs[k]; ok {
				return v
			}
		}
		return ""
	}
	return ConnParams{
		Host:     get("host", "server"),
		Port:     get("port"),
		User:     get("user", "username", "user id"),
		Password: get("password"),
		Database: get("dbname", "database"),
		SSLMode:  get("sslmode", "ssl mode"),
	}
}

// parseKeyValues splits a libpq "k=v k2='v 2'" string. Values may be single
// quoted and may escape characters with a backslash.
func parseKeyValues(s string) map[string]string {
	pairs := make(map[string]string)
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' {
			i++
		}
		key := strings.ToLower(s[start:i])
		if i >= len(s) || s[i] != '=' {
			continue
		}
		i++

		var val strings.Builder
		quoted := i < len(s) && s[i] == '\''
		if quoted {
			i++
		}
		for i < len(s) {
			c := s[i]
			if c == '\\' && i+1 < len(s) {
				val.WriteByte(s[i+1])
				i += 2
				continue
			}
			if quoted && c == '\'' {
				i++
				break
			}
			if !quoted && c == ' ' {
				break
			}
			val.WriteByte(c)
			i++
		}
		if key != "" {
			pairs[key] = val.String()
		}
	}
	return pairs
}
