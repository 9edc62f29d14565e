// Package envfile loads CLOCKIFY_* settings from .env files so an API key can
// live next to a project without being exported in the shell.
// Variables already present in the environment always win.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Load applies each file in order. A variable set by an earlier file (or
// already in the environment) is never overwritten by a later one.
// Missing files are skipped; the first read or parse failure is returned
// after the remaining files have been applied.
func Load(paths ...string) error {
	var firstErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := loadFile(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, v := range vars {
		if _, set := os.LookupEnv(v.Key); set && os.Getenv(v.Key) != "" {
			continue
		}
		_ = os.Setenv(v.Key, v.Value)
	}
	return nil
}

// Var is a single KEY=VALUE assignment.
type Var struct {
	Key   string
	Value string
}

// Parse reads assignments from r in file order, skipping blanks, comments
// and malformed lines.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		vars = append(vars, Var{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseEnvLine extracts KEY=VALUE from a line.
// Handles an optional export prefix and matching quotes around the value.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}
