// Package locate finds external artifacts (jars, models, data directories,
// binaries) on disk.
//
// A Query is resolved by trying, in order: an explicit path, each environment
// variable, each search directory and, for binaries, the PATH. The first
// existing match wins.
package locate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind selects whether a query resolves a regular file or a directory.
type Kind int

const (
	// File resolves a regular file.
	File Kind = iota
	// Dir resolves a directory.
	Dir
)

func (k Kind) String() string {
	if k == Dir {
		return "directory"
	}
	return "file"
}

// Query describes one artifact lookup.
type Query struct {
	// Name is the artifact's base name. It may be a glob pattern such as
	// "stanford-segmenter-*.jar".
	Name string

	// Path is an explicit location supplied by the caller.
	Path string

	// EnvVars are consulted in order. Each value may hold several entries
	// separated by os.PathListSeparator.
	EnvVars []string

	// SearchDirs are directories probed for Name after the environment.
	SearchDirs []string

	Kind Kind

	// UsePATH enables a final exec.LookPath lookup for binaries.
	UsePATH bool

	// URL and Hint are carried into NotFoundError.
	URL  string
	Hint string
}

// Locator resolves queries against the filesystem and an environment.
type Locator struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Default resolves against the process environment.
var Default = &Locator{}

// Find resolves q using the process environment.
func Find(q Query) (string, error) {
	return Default.Find(q)
}

// Find resolves q, returning the first existing match.
func (l *Locator) Find(q Query) (string, error) {
	if q.Name == "" && q.Path == "" {
		return "", errors.New("locate: empty query")
	}
	if q.Name != "" && !doublestar.ValidatePattern(q.Name) {
		return "", fmt.Errorf("locate: invalid name pattern %q", q.Name)
	}

	var tried []string

	if q.Path != "" {
		if exists(q.Path, q.Kind) {
			return q.Path, nil
		}
		tried = append(tried, fmt.Sprintf("explicit path %q", q.Path))
	}

	if q.Name == "" {
		return "", l.notFound(q, tried)
	}

	for _, name := range q.EnvVars {
		value, ok := l.lookupEnv(name)
		if !ok || value == "" {
			tried = append(tried, fmt.Sprintf("$%s (unset)", name))
			continue
		}
		for _, entry := range filepath.SplitList(value) {
			if entry == "" {
				continue
			}
			if p, ok := matchEntry(entry, q.Name, q.Kind); ok {
				return p, nil
			}
		}
		tried = append(tried, fmt.Sprintf("$%s=%s", name, value))
	}

	for _, dir := range q.SearchDirs {
		if dir == "" {
			continue
		}
		if p, ok := matchIn(dir, q.Name, q.Kind); ok {
			return p, nil
		}
		tried = append(tried, fmt.Sprintf("search dir %q", dir))
	}

	if q.UsePATH {
		if p, err := exec.LookPath(q.Name); err == nil {
			return p, nil
		}
		tried = append(tried, "PATH")
	}

	return "", l.notFound(q, tried)
}

func (l *Locator) lookupEnv(name string) (string, bool) {
	if l != nil && l.LookupEnv != nil {
		return l.LookupEnv(name)
	}
	return os.LookupEnv(name)
}

func (l *Locator) notFound(q Query, tried []string) error {
	name := q.Name
	if name == "" {
		name = filepath.Base(q.Path)
	}
	return &NotFoundError{
		Name:    name,
		Kind:    q.Kind,
		Tried:   tried,
		EnvVars: q.EnvVars,
		URL:     q.URL,
		Hint:    q.Hint,
	}
}

// matchEntry checks an environment entry: the entry itself when its base
// name matches, otherwise the entry treated as a containing directory.
func matchEntry(entry, pattern string, kind Kind) (string, bool) {
	if exists(entry, kind) && doublestar.MatchUnvalidated(pattern, filepath.Base(entry)) {
		return entry, true
	}
	return matchIn(entry, pattern, kind)
}

// matchIn looks for pattern inside dir. With several matches the highest
// version wins (see compareVersions).
func matchIn(dir, pattern string, kind Kind) (string, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}

	// Plain names skip the directory walk.
	if !hasMeta(pattern) {
		p := filepath.Join(dir, pattern)
		return p, exists(p, kind)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), filepath.ToSlash(pattern))
	if err != nil {
		return "", false
	}
	slices.SortFunc(matches, func(a, b string) int {
		return compareVersions(b, a)
	})
	for _, m := range matches {
		p := filepath.Join(dir, filepath.FromSlash(m))
		if exists(p, kind) {
			return p, true
		}
	}
	return "", false
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

func exists(path string, kind Kind) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if kind == Dir {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}
