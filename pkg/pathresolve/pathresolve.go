// Package pathresolve turns user-supplied path arguments into absolute
// filesystem paths, expanding wildcards (including ** and {a,b}) unless the
// path is taken literally.
package pathresolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("path not found")

// NotFoundError reports a pattern that matched nothing.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find path '%s' because it does not exist", e.Pattern)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Resolver resolves paths relative to WorkDir. Empty fields fall back to
// the process working directory and the user's home directory.
type Resolver struct {
	WorkDir string
	HomeDir string
}

// New returns a Resolver for the current process.
func New() *Resolver {
	return &Resolver{}
}

// Resolve returns the absolute paths pattern refers to. A literal path is
// made absolute without touching the filesystem. Otherwise wildcards are
// expanded and a pattern that matches nothing is a *NotFoundError.
func (r *Resolver) Resolve(pattern string, literal bool) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, &NotFoundError{Pattern: pattern}
	}

	// root is the home directory for ~ patterns. Only rel is what the user
	// typed, so wildcard characters in the home or working directory stay
	// literal.
	root, rel, err := r.splitHome(pattern)
	if err != nil {
		return nil, err
	}

	if literal || !hasMeta(rel) {
		abs, err := r.absolute(filepath.Join(root, rel))
		if err != nil {
			return nil, err
		}
		if literal {
			return []string{abs}, nil
		}
		if _, err := os.Lstat(abs); err != nil {
			if os.IsNotExist(err) {
				return nil, &NotFoundError{Pattern: pattern}
			}
			return nil, err
		}
		return []string{abs}, nil
	}

	prefix, glob := doublestar.SplitPattern(filepath.ToSlash(rel))
	base, err := r.absolute(filepath.Join(root, filepath.FromSlash(prefix)))
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(base), glob)
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern '%s': %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Pattern: pattern}
	}

	for i, m := range matches {
		matches[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *Resolver) absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	wd := r.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	return filepath.Join(wd, p), nil
}

// splitHome separates a leading ~ from the rest of p.
func (r *Resolver) splitHome(p string) (root, rel string, err error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return "", p, nil
	}

	home := r.HomeDir
	if home == "" {
		if home, err = os.UserHomeDir(); err != nil {
			return "", "", fmt.Errorf("failed to expand '~': %w", err)
		}
	}
	return home, strings.TrimLeft(p[1:], `/\`), nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
