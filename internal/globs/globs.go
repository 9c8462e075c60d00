// Package globs implements comma-separated glob pattern matching with
// doublestar semantics and "!" negation, used by apply's --skip, --only,
// and --exec flags.
package globs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern holds parsed positive and negative glob patterns.
type Pattern struct {
	positive []string
	negative []string
}

// Parse splits a comma-separated pattern list into a Pattern. Entries
// prefixed with "!" become negative patterns. An empty input matches
// everything.
func Parse(spec string) *Pattern {
	p := &Pattern{}

	if spec == "" {
		return p
	}

	for _, pat := range strings.Split(spec, ",") {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}
		if strings.HasPrefix(pat, "!") {
			p.negative = append(p.negative, strings.TrimPrefix(pat, "!"))
		} else {
			p.positive = append(p.positive, pat)
		}
	}

	return p
}

// IsEmpty reports whether the pattern has no clauses at all.
func (p *Pattern) IsEmpty() bool {
	return len(p.positive) == 0 && len(p.negative) == 0
}

// Match reports whether a slash- or OS-separated relative path matches:
// it must match at least one positive pattern (or there are none) and
// no negative pattern.
func (p *Pattern) Match(path string) (bool, error) {
	path = filepath.ToSlash(path)

	matched := len(p.positive) == 0
	for _, pat := range p.positive {
		ok, err := doublestar.Match(pat, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern %q: %w", pat, err)
		}
		if ok {
			matched = true
			break
		}
	}

	if !matched {
		return false, nil
	}

	for _, pat := range p.negative {
		ok, err := doublestar.Match(pat, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}

	return true, nil
}
