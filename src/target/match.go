package target

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Matcher selects triples with include and exclude patterns.
//
// Syntax:
//
//	"^aarch64-"   include triples matching the regex
//	"!musl"       exclude triples matching the regex
//
// Excludes are checked first. With only exclude patterns, everything not
// excluded is selected.
type Matcher struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// CompileMatcher compiles patterns. An invalid regex is an error.
func CompileMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		expr := strings.TrimPrefix(p, "!")
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid target pattern %q: %w", p, err)
		}
		if negate {
			m.excludes = append(m.excludes, re)
		} else {
			m.includes = append(m.includes, re)
		}
	}
	return m, nil
}

// Match reports whether triple is selected.
func (m *Matcher) Match(triple string) bool {
	for _, re := range m.excludes {
		if re.MatchString(triple) {
			return false
		}
	}
	if len(m.includes) == 0 {
		return true
	}
	for _, re := range m.includes {
		if re.MatchString(triple) {
			return true
		}
	}
	return false
}

// Select returns the triples of l that match, sorted.
func (m *Matcher) Select(l TargetList) []string {
	var out []string
	for triple := range l.triples {
		if m.Match(triple) {
			out = append(out, triple)
		}
	}
	slices.Sort(out)
	return out
}
