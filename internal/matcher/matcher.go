// Package matcher provides glob and regex pattern matching over file names.
// Patterns are compiled once at construction and are safe for concurrent use.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Matcher checks strings against a compiled pattern.
type Matcher interface {
	// Match checks if the input matches the pattern
	Match(input string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type being used.
	Type() PatternType
}

// Options configures the matcher behavior.
type Options struct {
	// CaseInsensitive makes matching case-insensitive
	CaseInsensitive bool
	// AnchorEnd appends $ to regex patterns that lack it
	AnchorEnd bool
	// BaseName matches globs against filepath.Base of the input
	BaseName bool
}

type matcher struct {
	pattern         string
	patternType     PatternType
	compiled        *regexp.Regexp
	globPattern     string
	caseInsensitive bool
	baseName        bool
}

// New creates a new Matcher with the specified pattern and type.
func New(patternType PatternType, pattern string, opts ...*Options) (Matcher, error) {
	options := &Options{}
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	}

	m := &matcher{
		pattern:         pattern,
		patternType:     patternType,
		caseInsensitive: options.CaseInsensitive,
		baseName:        options.BaseName,
	}

	if err := m.compile(options); err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	return m, nil
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string, opts ...*Options) Matcher {
	m, err := New(patternType, pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) compile(opts *Options) error {
	switch m.patternType {
	case Glob:
		m.globPattern = m.pattern
		if opts.CaseInsensitive {
			m.globPattern = strings.ToLower(m.globPattern)
		}
		if _, err := filepath.Match(m.globPattern, ""); err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
	case Regex:
		pattern := m.pattern
		if opts.AnchorEnd && !strings.HasSuffix(pattern, "$") {
			pattern += "$"
		}
		if opts.CaseInsensitive && !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		m.compiled = compiled
	default:
		return fmt.Errorf("unsupported pattern type: %v", m.patternType)
	}
	return nil
}

// Match checks if the input matches the pattern.
func (m *matcher) Match(input string) bool {
	switch m.patternType {
	case Glob:
		if m.baseName {
			input = filepath.Base(input)
		}
		if m.caseInsensitive {
			input = strings.ToLower(input)
		}
		matched, _ := filepath.Match(m.globPattern, input)
		return matched
	case Regex:
		return m.compiled.MatchString(input)
	default:
		return false
	}
}

// Pattern returns the original pattern string.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *matcher) Type() PatternType {
	return m.patternType
}

// MultiMatcher matches when any of its patterns match.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher creates a matcher with multiple patterns.
func NewMultiMatcher(patterns []string, patternType PatternType, opts ...*Options) (*MultiMatcher, error) {
	mm := &MultiMatcher{matchers: make([]Matcher, 0, len(patterns))}
	for _, pattern := range patterns {
		m, err := New(patternType, pattern, opts...)
		if err != nil {
			return nil, err
		}
		mm.matchers = append(mm.matchers, m)
	}
	return mm, nil
}

// Match returns true if any pattern matches.
func (mm *MultiMatcher) Match(input string) bool {
	for _, m := range mm.matchers {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns.
func (mm *MultiMatcher) Len() int {
	return len(mm.matchers)
}

// SuffixPattern builds a regex matching any of the given extensions at the end
// of a name, e.g. SuffixPattern("fa", "fasta") -> `\.(?:fa|fasta)$`.
func SuffixPattern(extensions ...string) string {
	quoted := make([]string, len(extensions))
	for i, ext := range extensions {
		quoted[i] = regexp.QuoteMeta(strings.TrimPrefix(ext, "."))
	}
	return `\.(?:` + strings.Join(quoted, "|") + `)$`
}
