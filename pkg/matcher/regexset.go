package matcher

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// regexTimeout bounds a single match attempt. The alternation is built
// from escaped literals so backtracking blowups cannot happen, but the
// timeout caps the damage if that ever changes.
const regexTimeout = 5 * time.Second

// RegexSetMatcher compiles every deny word as an escaped literal into a
// single alternation. Worst case O(len(text) * len(words)), so the
// automaton backends are preferred for large lists; this one exists for
// the day literal words need to grow into real patterns.
type RegexSetMatcher struct {
	re *regexp2.Regexp
}

// NewRegexSet compiles words into one alternation regex. Words are
// lowercased and escaped before compilation; queries fold the same way.
func NewRegexSet(words []string) (*RegexSetMatcher, error) {
	if len(words) == 0 {
		return &RegexSetMatcher{}, nil
	}

	alternatives := make([]string, len(words))
	for i, w := range foldWords(words) {
		alternatives[i] = regexp.QuoteMeta(w)
	}

	re, err := regexp2.Compile(strings.Join(alternatives, "|"), regexp2.RE2)
	if err != nil {
		return nil, &CompileError{Backend: BackendRegexSet, Err: err}
	}
	re.MatchTimeout = regexTimeout

	return &RegexSetMatcher{re: re}, nil
}

// IsMatch reports whether any deny word occurs in text.
func (m *RegexSetMatcher) IsMatch(text string) bool {
	if m.re == nil {
		return false
	}
	matched, err := m.re.MatchString(strings.ToLower(text))
	if err != nil {
		// Timeout on a literal alternation; treat as no match.
		return false
	}
	return matched
}

// Close is a no-op.
func (m *RegexSetMatcher) Close() error { return nil }
