package matcher

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// AhoCorasickMatcher is the default backend: a trie automaton with
// failure links, giving a single linear pass over the scanned text
// regardless of list size.
type AhoCorasickMatcher struct {
	trie *ahocorasick.Matcher
}

// NewAhoCorasick compiles words into a failure-link trie automaton.
// Words are lowercased before insertion; queries fold the same way.
func NewAhoCorasick(words []string) (*AhoCorasickMatcher, error) {
	if len(words) == 0 {
		return &AhoCorasickMatcher{}, nil
	}

	folded := foldWords(words)
	return &AhoCorasickMatcher{
		trie: ahocorasick.NewStringMatcher(folded),
	}, nil
}

// IsMatch reports whether any deny word occurs in text.
func (m *AhoCorasickMatcher) IsMatch(text string) bool {
	if m.trie == nil {
		return false
	}
	// MatchThreadSafe keeps its working state on the stack, so one
	// compiled trie serves any number of concurrent scans.
	return len(m.trie.MatchThreadSafe([]byte(strings.ToLower(text)))) > 0
}

// Close is a no-op.
func (m *AhoCorasickMatcher) Close() error { return nil }

// foldWords lowercases every word, applying the build-time case policy
// shared by all backends.
func foldWords(words []string) []string {
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = strings.ToLower(w)
	}
	return folded
}
