// Package matcher compiles deny-word lists into immutable substring
// matchers and provides the shared scan operations built on top of them.
//
// A Matcher is built once per configuration and is safe for
// unsynchronized concurrent use; rebuilding per scan is the anti-pattern
// to avoid. Several interchangeable backends are available, all of which
// produce identical existence answers for the same word list.
package matcher

import "fmt"

// Matcher answers substring-existence queries against a compiled deny
// list. Implementations are immutable after construction and safe for
// concurrent use.
type Matcher interface {
	// IsMatch reports whether any deny word occurs anywhere in text,
	// case-insensitively.
	IsMatch(text string) bool

	// Close releases resources (e.g., Hyperscan database and scratch).
	// No-op for the pure-Go backends.
	Close() error
}

// Backend selects the matching algorithm used to compile a word list.
type Backend int

const (
	// BackendAhoCorasick compiles a trie automaton with failure links.
	// Default; linear in the length of the scanned text.
	BackendAhoCorasick Backend = iota

	// BackendDense compiles the same automaton into a flat byte-indexed
	// transition table. Denser and more cache-friendly for hot paths;
	// identical answers to BackendAhoCorasick.
	BackendDense

	// BackendRegexSet escapes every word as a literal and compiles one
	// alternation regex. Slower for large lists, but the natural escape
	// hatch if literal words ever need to grow into real patterns.
	BackendRegexSet

	// BackendHyperscan uses the Hyperscan engine via CGO. Only available
	// when built with CGO_ENABLED=1 and -tags=hyperscan; construction
	// fails otherwise.
	BackendHyperscan
)

func (b Backend) String() string {
	switch b {
	case BackendAhoCorasick:
		return "ahocorasick"
	case BackendDense:
		return "dense"
	case BackendRegexSet:
		return "regexset"
	case BackendHyperscan:
		return "hyperscan"
	default:
		return "unknown"
	}
}

// Config for matcher construction.
type Config struct {
	// Words is the deny list. Duplicates are allowed; the list may be
	// empty, in which case the matcher never matches anything.
	Words []string

	// Backend selects the compilation algorithm. Zero value is
	// BackendAhoCorasick.
	Backend Backend
}

// CompileError reports a word list that could not be compiled by the
// selected backend. Construction is the only fallible operation in this
// package.
type CompileError struct {
	Backend Backend
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid patterns (%s backend): %v", e.Backend, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// New compiles the configured word list into a Matcher.
func New(cfg Config) (Matcher, error) {
	switch cfg.Backend {
	case BackendAhoCorasick:
		return NewAhoCorasick(cfg.Words)
	case BackendDense:
		return NewDense(cfg.Words)
	case BackendRegexSet:
		return NewRegexSet(cfg.Words)
	case BackendHyperscan:
		return NewHyperscan(cfg.Words)
	default:
		return nil, fmt.Errorf("unknown backend %d", cfg.Backend)
	}
}
