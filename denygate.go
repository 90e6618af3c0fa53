// Package denygate provides a deny-list content-filtering engine.
//
// A Filter compiles a list of forbidden words once into an immutable
// matcher and then answers, case-insensitively, whether content
// contains any of them. Content can be a flat string, a nested dynamic
// value, or a MessagePack-encoded buffer scanned directly without
// decoding to a tree.
//
// # Basic Usage
//
// Compile a filter once and scan as often as needed:
//
//	filter, err := denygate.New([]string{"badword", "secret phrase"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer filter.Close()
//
//	if filter.IsMatch("this is a BADWORD") {
//	    // reject
//	}
//
// # Nested content
//
// Structured payloads are scanned recursively; only string leaves and
// mapping values are matched, keys never are:
//
//	found, err := filter.ScanNative(map[string]any{
//	    "user": "contains badword",
//	    "id":   1,
//	})
//
// Filters are immutable and safe for unsynchronized concurrent use. To
// update the deny list at runtime, wrap the filter in a Reloadable:
// it compiles the replacement first and then publishes it atomically,
// so in-flight scans finish against the old list.
package denygate

import (
	"errors"

	"github.com/denygate/denygate/pkg/matcher"
	"github.com/denygate/denygate/pkg/msgpack"
	"github.com/denygate/denygate/pkg/types"
)

// Re-export commonly used types so callers can import just
// "github.com/denygate/denygate" without subpackages.
type (
	// Value is the dynamic value model consumed by ScanValue.
	Value = types.Value

	// String is a text leaf of the dynamic value model.
	String = types.String

	// Sequence is an ordered collection of values.
	Sequence = types.Sequence

	// Mapping is a string-keyed collection of values.
	Mapping = types.Mapping

	// Backend selects the matching algorithm.
	Backend = matcher.Backend
)

// Re-export backend constants.
const (
	BackendAhoCorasick = matcher.BackendAhoCorasick
	BackendDense       = matcher.BackendDense
	BackendRegexSet    = matcher.BackendRegexSet
	BackendHyperscan   = matcher.BackendHyperscan
)

// Re-export scan error sentinels.
var (
	// ErrTooDeep reports nesting beyond the configured depth ceiling.
	ErrTooDeep = matcher.ErrTooDeep

	// ErrMalformed reports an undecodable MessagePack buffer. Only
	// surfaced by ScanBinary when strict decoding is enabled.
	ErrMalformed = msgpack.ErrMalformed
)

// Filter answers deny-list queries against content in any supported
// shape. Immutable after construction; safe for concurrent use.
type Filter struct {
	m      matcher.Matcher
	binary *msgpack.Scanner
	config *filterConfig
}

// filterConfig holds filter configuration.
type filterConfig struct {
	backend      Backend
	maxDepth     int
	strictDecode bool
}

// Option configures a Filter.
type Option func(*filterConfig)

// WithBackend selects the matcher backend. Default is the Aho-Corasick
// trie automaton; BackendDense and BackendRegexSet give identical
// answers with different performance profiles.
func WithBackend(b Backend) Option {
	return func(c *filterConfig) {
		c.backend = b
	}
}

// WithMaxDepth sets the nesting ceiling for recursive and binary scans.
// Default is matcher.DefaultMaxDepth. Exceeding it returns ErrTooDeep.
func WithMaxDepth(depth int) Option {
	return func(c *filterConfig) {
		c.maxDepth = depth
	}
}

// WithStrictDecode makes ScanBinary return ErrMalformed for input that
// is not valid MessagePack. By default malformed input degrades to "no
// match": the engine declines to assert a banned pattern is present in
// a document it cannot parse. Strict mode is for callers that would
// rather fail loudly than under-detect on adversarial input.
func WithStrictDecode() Option {
	return func(c *filterConfig) {
		c.strictDecode = true
	}
}

// New compiles words into a Filter. Construction is the only fallible
// operation; every scan on the resulting filter is error-free except
// for the explicit depth and strict-decode policies.
func New(words []string, opts ...Option) (*Filter, error) {
	config := &filterConfig{
		maxDepth: matcher.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(config)
	}

	m, err := matcher.New(matcher.Config{Words: words, Backend: config.backend})
	if err != nil {
		return nil, err
	}

	return &Filter{
		m:      m,
		binary: msgpack.NewScanner(m, config.maxDepth),
		config: config,
	}, nil
}

// IsMatch reports whether any deny word occurs anywhere in text,
// case-insensitively.
func (f *Filter) IsMatch(text string) bool {
	return f.m.IsMatch(text)
}

// Scan scans a flat argument mapping: string values are matched,
// non-string values are skipped, keys are never matched.
func (f *Filter) Scan(args map[string]any) bool {
	return matcher.ScanArgs(f.m, args)
}

// ScanValue walks a dynamic value depth-first, matching string leaves
// and recursing through sequences and mapping values.
func (f *Filter) ScanValue(v Value) (bool, error) {
	return matcher.ScanValue(f.m, v, f.config.maxDepth)
}

// ScanNative converts a native Go value (string, map[string]any,
// []any, scalars) into the dynamic value model and scans it.
func (f *Filter) ScanNative(v any) (bool, error) {
	converted, err := types.FromNative(v)
	if err != nil {
		return false, err
	}
	return f.ScanValue(converted)
}

// ScanBinary walks a MessagePack-encoded buffer directly, without
// building an intermediate tree. Map keys are never matched. Malformed
// input returns (false, nil) unless WithStrictDecode was set, in which
// case it returns ErrMalformed. Depth exhaustion always returns
// ErrTooDeep.
func (f *Filter) ScanBinary(buf []byte) (bool, error) {
	found, err := f.binary.Scan(buf)
	if err != nil {
		if errors.Is(err, msgpack.ErrMalformed) && !f.config.strictDecode {
			return false, nil
		}
		return false, err
	}
	return found, nil
}

// Backend returns the backend this filter was compiled with.
func (f *Filter) Backend() Backend {
	return f.config.backend
}

// Close releases matcher resources. No-op for the pure-Go backends.
func (f *Filter) Close() error {
	return f.m.Close()
}
