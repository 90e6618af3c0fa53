//go:build cgo && hyperscan

package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/flier/gohs/hyperscan"
)

// HyperscanMatcher implements Matcher on the Hyperscan block-mode
// engine. Requires CGO and the Hyperscan/Vectorscan C library.
//
// Build with: CGO_ENABLED=1 go build -tags hyperscan
type HyperscanMatcher struct {
	db      hyperscan.BlockDatabase
	scratch *hyperscan.Scratch

	// Hyperscan scratch space is not safe for concurrent scans; the
	// mutex keeps IsMatch callable from any number of goroutines like
	// the pure-Go backends.
	mu sync.Mutex
}

// NewHyperscan compiles words into a Hyperscan block database. Words are
// lowercased and escaped as literals; queries fold the same way.
func NewHyperscan(words []string) (Matcher, error) {
	if len(words) == 0 {
		return &HyperscanMatcher{}, nil
	}

	patterns := make([]*hyperscan.Pattern, len(words))
	for i, w := range foldWords(words) {
		p := hyperscan.NewPattern(regexp.QuoteMeta(w), hyperscan.SingleMatch)
		p.Id = i
		patterns[i] = p
	}

	db, err := hyperscan.NewBlockDatabase(patterns...)
	if err != nil {
		return nil, &CompileError{Backend: BackendHyperscan, Err: err}
	}

	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		return nil, &CompileError{
			Backend: BackendHyperscan,
			Err:     fmt.Errorf("allocating scratch: %w", err),
		}
	}

	return &HyperscanMatcher{db: db, scratch: scratch}, nil
}

// IsMatch reports whether any deny word occurs in text.
func (m *HyperscanMatcher) IsMatch(text string) bool {
	if m.db == nil {
		return false
	}

	found := false
	onMatch := func(id uint, from, to uint64, flags uint, context interface{}) error {
		found = true
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.db.Scan([]byte(strings.ToLower(text)), m.scratch, onMatch, nil); err != nil {
		return found
	}
	return found
}

// Close releases the Hyperscan database and scratch space.
func (m *HyperscanMatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scratch != nil {
		m.scratch.Free()
		m.scratch = nil
	}
	if m.db != nil {
		m.db.Close()
		m.db = nil
	}
	return nil
}
