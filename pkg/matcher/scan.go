package matcher

import (
	"errors"

	"github.com/denygate/denygate/pkg/types"
)

// DefaultMaxDepth is the nesting ceiling applied when a caller passes a
// non-positive depth to ScanValue. Deep enough for any sane payload,
// shallow enough that a hostile one cannot exhaust the goroutine stack.
const DefaultMaxDepth = 128

// ErrTooDeep reports input nested beyond the configured depth ceiling.
var ErrTooDeep = errors.New("input nesting exceeds maximum depth")

// ScanArgs scans a flat argument mapping: every string value is matched,
// every non-string value is skipped, keys are never matched. Returns on
// the first match found.
func ScanArgs(m Matcher, args map[string]any) bool {
	for _, v := range args {
		if s, ok := v.(string); ok && m.IsMatch(s) {
			return true
		}
	}
	return false
}

// ScanValue walks a dynamic value depth-first, matching string leaves
// and recursing through sequences and mapping values (never keys).
// Non-string scalars never match. Returns on the first match found, or
// ErrTooDeep if nesting exceeds maxDepth (<= 0 means DefaultMaxDepth).
func ScanValue(m Matcher, v types.Value, maxDepth int) (bool, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return scanValue(m, v, maxDepth)
}

func scanValue(m Matcher, v types.Value, depth int) (bool, error) {
	if depth <= 0 {
		return false, ErrTooDeep
	}

	switch x := v.(type) {
	case types.String:
		return m.IsMatch(string(x)), nil
	case types.Sequence:
		for _, item := range x {
			found, err := scanValue(m, item, depth-1)
			if err != nil || found {
				return found, err
			}
		}
	case types.Mapping:
		for _, item := range x {
			found, err := scanValue(m, item, depth-1)
			if err != nil || found {
				return found, err
			}
		}
	}
	// Int, Float, Bool, Nil: never a match.
	return false, nil
}
