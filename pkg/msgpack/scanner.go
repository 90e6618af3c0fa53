// Package msgpack implements a streaming deny-list scan over
// MessagePack-encoded buffers.
//
// The walker dispatches on marker bytes at an explicit cursor and never
// materializes an intermediate tree, so large or untrusted payloads are
// scanned without an allocation pass. Only string content is ever
// interpreted; every other marker family is skipped structurally using
// the format's fixed-size and length-prefixed encoding rules.
package msgpack

import (
	"encoding/binary"
	"errors"

	"github.com/denygate/denygate/pkg/matcher"
)

// ErrMalformed reports a buffer that is not valid MessagePack: truncated
// input, a reserved marker, or a declared length running past the end of
// the buffer. Callers decide whether to surface it or collapse it to
// "no match"; the walker itself always keeps the two signals distinct.
var ErrMalformed = errors.New("malformed messagepack input")

// Scanner applies a compiled matcher to MessagePack buffers.
type Scanner struct {
	m        matcher.Matcher
	maxDepth int
}

// NewScanner wraps m. maxDepth bounds container nesting; <= 0 means
// matcher.DefaultMaxDepth.
func NewScanner(m matcher.Matcher, maxDepth int) *Scanner {
	if maxDepth <= 0 {
		maxDepth = matcher.DefaultMaxDepth
	}
	return &Scanner{m: m, maxDepth: maxDepth}
}

// Scan decodes the single MessagePack value at the start of buf and
// reports whether any deny word occurs in a matchable string position.
// Map keys are never matched; map values, array elements, and a bare
// top-level string are. Returns ErrMalformed for undecodable input and
// matcher.ErrTooDeep for nesting beyond the configured ceiling. Trailing
// bytes after the first value are ignored.
func (s *Scanner) Scan(buf []byte) (bool, error) {
	w := walker{buf: buf, m: s.m}
	return w.walk(true, s.maxDepth)
}

// walker holds the cursor state for one traversal. The cursor moves
// strictly forward and is bounded by the buffer length.
type walker struct {
	buf []byte
	pos int
	m   matcher.Matcher
}

// walk consumes exactly one encoded value at the cursor. matching is
// disabled while inside a map key and inherited everywhere else.
func (w *walker) walk(matching bool, depth int) (bool, error) {
	if depth <= 0 {
		return false, matcher.ErrTooDeep
	}
	if w.pos >= len(w.buf) {
		return false, ErrMalformed
	}

	marker := w.buf[w.pos]
	w.pos++

	switch {
	case marker <= 0x7f || marker >= 0xe0:
		// Positive or negative fixint, fully encoded in the marker.
		return false, nil

	case marker >= 0x80 && marker <= 0x8f:
		return w.walkMap(uint64(marker&0x0f), matching, depth)

	case marker >= 0x90 && marker <= 0x9f:
		return w.walkArray(uint64(marker&0x0f), matching, depth)

	case marker >= 0xa0 && marker <= 0xbf:
		return w.walkString(uint64(marker&0x1f), matching)
	}

	switch marker {
	case 0xc0, 0xc2, 0xc3: // nil, false, true
		return false, nil

	case 0xc1: // reserved, never valid
		return false, ErrMalformed

	case 0xc4, 0xc5, 0xc6: // bin 8/16/32
		n, err := w.readLength(1 << (marker - 0xc4))
		if err != nil {
			return false, err
		}
		return false, w.skip(n)

	case 0xc7, 0xc8, 0xc9: // ext 8/16/32: length prefix, type byte, payload
		n, err := w.readLength(1 << (marker - 0xc7))
		if err != nil {
			return false, err
		}
		return false, w.skip(n + 1)

	case 0xca: // float32
		return false, w.skip(4)
	case 0xcb: // float64
		return false, w.skip(8)

	case 0xcc, 0xcd, 0xce, 0xcf: // uint 8/16/32/64
		return false, w.skip(uint64(1) << (marker - 0xcc))

	case 0xd0, 0xd1, 0xd2, 0xd3: // int 8/16/32/64
		return false, w.skip(uint64(1) << (marker - 0xd0))

	case 0xd4, 0xd5, 0xd6, 0xd7, 0xd8: // fixext 1/2/4/8/16: type byte, payload
		return false, w.skip(1 + uint64(1)<<(marker-0xd4))

	case 0xd9, 0xda, 0xdb: // str 8/16/32
		n, err := w.readLength(1 << (marker - 0xd9))
		if err != nil {
			return false, err
		}
		return w.walkString(n, matching)

	case 0xdc, 0xdd: // array 16/32
		n, err := w.readLength(2 << (marker - 0xdc))
		if err != nil {
			return false, err
		}
		return w.walkArray(n, matching, depth)

	case 0xde, 0xdf: // map 16/32
		n, err := w.readLength(2 << (marker - 0xde))
		if err != nil {
			return false, err
		}
		return w.walkMap(n, matching, depth)
	}

	return false, ErrMalformed
}

// walkString consumes n bytes of string content, matching it only when
// the current position allows it. The cursor advances past the content
// either way.
func (w *walker) walkString(n uint64, matching bool) (bool, error) {
	if n > uint64(len(w.buf)-w.pos) {
		return false, ErrMalformed
	}
	end := w.pos + int(n)
	content := w.buf[w.pos:end]
	w.pos = end

	if matching && w.m.IsMatch(string(content)) {
		return true, nil
	}
	return false, nil
}

// walkArray consumes count elements, each inheriting the caller's
// matching flag.
func (w *walker) walkArray(count uint64, matching bool, depth int) (bool, error) {
	// Every element occupies at least one byte; a count beyond the
	// remaining buffer can never decode.
	if count > uint64(len(w.buf)-w.pos) {
		return false, ErrMalformed
	}
	for i := uint64(0); i < count; i++ {
		found, err := w.walk(matching, depth-1)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// walkMap consumes count key/value pairs. Keys are walked with matching
// disabled; values inherit the caller's matching flag.
func (w *walker) walkMap(count uint64, matching bool, depth int) (bool, error) {
	// Every pair occupies at least two bytes.
	if count > uint64(len(w.buf)-w.pos)/2 {
		return false, ErrMalformed
	}
	for i := uint64(0); i < count; i++ {
		if _, err := w.walk(false, depth-1); err != nil {
			return false, err
		}
		found, err := w.walk(matching, depth-1)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// readLength reads an n-byte big-endian length prefix.
func (w *walker) readLength(n int) (uint64, error) {
	if len(w.buf)-w.pos < n {
		return 0, ErrMalformed
	}
	var v uint64
	switch n {
	case 1:
		v = uint64(w.buf[w.pos])
	case 2:
		v = uint64(binary.BigEndian.Uint16(w.buf[w.pos:]))
	case 4:
		v = uint64(binary.BigEndian.Uint32(w.buf[w.pos:]))
	}
	w.pos += n
	return v, nil
}

// skip advances the cursor past n bytes of uninterpreted content.
func (w *walker) skip(n uint64) error {
	if n > uint64(len(w.buf)-w.pos) {
		return ErrMalformed
	}
	w.pos += int(n)
	return nil
}
