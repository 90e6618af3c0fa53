//go:build !cgo || !hyperscan

package matcher

import "fmt"

// NewHyperscan stub for builds without Hyperscan.
func NewHyperscan(words []string) (Matcher, error) {
	return nil, fmt.Errorf("hyperscan backend requires CGO (build with CGO_ENABLED=1 and -tags=hyperscan)")
}
