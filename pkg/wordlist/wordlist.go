// Package wordlist loads deny-word lists from YAML files.
package wordlist

import "strings"

// List is a named deny-word list.
type List struct {
	Name        string
	Description string
	Words       []string
}

// Merge flattens lists into a single word slice, dropping duplicates
// case-insensitively while preserving first-seen order. Order matters
// for leftmost-first match identity, so earlier lists win.
func Merge(lists []*List) []string {
	var words []string
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, w := range l.Words {
			folded := strings.ToLower(w)
			if !seen[folded] {
				seen[folded] = true
				words = append(words, w)
			}
		}
	}
	return words
}
