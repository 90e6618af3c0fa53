package matcher

import "strings"

// DenseMatcher is a compact array-encoded variant of the Aho-Corasick
// automaton. The trie and its failure links are resolved at build time
// into a flat byte-indexed transition table, so the scan loop is a
// single array lookup per input byte with no pointer chasing. Match
// answers are identical to AhoCorasickMatcher for the same word list.
type DenseMatcher struct {
	// next holds state*256+b -> next state for every state and byte.
	next []int32
	// match[s] reports whether state s completes any deny word,
	// directly or via a failure suffix.
	match []bool
}

// trieNode is the intermediate sparse trie used only during build.
type trieNode struct {
	children map[byte]int32
	fail     int32
	match    bool
}

// NewDense compiles words into a flattened automaton. Words are
// lowercased before insertion; queries fold the same way.
func NewDense(words []string) (*DenseMatcher, error) {
	nodes := []*trieNode{{children: make(map[byte]int32)}}

	for _, w := range foldWords(words) {
		state := int32(0)
		for i := 0; i < len(w); i++ {
			b := w[i]
			child, ok := nodes[state].children[b]
			if !ok {
				child = int32(len(nodes))
				nodes = append(nodes, &trieNode{children: make(map[byte]int32)})
				nodes[state].children[b] = child
			}
			state = child
		}
		nodes[state].match = true
	}

	m := &DenseMatcher{
		next:  make([]int32, len(nodes)*256),
		match: make([]bool, len(nodes)),
	}
	m.match[0] = nodes[0].match

	// Breadth-first pass: compute failure links and flatten transitions.
	// Parents are processed before children, so the parent's row is
	// complete by the time a child consults it for fallback edges.
	queue := make([]int32, 0, len(nodes))
	for b := 0; b < 256; b++ {
		if child, ok := nodes[0].children[byte(b)]; ok {
			m.next[b] = child
			nodes[child].fail = 0
			queue = append(queue, child)
		}
	}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		node := nodes[state]
		if nodes[node.fail].match {
			node.match = true
		}
		m.match[state] = node.match

		row := int(state) * 256
		failRow := int(node.fail) * 256
		for b := 0; b < 256; b++ {
			if child, ok := node.children[byte(b)]; ok {
				m.next[row+b] = child
				nodes[child].fail = m.next[failRow+b]
				queue = append(queue, child)
			} else {
				m.next[row+b] = m.next[failRow+b]
			}
		}
	}

	return m, nil
}

// IsMatch reports whether any deny word occurs in text.
func (m *DenseMatcher) IsMatch(text string) bool {
	state := int32(0)
	if m.match[state] {
		// Empty word in the list matches everything.
		return true
	}

	folded := strings.ToLower(text)
	for i := 0; i < len(folded); i++ {
		state = m.next[int(state)*256+int(folded[i])]
		if m.match[state] {
			return true
		}
	}
	return false
}

// Close is a no-op.
func (m *DenseMatcher) Close() error { return nil }
