package matcher

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveMatch is the reference oracle: case-folded substring search.
func naiveMatch(words []string, text string) bool {
	folded := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(folded, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func TestDense_FailureTransitions(t *testing.T) {
	// Patterns chosen so a partial mismatch must resume via a failure
	// link rather than restart from the root.
	tests := []struct {
		words []string
		text  string
		want  bool
	}{
		{[]string{"ab", "bc"}, "abc", true},
		{[]string{"abcd"}, "abcabcd", true},
		{[]string{"aab"}, "aaab", true},
		{[]string{"aaa"}, "aabaa", false},
		{[]string{"ababc"}, "abababc", true},
		{[]string{"he", "she", "his", "hers"}, "ushers", true},
		{[]string{"his"}, "she", false},
	}

	for _, tt := range tests {
		m, err := NewDense(tt.words)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.IsMatch(tt.text),
			"words %v text %q", tt.words, tt.text)
	}
}

func TestDense_EmptyWord(t *testing.T) {
	// An empty word matches everything, including the empty string.
	m, err := NewDense([]string{""})
	require.NoError(t, err)

	assert.True(t, m.IsMatch(""))
	assert.True(t, m.IsMatch("anything"))
}

func TestDense_MultiByteInput(t *testing.T) {
	m, err := NewDense([]string{"müll", "秘密"})
	require.NoError(t, err)

	assert.True(t, m.IsMatch("der MÜLL stinkt"))
	assert.True(t, m.IsMatch("这是秘密文件"))
	assert.False(t, m.IsMatch("der mull stinkt"))
}

func TestDense_RandomizedAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := "abcABC "

	randomString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	for trial := 0; trial < 200; trial++ {
		words := make([]string, 1+rng.Intn(5))
		for i := range words {
			words[i] = randomString(1 + rng.Intn(4))
		}
		text := randomString(rng.Intn(40))

		m, err := NewDense(words)
		require.NoError(t, err)

		want := naiveMatch(words, text)
		assert.Equal(t, want, m.IsMatch(text),
			"words %q text %q", words, text)
	}
}
