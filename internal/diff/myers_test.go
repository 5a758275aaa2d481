package diff

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func myers(t *testing.T, x, y []string) []Entry {
	t.Helper()
	got, err := Compute(context.Background(), x, y, Options{Algorithm: AlgorithmMyers})
	require.NoError(t, err)
	return got
}

func TestMyers_UnambiguousMatchesLCS(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
	}{
		{name: "insertion", x: []string{"x", "y", "z"}, y: []string{"x", "a", "y", "z"}},
		{name: "deletion", x: []string{"x", "a", "y", "z"}, y: []string{"x", "y", "z"}},
		{name: "replacement", x: []string{"one"}, y: []string{"two"}},
		{name: "identity", x: []string{"a", "b"}, y: []string{"a", "b"}},
		{name: "empty to lines", x: nil, y: []string{"a", "b"}},
		{name: "lines to empty", x: []string{"a", "b"}, y: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Lines(tt.x, tt.y), myers(t, tt.x, tt.y))
		})
	}
}

func TestMyers_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []string{"a", "b", "c", "", "a\n", "\x00"}
	gen := func() []string {
		out := make([]string, rng.IntN(20))
		for k := range out {
			out[k] = alphabet[rng.IntN(len(alphabet))]
		}
		return out
	}

	for iter := 0; iter < 300; iter++ {
		x, y := gen(), gen()
		got := myers(t, x, y)
		require.NoError(t, Validate(x, y, got), "x=%q y=%q", x, y)

		s := Summarize(got)
		assert.Equal(t, len(x), s.Removed+s.Unchanged)
		assert.Equal(t, len(y), s.Added+s.Unchanged)
	}
}

func TestLineInterner_SkipsSurrogates(t *testing.T) {
	li := newLineInterner()
	li.next = 0xD7FF

	rs, err := li.runes([]string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []rune{0xD7FF, 0xE000, 0xD7FF}, rs)
	assert.Equal(t, "b", li.lines[0xE000])
}
