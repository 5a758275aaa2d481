package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpans(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{name: "word inserted", old: "hello world", new: "hello big world"},
		{name: "word replaced", old: "the quick fox", new: "the slow fox"},
		{name: "all different", old: "abc", new: "xyz"},
		{name: "old empty", old: "", new: "added"},
		{name: "unicode", old: "naïve café", new: "naive café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Spans(tt.old, tt.new)

			var oldB, newB strings.Builder
			for k, sp := range spans {
				require.NotEmpty(t, sp.Text)
				if k > 0 {
					require.NotEqual(t, spans[k-1].Op, sp.Op, "adjacent spans should be coalesced")
				}
				switch sp.Op {
				case OpSame:
					oldB.WriteString(sp.Text)
					newB.WriteString(sp.Text)
				case OpRemoved:
					oldB.WriteString(sp.Text)
				case OpAdded:
					newB.WriteString(sp.Text)
				}
			}
			assert.Equal(t, tt.old, oldB.String())
			assert.Equal(t, tt.new, newB.String())
		})
	}
}

func TestSpans_InsertedWord(t *testing.T) {
	spans := Spans("hello world", "hello big world")
	require.Len(t, spans, 3)
	assert.Equal(t, Span{Op: OpSame, Text: "hello "}, spans[0])
	assert.Equal(t, Span{Op: OpAdded, Text: "big "}, spans[1])
	assert.Equal(t, Span{Op: OpSame, Text: "world"}, spans[2])
}
