// Package textwidth measures, truncates and pads strings by the number of terminal cells they occupy in a monospace font.
//
// Widths follow East-Asian-neutral rules (CJK wide characters count 2, combining marks 0). Truncation never splits a grapheme cluster. Width ignores CSI
// escape sequences; Truncate and Pad expect plain text, so styling should be applied after fitting.
package textwidth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

var cond = newCondition()

func newCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}

// Width returns the number of terminal cells s occupies. CSI escape sequences (such as SGR colors) count as zero.
func Width(s string) int {
	return cond.StringWidth(stripCSI(s))
}

// stripCSI removes "ESC [ ... final" sequences from s. An unterminated sequence runs to the end of s.
func stripCSI(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	var b strings.Builder
	for {
		k := strings.Index(s, "\x1b[")
		if k < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:k])
		rest := s[k+2:]
		end := strings.IndexFunc(rest, func(r rune) bool { return r >= 0x40 && r <= 0x7e })
		if end < 0 {
			return b.String()
		}
		s = rest[end+1:]
	}
}

// Truncate shortens plain-text s to at most w cells. If s is cut, tail is appended and counts toward w. A grapheme that would straddle the limit is dropped
// whole. If w is too small to hold tail, tail itself is truncated.
func Truncate(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	if cond.StringWidth(s) <= w {
		return s
	}

	tailWidth := cond.StringWidth(tail)
	if tailWidth > w {
		return Truncate(tail, w, "")
	}
	limit := w - tailWidth

	var b strings.Builder
	used := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		g := iter.Value()
		gw := cond.StringWidth(g)
		if used+gw > limit {
			break
		}
		b.WriteString(g)
		used += gw
	}
	b.WriteString(tail)
	return b.String()
}

// Pad right-pads s with spaces to w cells. Strings already w cells or wider are returned unchanged.
func Pad(s string, w int) string {
	if n := w - Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// Fit truncates plain-text s to w cells (with an ellipsis) and pads it to exactly w cells.
func Fit(s string, w int) string {
	return Pad(Truncate(s, w, "…"), w)
}

// Sanitize makes a line safe to print in a terminal. If tabWidth > 0, tabs expand to tabWidth spaces. Other control characters are shown escaped: ASCII ones
// (\r, ESC, DEL, ...) as "\xXX" and C1 ones as "\uXXXX". Invalid UTF-8 becomes U+FFFD.
func Sanitize(s string, tabWidth int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' && tabWidth > 0:
			b.WriteString(strings.Repeat(" ", tabWidth))
		case r == '\t' || !unicode.IsControl(r):
			b.WriteRune(r)
		case r < utf8.RuneSelf:
			fmt.Fprintf(&b, `\x%02X`, r)
		default:
			fmt.Fprintf(&b, `\u%04X`, r)
		}
	}
	return b.String()
}
