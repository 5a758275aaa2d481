package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abc is a/b/c -> a/B/c.
var abc = []Entry{same("a", 1, 1), removed("b", 2), added("B", 2), same("c", 3, 3)}

// twoChanges is a..f with lines 2 and 6 replaced.
var twoChanges = Lines(
	[]string{"a", "b", "c", "d", "e", "f"},
	[]string{"a", "B", "c", "d", "e", "F"},
)

func TestGroupEntries(t *testing.T) {
	assert.Equal(t, []group{{0, 4}}, groupEntries(abc, 3))
	assert.Equal(t, []group{{1, 3}}, groupEntries(abc, 0))
	assert.Equal(t, []group{{0, 4}}, groupEntries(abc, -1))
	assert.Nil(t, groupEntries(nil, -1))
	assert.Nil(t, groupEntries([]Entry{same("a", 1, 1)}, 3))

	assert.Equal(t, []group{{0, 4}, {5, 8}}, groupEntries(twoChanges, 1))
	// Three unchanged lines between the changes are within 2*2, so they merge.
	assert.Equal(t, []group{{0, 8}}, groupEntries(twoChanges, 2))
}

func TestRenderUnified(t *testing.T) {
	got := RenderUnified(abc, "old.txt", "new.txt", 3, false)
	want := strings.Join([]string{
		"--- old.txt",
		"+++ new.txt",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+B",
		" c",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderUnified_MultipleHunks(t *testing.T) {
	got := RenderUnified(twoChanges, "a", "b", 1, false)
	want := strings.Join([]string{
		"--- a",
		"+++ b",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+B",
		" c",
		"@@ -5,2 +5,2 @@",
		" e",
		"-f",
		"+F",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderUnified_EmptySide(t *testing.T) {
	got := RenderUnified(Lines([]string{"a"}, []string{"X", "a"}), "a", "b", 0, false)
	assert.Equal(t, "--- a\n+++ b\n@@ -0,0 +1,1 @@\n+X", got)

	got = RenderUnified(Lines([]string{"a"}, []string{"a"}), "a", "b", 3, false)
	assert.Equal(t, "--- a\n+++ b", got)
}

func TestRenderUnified_Color(t *testing.T) {
	got := RenderUnified(abc, "old", "new", 3, true)
	assert.Contains(t, got, "\x1b[31m-b")
	assert.Contains(t, got, "\x1b[32m+B")
	assert.Contains(t, got, "\x1b[35m@@ -1,3 +1,3 @@")
}

func TestRenderPretty(t *testing.T) {
	got := RenderPretty(abc, RenderOptions{Context: -1})
	want := strings.Join([]string{
		"1 1  a",
		"2   -b",
		" 2 +B",
		"3 3  c",
	}, "\n")
	assert.Equal(t, want, got)

	got = RenderPretty(abc, RenderOptions{FromName: "old", ToName: "new", Context: 0})
	want = strings.Join([]string{
		"old -> new:",
		"2   -b",
		" 2 +B",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderPretty_GroupsSeparated(t *testing.T) {
	got := RenderPretty(twoChanges, RenderOptions{Context: 0})
	want := strings.Join([]string{
		"2   -b",
		" 2 +B",
		"",
		"6   -f",
		" 6 +F",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderPretty_NoChanges(t *testing.T) {
	entries := Lines([]string{"a"}, []string{"a"})
	assert.Equal(t, "", RenderPretty(entries, RenderOptions{Context: 3}))
	assert.Equal(t, "x.txt:", RenderPretty(entries, RenderOptions{FromName: "x.txt", ToName: "x.txt", Context: 3}))
}

func TestRenderPretty_Headers(t *testing.T) {
	assert.Equal(t, "add new.txt:", header("", "new.txt"))
	assert.Equal(t, "delete old.txt:", header("old.txt", ""))
	assert.Equal(t, "", header("", ""))
}

func TestRenderPretty_Color(t *testing.T) {
	entries := Lines([]string{"hello world"}, []string{"hello big world"})
	got := RenderPretty(entries, RenderOptions{Context: 3, Color: true})

	// Removed line has a pink background, added line a green one with "big " emphasized.
	assert.Contains(t, got, "\x1b[48;5;224m-hello world")
	assert.Contains(t, got, "\x1b[48;5;114mbig ")
	assert.Contains(t, got, "\x1b[0m")
}

func TestRenderPretty_SanitizesControlCharacters(t *testing.T) {
	entries := Lines([]string{"a\r"}, []string{"a\tb"})
	got := RenderPretty(entries, RenderOptions{Context: 3})
	assert.Equal(t, "1   -a\\x0D\n 1 +a    b", got)
}

func TestRenderSideBySide(t *testing.T) {
	// width 40 -> text columns of (40-1-1-5)/2 = 16 cells; a cell is "<num> <text>" = 18 cells.
	pad := func(s string) string { return s + strings.Repeat(" ", 18-len(s)) }

	got := RenderSideBySide(abc, 40, -1, false)
	want := strings.Join([]string{
		pad("1 a") + "   1 a",
		pad("2 b") + " | 2 B",
		pad("3 c") + "   3 c",
	}, "\n")
	assert.Equal(t, want, got)

	got = RenderSideBySide(Lines([]string{"a", "b"}, []string{"a"}), 40, -1, false)
	assert.Equal(t, pad("1 a")+"   1 a\n"+pad("2 b")+" <", got)

	got = RenderSideBySide(Lines([]string{"a"}, []string{"a", "b"}), 40, -1, false)
	assert.Equal(t, pad("1 a")+"   1 a\n"+strings.Repeat(" ", 18)+" > 2 b", got)
}

func TestRenderSideBySide_Truncates(t *testing.T) {
	entries := Lines([]string{"abcdefghijklmnopqrstuvwxyz"}, []string{"abcdefghijklmnopqrstuvwxyz"})
	got := RenderSideBySide(entries, 40, -1, false)
	assert.Equal(t, "1 abcdefghijklmno…   1 abcdefghijklmno…", got)
}

func TestRenderSideBySide_ContextSeparator(t *testing.T) {
	got := RenderSideBySide(twoChanges, 40, 0, false)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("-", 39), lines[1])
}

func TestRenderStats(t *testing.T) {
	assert.Equal(t, "4 lines compared: 1 added, 1 removed, 2 unchanged", RenderStats(Summarize(abc), len(abc), false))
	assert.Equal(t, "1 line compared: 0 added, 0 removed, 1 unchanged", RenderStats(Stats{Unchanged: 1}, 1, false))
	assert.Contains(t, RenderStats(Summarize(abc), len(abc), true), "\x1b[32m1 added")
}
