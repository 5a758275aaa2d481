package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/codalotl/linediff/internal/diff"
)

var sample = []File{
	{Name: "a.txt", OldName: "old/a.txt", NewName: "new/a.txt", Entries: diff.Text("a\nb\nc", "a\nB\nc")},
	{Name: "same.txt", OldName: "old/same.txt", NewName: "new/same.txt", Entries: diff.Text("x", "x")},
	{Name: "new|pipe.txt", NewName: "new/new|pipe.txt", Entries: diff.Lines(nil, []string{"hi"})},
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sample, 3)

	assert.True(t, strings.HasPrefix(got, "# Diff report\n\n| File | Added | Removed | Unchanged |\n"))
	assert.Contains(t, got, "| a.txt | 1 | 1 | 2 |\n")
	assert.Contains(t, got, "| same.txt | 0 | 0 | 1 |\n")
	assert.Contains(t, got, `| new\|pipe.txt | 1 | 0 | 0 |`)
	assert.Contains(t, got, "| **Total** | 2 | 1 | 3 |\n")

	assert.Contains(t, got, "## a.txt\n\n```diff\n--- old/a.txt\n+++ new/a.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n```\n")
	assert.Contains(t, got, "--- /dev/null\n+++ new/new|pipe.txt\n@@ -0,0 +1,1 @@\n+hi")
	assert.NotContains(t, got, "## same.txt")
}

func TestMarkdown_ParsesAsExpected(t *testing.T) {
	src := []byte(Markdown(sample, 3))
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var fences []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && entering {
			fences = append(fences, string(fcb.Language(src)))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"diff", "diff"}, fences)
}

func TestFenceFor(t *testing.T) {
	assert.Equal(t, "```", fenceFor("plain"))
	assert.Equal(t, "````", fenceFor("x ``` y"))
	assert.Equal(t, "```", fenceFor("`a` ``b``"))
}

func TestHTML(t *testing.T) {
	got, err := HTML(sample, 3)
	require.NoError(t, err)

	assert.Contains(t, got, "<h1>Diff report</h1>")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, ">2</td>")
	assert.Contains(t, got, `<code class="language-diff">`)
	assert.Contains(t, got, "<strong>Total</strong>")
}

func TestHTML_EscapesContent(t *testing.T) {
	files := []File{{Name: "x.html", OldName: "a", NewName: "b", Entries: diff.Text("<b>", "<i>")}}
	got, err := HTML(files, 3)
	require.NoError(t, err)
	assert.Contains(t, got, "-&lt;b&gt;")
	assert.NotContains(t, got, "<i>")
}

func TestMarkdown_EscapesNames(t *testing.T) {
	files := []File{{Name: "#*b*_x_[1].txt", OldName: "a", NewName: "b", Entries: diff.Text("x", "y")}}

	got := Markdown(files, 3)
	assert.Contains(t, got, `## \#\*b\*\_x\_\[1\].txt`+"\n")
	assert.Contains(t, got, `| \#\*b\*\_x\_\[1\].txt | 1 | 1 | 0 |`)

	html, err := HTML(files, 3)
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>#*b*_x_[1].txt</h2>")
	assert.Contains(t, html, "<td>#*b*_x_[1].txt</td>")
	assert.NotContains(t, html, "<em>")
}
