// Package report renders diff results as a Markdown document (a summary table plus one fenced unified diff per file) and converts that document to HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/codalotl/linediff/internal/diff"
)

// File is one compared pair in a report.
type File struct {
	Name    string
	OldName string // "" if the file is absent on the old side
	NewName string // "" if the file is absent on the new side
	Entries []diff.Entry
}

// Markdown returns a report of files. context is the number of unchanged lines around each hunk. Files without changes appear in the summary table only.
func Markdown(files []File, context int) string {
	var b strings.Builder
	b.WriteString("# Diff report\n\n")

	var total diff.Stats
	b.WriteString("| File | Added | Removed | Unchanged |\n")
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	for _, f := range files {
		s := diff.Summarize(f.Entries)
		total.Added += s.Added
		total.Removed += s.Removed
		total.Unchanged += s.Unchanged
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", escapeText(f.Name), s.Added, s.Removed, s.Unchanged)
	}
	if len(files) > 1 {
		fmt.Fprintf(&b, "| **Total** | %d | %d | %d |\n", total.Added, total.Removed, total.Unchanged)
	}

	for _, f := range files {
		if !diff.Summarize(f.Entries).Changed() {
			continue
		}
		body := diff.RenderUnified(f.Entries, orDevNull(f.OldName), orDevNull(f.NewName), context, false)
		fence := fenceFor(body)
		fmt.Fprintf(&b, "\n## %s\n\n%sdiff\n%s\n%s\n", escapeText(f.Name), fence, body, fence)
	}
	return b.String()
}

// HTML returns Markdown(files, context) converted to an HTML fragment.
func HTML(files []File, context int) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(files, context)), &buf); err != nil {
		return "", fmt.Errorf("report: convert markdown: %w", err)
	}
	return buf.String(), nil
}

func orDevNull(name string) string {
	if name == "" {
		return "/dev/null"
	}
	return name
}

// markdownEscaper backslash-escapes the punctuation that can start emphasis, code, links, headings, HTML or table cells.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"~", `\~`,
	"|", `\|`,
)

// escapeText makes a file name render literally in a heading or table cell.
func escapeText(s string) string {
	return markdownEscaper.Replace(s)
}

// fenceFor returns a backtick fence longer than any backtick run in body.
func fenceFor(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}
