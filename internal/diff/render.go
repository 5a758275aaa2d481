package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/codalotl/linediff/internal/textwidth"
)

const tabWidth = 4

// RenderOptions control RenderPretty.
type RenderOptions struct {
	// FromName and ToName produce a header line. If both are empty, no header is printed.
	FromName string
	ToName   string

	// Context is the number of unchanged lines shown around each group of changes. A negative Context shows every line.
	Context int

	// Color enables ANSI 256-color output.
	Color bool
}

// group is a half-open range [start, end) of entries that is rendered together.
type group struct {
	start, end int
}

// groupEntries finds the ranges of entries to show with context unchanged lines around changes. Two changes separated by at most 2*context unchanged lines
// share a group. A negative context yields one group spanning everything.
func groupEntries(entries []Entry, context int) []group {
	if context < 0 {
		if len(entries) == 0 {
			return nil
		}
		return []group{{0, len(entries)}}
	}

	var groups []group
	for i := 0; i < len(entries); i++ {
		if entries[i].Op == OpSame {
			continue
		}
		g := group{start: max(0, i-context), end: i + 1}
		for g.end < len(entries) {
			if entries[g.end].Op != OpSame {
				g.end++
				continue
			}
			k := g.end
			for k < len(entries) && entries[k].Op == OpSame {
				k++
			}
			if k < len(entries) && k-g.end <= 2*context {
				g.end = k
				continue
			}
			g.end = min(k, g.end+context)
			break
		}
		groups = append(groups, g)
		i = g.end - 1
	}
	return groups
}

// row pairs an old-side entry with a new-side entry. Unchanged lines fill both sides with the same entry; a run of removals followed by a run of additions
// is zipped so the k-th removal sits next to the k-th addition.
type row struct {
	old, new *Entry
}

func pairRows(entries []Entry) []row {
	var rows []row
	for i := 0; i < len(entries); {
		e := &entries[i]
		if e.Op == OpSame {
			rows = append(rows, row{old: e, new: e})
			i++
			continue
		}

		remStart := i
		for i < len(entries) && entries[i].Op == OpRemoved {
			i++
		}
		addStart := i
		for i < len(entries) && entries[i].Op == OpAdded {
			i++
		}
		removed := entries[remStart:addStart]
		added := entries[addStart:i]
		for k := 0; k < max(len(removed), len(added)); k++ {
			var r row
			if k < len(removed) {
				r.old = &removed[k]
			}
			if k < len(added) {
				r.new = &added[k]
			}
			rows = append(rows, r)
		}
	}
	return rows
}

func header(fromName, toName string) string {
	switch {
	case fromName == "" && toName == "":
		return ""
	case fromName == "":
		return fmt.Sprintf("add %s:", toName)
	case toName == "":
		return fmt.Sprintf("delete %s:", fromName)
	case fromName == toName:
		return fmt.Sprintf("%s:", fromName)
	}
	return fmt.Sprintf("%s -> %s:", fromName, toName)
}

func maxLineNumbers(entries []Entry) (oldMax, newMax int) {
	for _, e := range entries {
		oldMax = max(oldMax, e.OldLine)
		newMax = max(newMax, e.NewLine)
	}
	return oldMax, newMax
}

func lineNum(n, width int) string {
	if n == 0 {
		return strings.Repeat(" ", width)
	}
	s := strconv.Itoa(n)
	return strings.Repeat(" ", width-len(s)) + s
}

// RenderPretty returns a human-oriented rendering of entries: a gutter with old and new line numbers, then a "-", "+" or " " marker, then the line. With
// opts.Color, removed and added lines get pink and green backgrounds, and where a removed line is directly replaced by an added line, the changed characters
// are highlighted more strongly.
//
// Groups of changes are separated by a blank line. The result uses "\n" as the line separator and has no trailing newline. If there is nothing to show and no
// header is requested, the result is the empty string.
func RenderPretty(entries []Entry, opts RenderOptions) string {
	const (
		reset     = "\x1b[0m"
		blackFG   = "\x1b[30m"
		pinkLine  = "\x1b[48;5;224m" // deleted lines
		pinkSpan  = "\x1b[48;5;217m" // deleted spans
		greenLine = "\x1b[48;5;194m" // added lines
		greenSpan = "\x1b[48;5;114m" // added spans
		cyanBold  = "\x1b[1;36m"
		dim       = "\x1b[2m"
	)

	style := func(s string, codes ...string) string {
		if !opts.Color {
			return s
		}
		return strings.Join(codes, "") + s + reset
	}
	clean := func(s string) string {
		return textwidth.Sanitize(s, tabWidth)
	}

	var out []string
	if h := header(opts.FromName, opts.ToName); h != "" {
		out = append(out, style(h, cyanBold))
	}

	oldMax, newMax := maxLineNumbers(entries)
	oldW, newW := len(strconv.Itoa(oldMax)), len(strconv.Itoa(newMax))
	gutter := func(e *Entry) string {
		return style(lineNum(e.OldLine, oldW)+" "+lineNum(e.NewLine, newW), dim) + " "
	}

	// highlight renders one side of a replaced line, emphasizing spans of kind op.
	highlight := func(spans []Span, op Op, lineBg, spanBg string) string {
		var b strings.Builder
		for _, sp := range spans {
			switch sp.Op {
			case OpSame:
				b.WriteString(clean(sp.Text))
			case op:
				b.WriteString(reset + blackFG + spanBg + clean(sp.Text) + reset + blackFG + lineBg)
			}
		}
		return b.String()
	}

	for gi, g := range groupEntries(entries, opts.Context) {
		if gi > 0 {
			out = append(out, "")
		}

		var lines []string
		var removedLines, addedLines []string
		flush := func() {
			lines = append(lines, removedLines...)
			lines = append(lines, addedLines...)
			removedLines, addedLines = nil, nil
		}

		for _, r := range pairRows(entries[g.start:g.end]) {
			if r.old != nil && r.old == r.new {
				flush()
				lines = append(lines, gutter(r.old)+" "+clean(r.old.Value))
				continue
			}

			var spans []Span
			if opts.Color && r.old != nil && r.new != nil {
				spans = Spans(r.old.Value, r.new.Value)
			}
			if r.old != nil {
				content := clean(r.old.Value)
				if spans != nil {
					content = highlight(spans, OpRemoved, pinkLine, pinkSpan)
				}
				removedLines = append(removedLines, gutter(r.old)+style("-"+content, blackFG, pinkLine))
			}
			if r.new != nil {
				content := clean(r.new.Value)
				if spans != nil {
					content = highlight(spans, OpAdded, greenLine, greenSpan)
				}
				addedLines = append(addedLines, gutter(r.new)+style("+"+content, blackFG, greenLine))
			}
		}
		flush()
		out = append(out, lines...)
	}

	return strings.Join(out, defaultEOL)
}

// RenderUnified returns a unified diff with "---"/"+++" file headers and "@@ -a,b +c,d @@" hunk headers. context is the number of unchanged lines around
// each hunk. If useColor, the output includes ANSI colors.
//
// A diff with no changes renders only the file headers.
func RenderUnified(entries []Entry, fromName, toName string, context int, useColor bool) string {
	paint := func(attr color.Attribute, bold bool) func(string) string {
		c := color.New(attr)
		if bold {
			c.Add(color.Bold)
		}
		c.EnableColor()
		return func(s string) string {
			if !useColor {
				return s
			}
			return c.Sprint(s)
		}
	}
	cyan, magenta, red, green := paint(color.FgCyan, true), paint(color.FgMagenta, false), paint(color.FgRed, false), paint(color.FgGreen, false)

	out := []string{cyan("--- " + fromName), cyan("+++ " + toName)}

	// Lines of each side consumed before entries[k].
	oldBefore, newBefore := 0, 0
	consumed := 0
	advance := func(to int) {
		for ; consumed < to; consumed++ {
			if entries[consumed].OldLine != 0 {
				oldBefore++
			}
			if entries[consumed].NewLine != 0 {
				newBefore++
			}
		}
	}

	for _, g := range groupEntries(entries, max(context, 0)) {
		advance(g.start)

		var body []string
		oldCount, newCount := 0, 0
		for _, e := range entries[g.start:g.end] {
			switch e.Op {
			case OpSame:
				body = append(body, " "+e.Value)
				oldCount++
				newCount++
			case OpRemoved:
				body = append(body, red("-"+e.Value))
				oldCount++
			case OpAdded:
				body = append(body, green("+"+e.Value))
				newCount++
			}
		}

		oldStart, newStart := oldBefore+1, newBefore+1
		if oldCount == 0 {
			oldStart = oldBefore
		}
		if newCount == 0 {
			newStart = newBefore
		}
		out = append(out, magenta(fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)))
		out = append(out, body...)
	}

	return strings.Join(out, defaultEOL)
}

// RenderSideBySide returns the old and new sequences in two columns that fit width terminal cells. The marker between columns is " " for unchanged lines,
// "|" for a removed line replaced by an added line, "<" for a removal and ">" for an addition. context works as in RenderOptions.Context.
func RenderSideBySide(entries []Entry, width int, context int, useColor bool) string {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	red.EnableColor()
	green.EnableColor()
	paint := func(c *color.Color, s string) string {
		if !useColor {
			return s
		}
		return c.Sprint(s)
	}

	oldMax, newMax := maxLineNumbers(entries)
	oldW, newW := len(strconv.Itoa(oldMax)), len(strconv.Itoa(newMax))

	// Layout: "<oldnum> <old text> X <newnum> <new text>"
	textW := (width - oldW - newW - 5) / 2
	textW = max(textW, 1)

	cell := func(e *Entry, num, numW int) string {
		if e == nil {
			return strings.Repeat(" ", numW+1+textW)
		}
		return lineNum(num, numW) + " " + textwidth.Fit(textwidth.Sanitize(e.Value, tabWidth), textW)
	}

	var out []string
	for gi, g := range groupEntries(entries, context) {
		if gi > 0 {
			out = append(out, strings.Repeat("-", min(width, oldW+newW+5+2*textW)))
		}
		for _, r := range pairRows(entries[g.start:g.end]) {
			left, right := cell(r.old, entryOld(r.old), oldW), cell(r.new, entryNew(r.new), newW)
			var marker string
			switch {
			case r.old != nil && r.old == r.new:
				marker = " "
			case r.old != nil && r.new != nil:
				marker = "|"
				left, right = paint(red, left), paint(green, right)
			case r.old != nil:
				marker = "<"
				left = paint(red, left)
			default:
				marker = ">"
				right = paint(green, right)
			}
			out = append(out, strings.TrimRight(left+" "+marker+" "+right, " "))
		}
	}
	return strings.Join(out, defaultEOL)
}

func entryOld(e *Entry) int {
	if e == nil {
		return 0
	}
	return e.OldLine
}

func entryNew(e *Entry) int {
	if e == nil {
		return 0
	}
	return e.NewLine
}

// RenderStats returns a one-line summary like "5 lines compared: 1 added, 2 removed, 2 unchanged". total is the number of entries.
func RenderStats(stats Stats, total int, useColor bool) string {
	plural := "s"
	if total == 1 {
		plural = ""
	}
	added := fmt.Sprintf("%d added", stats.Added)
	removed := fmt.Sprintf("%d removed", stats.Removed)
	if useColor {
		g := color.New(color.FgGreen)
		r := color.New(color.FgRed)
		g.EnableColor()
		r.EnableColor()
		added, removed = g.Sprint(added), r.Sprint(removed)
	}
	return fmt.Sprintf("%d line%s compared: %s, %s, %d unchanged", total, plural, added, removed, stats.Unchanged)
}
