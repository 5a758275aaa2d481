package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Span is a segment of a changed line. OpSame spans appear on both sides, OpRemoved only in the old line, OpAdded only in the new line.
type Span struct {
	Op   Op
	Text string
}

// Spans computes character-level segments between a removed line and the added line that replaced it. Concatenating the OpSame and OpRemoved spans yields
// oldLine; concatenating the OpSame and OpAdded spans yields newLine.
//
// Spans is for highlighting only and never affects the line-level result.
func Spans(oldLine, newLine string) []Span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []Span
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = OpSame
		case diffmatchpatch.DiffDelete:
			op = OpRemoved
		case diffmatchpatch.DiffInsert:
			op = OpAdded
		}
		// Coalesce adjacent spans of the same kind.
		if n := len(spans); n > 0 && spans[n-1].Op == op {
			spans[n-1].Text += d.Text
			continue
		}
		spans = append(spans, Span{Op: op, Text: d.Text})
	}
	return spans
}
