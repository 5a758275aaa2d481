package diff

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineInterner maps each distinct line to a rune so diffmatchpatch can diff whole lines as single characters. Surrogate code points are skipped since
// they do not survive a rune -> string -> rune round trip.
type lineInterner struct {
	index map[string]rune
	lines []string // indexed by rune slot
	next  rune
}

func newLineInterner() *lineInterner {
	return &lineInterner{index: make(map[string]rune)}
}

func (li *lineInterner) runes(lines []string) ([]rune, error) {
	out := make([]rune, len(lines))
	for k, line := range lines {
		r, ok := li.index[line]
		if !ok {
			if li.next >= 0xD800 && li.next <= 0xDFFF {
				li.next = 0xE000
			}
			if li.next > utf8.MaxRune {
				return nil, fmt.Errorf("more than %d distinct lines: %w", len(li.index), ErrTooLarge)
			}
			r = li.next
			li.next++
			li.index[line] = r
			for rune(len(li.lines)) <= r {
				li.lines = append(li.lines, "")
			}
			li.lines[r] = line
		}
		out[k] = r
	}
	return out, nil
}

// myersLines diffs original and modified with diffmatchpatch's Myers implementation, one rune per line.
func myersLines(original, modified []string) ([]Entry, error) {
	li := newLineInterner()
	rOld, err := li.runes(original)
	if err != nil {
		return nil, err
	}
	rNew, err := li.runes(modified)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // exact result, no time-bounded approximation
	diffs := dmp.DiffMainRunes(rOld, rNew, false)

	entries := make([]Entry, 0, len(original)+len(modified))
	oi, mi := 0, 0
	for _, d := range diffs {
		for _, r := range d.Text {
			line := li.lines[r]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				entries = append(entries, Entry{Op: OpSame, Value: line, OldLine: oi + 1, NewLine: mi + 1})
				oi++
				mi++
			case diffmatchpatch.DiffDelete:
				entries = append(entries, Entry{Op: OpRemoved, Value: line, OldLine: oi + 1})
				oi++
			case diffmatchpatch.DiffInsert:
				entries = append(entries, Entry{Op: OpAdded, Value: line, NewLine: mi + 1})
				mi++
			}
		}
	}

	if err := Validate(original, modified, entries); err != nil {
		return nil, fmt.Errorf("diff: myers result failed validation: %w", err)
	}
	return entries, nil
}
