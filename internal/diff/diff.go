package diff

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Op tags an Entry with how a line moved from the original to the modified sequence.
type Op int

// Operations from original to modified.
const (
	OpSame    Op = iota // line is in both sequences
	OpRemoved           // line is only in the original
	OpAdded             // line is only in the modified
)

// String returns "same", "removed", or "added".
func (op Op) String() string {
	switch op {
	case OpSame:
		return "same"
	case OpRemoved:
		return "removed"
	case OpAdded:
		return "added"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// MarshalText encodes op as its String form, so JSON and YAML output read "same"/"removed"/"added".
func (op Op) MarshalText() ([]byte, error) {
	switch op {
	case OpSame, OpRemoved, OpAdded:
		return []byte(op.String()), nil
	}
	return nil, fmt.Errorf("diff: invalid Op %d", int(op))
}

// UnmarshalText is the inverse of MarshalText.
func (op *Op) UnmarshalText(b []byte) error {
	switch string(b) {
	case "same":
		*op = OpSame
	case "removed":
		*op = OpRemoved
	case "added":
		*op = OpAdded
	default:
		return fmt.Errorf("diff: invalid Op %q", string(b))
	}
	return nil
}

// Entry is one line of a line-aligned edit script.
//
// Line numbers are 1-based positions in their respective input sequences. A zero line number means the line does not exist on that side:
//   - OpSame: OldLine > 0 && NewLine > 0
//   - OpRemoved: OldLine > 0 && NewLine == 0
//   - OpAdded: OldLine == 0 && NewLine > 0
//
// In JSON and YAML both line numbers are always present; a zero line number encodes as null.
type Entry struct {
	Op      Op
	Value   string
	OldLine int
	NewLine int
}

// entryDoc is the encoded form of an Entry.
type entryDoc struct {
	Op      Op     `json:"type" yaml:"type"`
	Value   string `json:"value" yaml:"value"`
	OldLine *int   `json:"oldLineNum" yaml:"oldLineNum"`
	NewLine *int   `json:"newLineNum" yaml:"newLineNum"`
}

func (e Entry) doc() entryDoc {
	lineRef := func(n int) *int {
		if n == 0 {
			return nil
		}
		return &n
	}
	return entryDoc{Op: e.Op, Value: e.Value, OldLine: lineRef(e.OldLine), NewLine: lineRef(e.NewLine)}
}

func (d entryDoc) entry() Entry {
	lineVal := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}
	return Entry{Op: d.Op, Value: d.Value, OldLine: lineVal(d.OldLine), NewLine: lineVal(d.NewLine)}
}

// MarshalJSON encodes e with "type", "value", "oldLineNum" and "newLineNum" keys. HTML characters in Value are not escaped here; an outer encoder may still
// escape them.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.doc()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON is the inverse of MarshalJSON. A null or missing line number decodes as 0.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var d entryDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*e = d.entry()
	return nil
}

// MarshalYAML encodes e with the same keys as MarshalJSON.
func (e Entry) MarshalYAML() (any, error) {
	return e.doc(), nil
}

// UnmarshalYAML is the inverse of MarshalYAML.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	var d entryDoc
	if err := n.Decode(&d); err != nil {
		return err
	}
	*e = d.entry()
	return nil
}

// Stats counts entries by Op.
type Stats struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Changed reports whether s has any added or removed lines.
func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// Summarize counts entries by Op.
func Summarize(entries []Entry) Stats {
	var s Stats
	for _, e := range entries {
		switch e.Op {
		case OpSame:
			s.Unchanged++
		case OpRemoved:
			s.Removed++
		case OpAdded:
			s.Added++
		}
	}
	return s
}

// defaultEOL is the line separator used by SplitLines and the renderers.
const defaultEOL = "\n"
