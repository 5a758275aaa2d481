package diff

import "fmt"

// Validate checks that entries is a well-formed diff of original to modified and returns an error on the first violation:
//   - each entry carries exactly the line numbers its Op implies
//   - OpSame and OpRemoved entries walk original in order, with OldLine counting 1, 2, 3...
//   - OpSame and OpAdded entries walk modified in order, with NewLine counting 1, 2, 3...
//   - both sequences are fully consumed
func Validate(original, modified []string, entries []Entry) error {
	oi, mi := 0, 0
	for k, e := range entries {
		switch e.Op {
		case OpSame:
			if e.OldLine == 0 || e.NewLine == 0 {
				return fmt.Errorf("entry[%d]: OpSame requires OldLine and NewLine", k)
			}
		case OpRemoved:
			if e.OldLine == 0 || e.NewLine != 0 {
				return fmt.Errorf("entry[%d]: OpRemoved requires OldLine and NewLine==0", k)
			}
		case OpAdded:
			if e.OldLine != 0 || e.NewLine == 0 {
				return fmt.Errorf("entry[%d]: OpAdded requires OldLine==0 and NewLine", k)
			}
		default:
			return fmt.Errorf("entry[%d]: invalid Op %d", k, int(e.Op))
		}

		if e.Op == OpSame || e.Op == OpRemoved {
			if oi >= len(original) {
				return fmt.Errorf("entry[%d]: original has only %d lines", k, len(original))
			}
			if e.OldLine != oi+1 {
				return fmt.Errorf("entry[%d]: OldLine is %d, want %d", k, e.OldLine, oi+1)
			}
			if e.Value != original[oi] {
				return fmt.Errorf("entry[%d]: value does not match original line %d", k, oi+1)
			}
			oi++
		}
		if e.Op == OpSame || e.Op == OpAdded {
			if mi >= len(modified) {
				return fmt.Errorf("entry[%d]: modified has only %d lines", k, len(modified))
			}
			if e.NewLine != mi+1 {
				return fmt.Errorf("entry[%d]: NewLine is %d, want %d", k, e.NewLine, mi+1)
			}
			if e.Value != modified[mi] {
				return fmt.Errorf("entry[%d]: value does not match modified line %d", k, mi+1)
			}
			mi++
		}
	}

	if oi != len(original) {
		return fmt.Errorf("diff: entries do not reconstruct original (%d of %d lines)", oi, len(original))
	}
	if mi != len(modified) {
		return fmt.Errorf("diff: entries do not reconstruct modified (%d of %d lines)", mi, len(modified))
	}
	return nil
}
