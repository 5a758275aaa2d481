// Package diff computes and renders line-level diffs between an "original" and a "modified" sequence of lines.
//
// Representation: a diff is an ordered []Entry. Each Entry carries an Op:
//   - OpSame: the line is in both sequences (OldLine and NewLine set)
//   - OpRemoved: the line is only in the original (OldLine set, NewLine == 0)
//   - OpAdded: the line is only in the modified sequence (NewLine set, OldLine == 0)
//
// Invariants:
//   - Values of OpSame and OpRemoved entries, in order, reconstruct the original exactly.
//   - Values of OpSame and OpAdded entries, in order, reconstruct the modified sequence exactly.
//   - count(OpRemoved) + count(OpSame) == len(original), and count(OpAdded) + count(OpSame) == len(modified).
//
// Validate checks all of these.
//
// Algorithm: Lines uses a dense longest-common-subsequence table, O(m·n) in time and memory. It is meant for human-scale inputs (hundreds to a few thousand
// lines). When several alignments are equally short, backtracking prefers consuming the original, so at ambiguous points removals come before insertions.
// That tie-break is part of the output contract:
//
//	diff.Lines([]string{"a", "b"}, []string{"b", "a"})
//	// removed "a" (old 1), same "b" (old 2, new 1), added "a" (new 2)
//
// Compute accepts Options to cancel via context, cap input size, or select AlgorithmMyers for large inputs. Myers output satisfies the invariants above but
// may choose a different alignment when several are optimal.
//
// Getting a diff from raw text:
//
//	entries := diff.Text(oldText, newText)
//	stats := diff.Summarize(entries)
//	fmt.Println(diff.RenderUnified(entries, "old.txt", "new.txt", 3, false))
//
// Newlines: SplitLines splits on '\n' only. A trailing '\n' yields a trailing empty line, and the empty string yields a single empty line. Lines are compared
// byte for byte; whitespace, case and '\r' are significant.
package diff
