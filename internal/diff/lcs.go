package diff

import "context"

// table is a dense (m+1)×(n+1) LCS length grid stored row-major. Cell (i, j) is the LCS length of original[i:] and modified[j:], so row m and column n
// are zero and cell (0, 0) is the length of the whole LCS.
type table struct {
	cols  int
	cells []int
}

func (t table) at(i, j int) int {
	return t.cells[i*t.cols+j]
}

// buildTable fills the LCS table for original and modified:
//
//	t[i][j] = t[i+1][j+1] + 1             if original[i] == modified[j]
//	t[i][j] = max(t[i+1][j], t[i][j+1])   otherwise
//
// ctx is checked once per row; a canceled ctx returns ctx.Err().
func buildTable(ctx context.Context, original, modified []string) (table, error) {
	m, n := len(original), len(modified)
	t := table{cols: n + 1, cells: make([]int, (m+1)*(n+1))}

	for i := m - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return table{}, err
		}
		row := t.cells[i*t.cols : (i+1)*t.cols]
		below := t.cells[(i+1)*t.cols : (i+2)*t.cols]
		a := original[i]
		for j := n - 1; j >= 0; j-- {
			switch {
			case a == modified[j]:
				row[j] = below[j+1] + 1
			case below[j] >= row[j+1]:
				row[j] = below[j]
			default:
				row[j] = row[j+1]
			}
		}
	}
	return t, nil
}

// match is one element of the chosen common subsequence. Indices are 0-based.
type match struct {
	value    string
	oldIndex int
	newIndex int
}

// backtrack walks t from (0, 0) and returns the chosen common subsequence in ascending index order.
//
// When skipping original[i] and skipping modified[j] keep an equally long LCS, it skips original[i]. At ambiguous points that shows the removal before the
// insertion: ["a","b"] -> ["b","a"] becomes -a, =b, +a rather than +b, =a, -b. The comparison must stay ">=".
func backtrack(t table, original, modified []string) []match {
	m, n := len(original), len(modified)

	var matches []match
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case original[i] == modified[j]:
			matches = append(matches, match{value: original[i], oldIndex: i, newIndex: j})
			i++
			j++
		case t.at(i+1, j) >= t.at(i, j+1):
			i++
		default:
			j++
		}
	}
	return matches
}

// assemble folds matches into entries: removals before each match, then insertions, then the match itself; finally the removed and added tails.
func assemble(matches []match, original, modified []string) []Entry {
	entries := make([]Entry, 0, len(original)+len(modified)-len(matches))

	oi, mi := 0, 0
	removeUntil := func(end int) {
		for ; oi < end; oi++ {
			entries = append(entries, Entry{Op: OpRemoved, Value: original[oi], OldLine: oi + 1})
		}
	}
	addUntil := func(end int) {
		for ; mi < end; mi++ {
			entries = append(entries, Entry{Op: OpAdded, Value: modified[mi], NewLine: mi + 1})
		}
	}

	for _, mt := range matches {
		removeUntil(mt.oldIndex)
		addUntil(mt.newIndex)
		entries = append(entries, Entry{Op: OpSame, Value: mt.value, OldLine: oi + 1, NewLine: mi + 1})
		oi++
		mi++
	}
	removeUntil(len(original))
	addUntil(len(modified))

	return entries
}
