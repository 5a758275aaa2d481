package diff

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTooLarge is returned by Compute when an input exceeds Options.MaxLines.
var ErrTooLarge = errors.New("diff: input too large")

// Algorithm selects how Compute aligns the two sequences.
type Algorithm int

const (
	// AlgorithmLCS is the dense longest-common-subsequence table. Its output is what Lines returns.
	AlgorithmLCS Algorithm = iota

	// AlgorithmMyers is a line-level Myers diff. It needs far less memory on large inputs but may pick a different alignment than AlgorithmLCS when
	// several are equally short.
	AlgorithmMyers
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmLCS:
		return "lcs"
	case AlgorithmMyers:
		return "myers"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm parses "lcs" or "myers" (case-insensitive). The empty string is AlgorithmLCS.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lcs":
		return AlgorithmLCS, nil
	case "myers":
		return AlgorithmMyers, nil
	}
	return 0, fmt.Errorf("diff: unknown algorithm %q (want lcs or myers)", s)
}

// Options configure Compute. The zero value matches Lines.
type Options struct {
	Algorithm Algorithm

	// MaxLines, if > 0, rejects inputs where either side has more lines than this with ErrTooLarge.
	MaxLines int
}

// Lines diffs original against modified and returns a line-aligned edit script. It never fails: empty inputs produce an empty, all-added, or all-removed
// result.
func Lines(original, modified []string) []Entry {
	entries, err := Compute(context.Background(), original, modified, Options{})
	if err != nil {
		// Unreachable: background ctx never cancels and there is no cap.
		panic(fmt.Errorf("diff.Lines: %w", err))
	}
	return entries
}

// Text splits oldText and newText with SplitLines and diffs the results.
func Text(oldText, newText string) []Entry {
	return Lines(SplitLines(oldText), SplitLines(newText))
}

// SplitLines splits text on '\n'. The empty string yields one empty line, and a trailing '\n' yields a trailing empty line. Callers rely on these counts.
func SplitLines(text string) []string {
	return strings.Split(text, defaultEOL)
}

// Compute diffs original against modified according to opts.
//
// With AlgorithmLCS, a successful result is identical to Lines(original, modified). ctx is checked between rows of the LCS table; cancellation returns
// ctx.Err() and no entries.
func Compute(ctx context.Context, original, modified []string, opts Options) ([]Entry, error) {
	if opts.MaxLines > 0 {
		if len(original) > opts.MaxLines {
			return nil, fmt.Errorf("original has %d lines, limit is %d: %w", len(original), opts.MaxLines, ErrTooLarge)
		}
		if len(modified) > opts.MaxLines {
			return nil, fmt.Errorf("modified has %d lines, limit is %d: %w", len(modified), opts.MaxLines, ErrTooLarge)
		}
	}

	switch opts.Algorithm {
	case AlgorithmLCS:
		t, err := buildTable(ctx, original, modified)
		if err != nil {
			return nil, err
		}
		return assemble(backtrack(t, original, modified), original, modified), nil
	case AlgorithmMyers:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return myersLines(original, modified)
	}
	return nil, fmt.Errorf("diff: unknown algorithm %v", opts.Algorithm)
}
