// Package compare reads pairs of files (or two directory trees) and diffs them line by line.
//
// Directory trees are matched by relative path. A file present on only one side is compared against an empty sequence, so it shows up as entirely added or
// removed. Pairs are diffed concurrently; each diff is independent.
package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codalotl/linediff/internal/diff"
)

// Stdin is the path that means "read standard input".
const Stdin = "-"

// Pair names two inputs to compare. An empty OldPath or NewPath means that side is absent.
type Pair struct {
	Name    string // display name: the relative path for directory pairs, otherwise "OldPath -> NewPath"
	OldPath string
	NewPath string
}

// Result is the diff of one Pair.
type Result struct {
	Pair
	Entries []diff.Entry
	Stats   diff.Stats
}

// Options configure Run.
type Options struct {
	Diff diff.Options

	// Concurrency bounds the number of pairs diffed at once. Values < 1 mean 1.
	Concurrency int

	// Swap exchanges the old and new side of every pair before diffing.
	Swap bool

	// Stdin is read when a path is "-". Defaults to os.Stdin.
	Stdin io.Reader

	Logger *zap.Logger
}

// Pairs resolves oldPath and newPath into pairs. If both are directories, every regular file under either is paired by relative path (sorted). Otherwise
// both are treated as files and a single pair is returned. Mixing a directory with a file is an error.
func Pairs(oldPath, newPath string) ([]Pair, error) {
	oldDir, err := isDir(oldPath)
	if err != nil {
		return nil, err
	}
	newDir, err := isDir(newPath)
	if err != nil {
		return nil, err
	}

	switch {
	case !oldDir && !newDir:
		return []Pair{{Name: oldPath + " -> " + newPath, OldPath: oldPath, NewPath: newPath}}, nil
	case oldDir != newDir:
		return nil, fmt.Errorf("cannot compare a directory with a file: %s, %s", oldPath, newPath)
	}

	oldFiles, err := listFiles(oldPath)
	if err != nil {
		return nil, err
	}
	newFiles, err := listFiles(newPath)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(oldFiles)+len(newFiles))
	for rel := range oldFiles {
		names[rel] = struct{}{}
	}
	for rel := range newFiles {
		names[rel] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for rel := range names {
		sorted = append(sorted, rel)
	}
	sort.Strings(sorted)

	pairs := make([]Pair, 0, len(sorted))
	for _, rel := range sorted {
		p := Pair{Name: filepath.ToSlash(rel)}
		if _, ok := oldFiles[rel]; ok {
			p.OldPath = filepath.Join(oldPath, rel)
		}
		if _, ok := newFiles[rel]; ok {
			p.NewPath = filepath.Join(newPath, rel)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func isDir(path string) (bool, error) {
	if path == Stdin {
		return false, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

// listFiles returns the relative paths of regular files under root.
func listFiles(root string) (map[string]struct{}, error) {
	files := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	return files, nil
}

// ReadLines reads the file at path and splits it with diff.SplitLines. An empty path is an absent side and yields no lines.
func ReadLines(path string, stdin io.Reader) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	var data []byte
	var err error
	if path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return diff.SplitLines(string(data)), nil
}

// Run diffs every pair and returns results in the same order as pairs. The first error cancels the remaining work and is returned.
func Run(ctx context.Context, pairs []Pair, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if n := countStdin(pairs); n > 1 {
		return nil, errors.New("standard input can be used for only one side")
	}

	results := make([]Result, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, p := range pairs {
		g.Go(func() error {
			if opts.Swap {
				p.OldPath, p.NewPath = p.NewPath, p.OldPath
			}
			start := time.Now()

			original, err := ReadLines(p.OldPath, opts.Stdin)
			if err != nil {
				return err
			}
			modified, err := ReadLines(p.NewPath, opts.Stdin)
			if err != nil {
				return err
			}

			entries, err := diff.Compute(gctx, original, modified, opts.Diff)
			if err != nil {
				return fmt.Errorf("diff %s: %w", p.Name, err)
			}

			r := Result{Pair: p, Entries: entries, Stats: diff.Summarize(entries)}
			results[i] = r
			logger.Debug("compared",
				zap.String("name", p.Name),
				zap.Int("oldLines", len(original)),
				zap.Int("newLines", len(modified)),
				zap.Int("added", r.Stats.Added),
				zap.Int("removed", r.Stats.Removed),
				zap.Int("unchanged", r.Stats.Unchanged),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("compare failed", zap.Error(err))
		return nil, err
	}

	logger.Info("compare finished", zap.Int("pairs", len(pairs)), zap.String("algorithm", opts.Diff.Algorithm.String()))
	return results, nil
}

func countStdin(pairs []Pair) int {
	n := 0
	for _, p := range pairs {
		if p.OldPath == Stdin {
			n++
		}
		if p.NewPath == Stdin {
			n++
		}
	}
	return n
}

// Total sums the stats of results.
func Total(results []Result) diff.Stats {
	var s diff.Stats
	for _, r := range results {
		s.Added += r.Stats.Added
		s.Removed += r.Stats.Removed
		s.Unchanged += r.Stats.Unchanged
	}
	return s
}
