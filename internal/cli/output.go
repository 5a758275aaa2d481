package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/codalotl/linediff/internal/compare"
	"github.com/codalotl/linediff/internal/config"
	"github.com/codalotl/linediff/internal/diff"
	"github.com/codalotl/linediff/internal/report"
)

const defaultWidth = 100

// writer renders compare results in one of the config.Format* formats.
type writer struct {
	out     io.Writer
	context int
	color   bool
	width   int
	dirMode bool // results come from two directory trees
	results []compare.Result
}

// fileReport is one result in JSON and YAML output.
type fileReport struct {
	Name    string       `json:"name" yaml:"name"`
	Old     string       `json:"old,omitempty" yaml:"old,omitempty"`
	New     string       `json:"new,omitempty" yaml:"new,omitempty"`
	Stats   diff.Stats   `json:"stats" yaml:"stats"`
	Entries []diff.Entry `json:"entries" yaml:"entries"`
}

type document struct {
	Files []fileReport `json:"files" yaml:"files"`
	Stats diff.Stats   `json:"stats" yaml:"stats"`
}

func (w writer) write(format string) error {
	switch format {
	case config.FormatPretty:
		return w.writePretty()
	case config.FormatUnified:
		return w.writeUnified()
	case config.FormatSideBySide:
		return w.writeSideBySide()
	case config.FormatStats:
		return w.writeStats()
	case config.FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(w.document())
	case config.FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(w.document()); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatMarkdown:
		_, err := io.WriteString(w.out, report.Markdown(w.reportFiles(), w.context))
		return err
	case config.FormatHTML:
		html, err := report.HTML(w.reportFiles(), w.context)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w.out, html)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

// name is the display name of r. With --swap, a single file pair is named in the swapped order.
func (w writer) name(r compare.Result) string {
	if w.dirMode {
		return r.Name
	}
	return r.OldPath + " -> " + r.NewPath
}

// shown returns the results to print in diff-style formats. In directory mode, unchanged files are omitted.
func (w writer) shown() []compare.Result {
	if !w.dirMode {
		return w.results
	}
	var out []compare.Result
	for _, r := range w.results {
		if r.Stats.Changed() {
			out = append(out, r)
		}
	}
	return out
}

// headerNames returns the names diff.RenderPretty uses for its header.
func (w writer) headerNames(r compare.Result) (from, to string) {
	if !w.dirMode {
		return r.OldPath, r.NewPath
	}
	if r.OldPath != "" {
		from = r.Name
	}
	if r.NewPath != "" {
		to = r.Name
	}
	return from, to
}

func (w writer) writePretty() error {
	var blocks []string
	for _, r := range w.shown() {
		from, to := w.headerNames(r)
		blocks = append(blocks, diff.RenderPretty(r.Entries, diff.RenderOptions{
			FromName: from,
			ToName:   to,
			Context:  w.context,
			Color:    w.color,
		}))
	}
	blocks = append(blocks, diff.RenderStats(compare.Total(w.results), totalEntries(w.results), w.color))
	return writeStringln(w.out, strings.Join(blocks, "\n\n"))
}

func (w writer) writeUnified() error {
	var blocks []string
	for _, r := range w.results {
		if !r.Stats.Changed() {
			continue
		}
		blocks = append(blocks, diff.RenderUnified(r.Entries, orDevNull(r.OldPath), orDevNull(r.NewPath), w.context, w.color))
	}
	if len(blocks) == 0 {
		return nil
	}
	return writeStringln(w.out, strings.Join(blocks, "\n"))
}

func (w writer) writeSideBySide() error {
	var blocks []string
	for _, r := range w.shown() {
		blocks = append(blocks, w.name(r)+":\n"+diff.RenderSideBySide(r.Entries, w.width, w.context, w.color))
	}
	if len(blocks) == 0 {
		return nil
	}
	return writeStringln(w.out, strings.Join(blocks, "\n\n"))
}

func (w writer) writeStats() error {
	if !w.dirMode && len(w.results) == 1 {
		r := w.results[0]
		return writeStringln(w.out, diff.RenderStats(r.Stats, len(r.Entries), w.color))
	}
	var lines []string
	for _, r := range w.results {
		lines = append(lines, r.Name+": "+diff.RenderStats(r.Stats, len(r.Entries), w.color))
	}
	lines = append(lines, "total: "+diff.RenderStats(compare.Total(w.results), totalEntries(w.results), w.color))
	return writeStringln(w.out, strings.Join(lines, "\n"))
}

func (w writer) document() document {
	doc := document{Files: make([]fileReport, 0, len(w.results)), Stats: compare.Total(w.results)}
	for _, r := range w.results {
		entries := r.Entries
		if entries == nil {
			entries = []diff.Entry{}
		}
		doc.Files = append(doc.Files, fileReport{Name: w.name(r), Old: r.OldPath, New: r.NewPath, Stats: r.Stats, Entries: entries})
	}
	return doc
}

func (w writer) reportFiles() []report.File {
	files := make([]report.File, 0, len(w.results))
	for _, r := range w.results {
		files = append(files, report.File{Name: w.name(r), OldName: r.OldPath, NewName: r.NewPath, Entries: r.Entries})
	}
	return files
}

func totalEntries(results []compare.Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Entries)
	}
	return n
}

func orDevNull(path string) string {
	if path == "" {
		return "/dev/null"
	}
	return path
}

func writeStringln(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

// useColor resolves a config.Color* mode. auto colors only a terminal, and never when NO_COLOR is set.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputWidth returns configured if set, otherwise the terminal's width, otherwise defaultWidth.
func outputWidth(configured int, out io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}
