package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codalotl/linediff/internal/compare"
	"github.com/codalotl/linediff/internal/config"
	"github.com/codalotl/linediff/internal/logging"
)

// diffFlags holds the root command's flag values. A flag only overrides the loaded configuration if it was set.
type diffFlags struct {
	format    string
	context   int
	color     string
	algorithm string
	maxLines  int
	width     int
	swap      bool
	exitCode  bool
	verbose   bool
}

func newRootCommand(s streams) *cobra.Command {
	f := &diffFlags{}
	def := config.Default()

	root := &cobra.Command{
		Use:   "linediff [flags] OLD NEW",
		Short: "Compare two files (or two directory trees) line by line.",
		Long: `linediff compares OLD and NEW line by line using a longest common subsequence and prints which lines were removed, added, or unchanged.

If OLD and NEW are directories, every regular file under either is compared by relative path; a file present on only one side is shown as entirely
removed or added. Use - for one side to read standard input.

"version" and "config" as the first argument run those subcommands. To compare a file with one of those names, give it as a path, such as ./config.

Configuration is read from ~/.linediff/config.yaml, the nearest .linediff/config.yaml, and LINEDIFF_* environment variables; flags override all of them.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageError{fmt.Errorf("expected 2 arguments (OLD NEW), got %d", len(args))}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, f, s)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	fl := root.Flags()
	fl.StringVarP(&f.format, "format", "f", def.Format, "output format: "+strings.Join(config.Formats, ", "))
	fl.IntVarP(&f.context, "context", "C", def.Context, "unchanged lines shown around changes (negative shows all)")
	fl.StringVar(&f.color, "color", def.Color, "colorize output: auto, always, never")
	fl.StringVar(&f.algorithm, "algorithm", def.Algorithm, "diff algorithm: lcs, myers")
	fl.IntVar(&f.maxLines, "max-lines", def.MaxLines, "refuse inputs longer than this many lines (0 means no limit)")
	fl.IntVar(&f.width, "width", def.Width, "output width for side-by-side (0 detects the terminal)")
	fl.BoolVar(&f.swap, "swap", false, "swap OLD and NEW")
	fl.BoolVar(&f.exitCode, "exit-code", false, "exit with status 1 if the inputs differ")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "include debug entries in the log file ($"+logging.EnvLogFile+")")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print linediff version.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(s.out, Version)
			return err
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			return config.WriteJSON(s.out, cfg)
		},
	}

	root.AddCommand(versionCmd, configCmd)
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("%s takes no arguments", cmd.Name())}
	}
	return nil
}

// effectiveConfig loads the configuration for cwd and applies the flags that were set. Configuration errors are returned as is; invalid flag values are
// usage errors.
func effectiveConfig(cmd *cobra.Command, f *diffFlags) (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return config.Config{}, err
	}

	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("context") {
		cfg.Context = f.context
	}
	if fl.Changed("color") {
		cfg.Color = f.color
	}
	if fl.Changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if fl.Changed("max-lines") {
		cfg.MaxLines = f.maxLines
	}
	if fl.Changed("width") {
		cfg.Width = f.width
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageError{err}
	}
	return cfg, nil
}

func runDiff(cmd *cobra.Command, args []string, f *diffFlags, s streams) error {
	cfg, err := effectiveConfig(cmd, f)
	if err != nil {
		return err
	}

	logger := logging.New(f.verbose)
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration", zap.String("format", cfg.Format), zap.String("algorithm", cfg.Algorithm), zap.Strings("sources", cfg.Sources))

	pairs, err := compare.Pairs(args[0], args[1])
	if err != nil {
		return err
	}

	results, err := compare.Run(cmd.Context(), pairs, compare.Options{
		Diff:        cfg.DiffOptions(),
		Concurrency: cfg.Concurrency,
		Swap:        f.swap,
		Stdin:       s.in,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	w := writer{
		out:     s.out,
		context: cfg.Context,
		color:   useColor(cfg.Color, s.out),
		width:   outputWidth(cfg.Width, s.out),
		dirMode: isDir(args[0]),
		results: results,
	}
	if err := w.write(cfg.Format); err != nil {
		return err
	}

	if f.exitCode && compare.Total(results).Changed() {
		return ErrDifferences
	}
	return nil
}

// isDir reports whether path is a directory. Once compare.Pairs succeeds, this tells whether both arguments are.
func isDir(path string) bool {
	if path == compare.Stdin {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
