package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Version is the linediff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// ErrDifferences is returned by Run when --exit-code is set and the inputs differ. Nothing is printed for it.
var ErrDifferences = errors.New("inputs differ")

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// usageError marks errors caused by malformed args or flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc). This includes ErrDifferences.
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	s := streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			s.in = opts.In
		}
		if opts.Out != nil {
			s.out = opts.Out
		}
		if opts.Err != nil {
			s.err = opts.Err
		}
	}

	root := newRootCommand(s)
	root.SetArgs(argv)
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)

	cmd, err := root.ExecuteContextC(context.Background())
	if err == nil {
		return 0, nil
	}
	if errors.Is(err, ErrDifferences) {
		return 1, err
	}

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(s.err, "Error: %v\n\n", err)
		if cmd != nil {
			fmt.Fprint(s.err, cmd.UsageString())
		}
		return 2, err
	}

	fmt.Fprintf(s.err, "Error: %v\n", err)
	return 1, err
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}
