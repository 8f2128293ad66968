package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arcadejump/internal/compiler"
	"github.com/roach88/arcadejump/internal/ir"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Config  string
	Numeric string
}

// CheckResult is the statement graph of a checked source.
type CheckResult struct {
	Fingerprint string   `json:"fingerprint"`
	File        *ir.File `json:"file"`
}

func (r CheckResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ok (%s)", r.File.Name, r.Fingerprint[:12])
	for _, blk := range r.File.Blocks {
		fmt.Fprintf(&b, "\n  %s %s", blk.Mode, blk.Name)
		for _, st := range blk.Statements {
			a, c := st.Kinds()
			outs := make([]string, len(st.Outputs))
			for i, out := range st.Outputs {
				outs[i] = fmt.Sprintf("%s:%s", out.Kind.Short(), out.Identity)
				if out.Value != "" {
					outs[i] += "=" + out.Value
				}
			}
			fmt.Fprintf(&b, "\n    %s,%s => %s [%s]", a.Short(), c.Short(), strings.Join(outs, " "), st.Numeric)
		}
	}
	return b.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file.jump>",
		Short: "Check a .jump file without generating code",
		Long: `Parse and check a .jump source and print its statement graph.

Each statement is listed with the identity selected for every output and,
for const blocks, the evaluated value. The fingerprint changes whenever the
graph does.

Exit codes:
  0 - Source is valid
  2 - Source has errors

Examples:
  jumpgen check moves.jump
  jumpgen check moves.jump --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to jumpgen.yaml")
	cmd.Flags().StringVar(&opts.Numeric, "numeric", "", "default numeric type (f32|f64)")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	src, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeNotFound
		if !errors.Is(err, os.ErrNotExist) {
			code = ErrCodeGeneric
		}
		_ = formatter.Error(code, fmt.Sprintf("reading %s", path), err.Error())
		return WrapExitError(ExitCommandError, "reading source", err)
	}
	cfg, err := LoadConfig(path, ConfigOverrides{Path: opts.Config, Numeric: opts.Numeric})
	if err != nil {
		return reportLoadError(formatter, err)
	}

	f, err := compiler.Analyze(path, src, cfg)
	var diags compiler.Diagnostics
	if errors.As(err, &diags) {
		if err := formatter.Diagnostics(src, diags); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, "source has errors")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "checking source", err)
	}

	fp, err := ir.Fingerprint(f)
	if err != nil {
		return WrapExitError(ExitFailure, "fingerprinting source", err)
	}
	opts.Logger().Debug("checked", "file", path, "blocks", len(f.Blocks), "fingerprint", fp)
	return formatter.Success(CheckResult{Fingerprint: fp, File: f})
}
