package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
	"github.com/roach88/arcadejump/trajectory"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Numeric string
}

// SolveResult is a fully resolved jump. Values keep the shortest spelling
// of the numeric type they were computed in.
type SolveResult struct {
	Numeric ir.NumType  `json:"numeric"`
	Height  json.Number `json:"height"`
	Time    json.Number `json:"time"`
	Impulse json.Number `json:"impulse"`
	Gravity json.Number `json:"gravity"`
}

func (r SolveResult) String() string {
	return fmt.Sprintf("H=%s T=%s V=%s G=%s", r.Height, r.Time, r.Impulse, r.Gravity)
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve KIND=VALUE KIND=VALUE",
		Short: "Derive a jump from two of its parameters",
		Long: `Derive the four parameters of a jump from any two of them.

Kinds are H (Height), T (Time), I or V (Impulse) and G (Gravity), in any
order.

Exit codes:
  0 - Jump resolved
  1 - A null parameter leaves the jump undefined
  2 - Invalid arguments

Examples:
  jumpgen solve H=20 T=10
  jumpgen solve V=4 G=-0.4 --numeric f32
  jumpgen solve Height=4 Gravity=-9.8 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Numeric, "numeric", "f64", "numeric type (f32|f64)")

	return cmd
}

func runSolve(opts *SolveOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	nt, ok := ir.ParseNumType(opts.Numeric)
	if !ok {
		msg := fmt.Sprintf("unknown numeric type %q", opts.Numeric)
		_ = formatter.Error(ErrCodeInvalidInput, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	var kinds [2]param.Kind
	var values [2]float64
	for i, arg := range args {
		k, v, err := parseAssignment(arg, nt.Bits())
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid argument", err)
		}
		kinds[i], values[i] = k, v
	}

	var (
		result SolveResult
		err    error
	)
	if nt == ir.Float32 {
		result, err = solvePair[float32](kinds, values, nt)
	} else {
		result, err = solvePair[float64](kinds, values, nt)
	}

	var nullErr *resolver.Error
	var comboErr *param.CombinationError
	switch {
	case errors.As(err, &nullErr):
		_ = formatter.Error(ErrCodeDegenerate, err.Error(), nullErr.Param.String())
		return WrapExitError(ExitFailure, "degenerate jump", err)
	case errors.As(err, &comboErr):
		msg := fmt.Sprintf("parameters repeat kind %s", comboErr.First)
		_ = formatter.Error(ErrCodeInvalidInput, msg, nil)
		return WrapExitError(ExitCommandError, msg, err)
	case err != nil:
		return WrapExitError(ExitFailure, "solving jump", err)
	}

	opts.Logger().Debug("solved", "inputs", args, "numeric", nt)
	return formatter.Success(result)
}

// parseAssignment parses KIND=VALUE with VALUE rounded to the given float
// width.
func parseAssignment(arg string, bits int) (param.Kind, float64, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, 0, fmt.Errorf("argument %q is not KIND=VALUE", arg)
	}
	k, ok := param.ParseKind(strings.TrimSpace(name))
	if !ok {
		return 0, 0, fmt.Errorf("unknown parameter kind %q", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), bits)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value for %s: %q", k, value)
	}
	return k, v, nil
}

func solvePair[N constraints.Float](kinds [2]param.Kind, values [2]float64, nt ir.NumType) (SolveResult, error) {
	t, err := trajectory.FromPair(kinds[0], N(values[0]), kinds[1], N(values[1]))
	if err != nil {
		return SolveResult{}, err
	}
	bits := nt.Bits()
	number := func(v N) json.Number {
		return json.Number(strconv.FormatFloat(float64(v), 'g', -1, bits))
	}
	return SolveResult{
		Numeric: nt,
		Height:  number(t.Height()),
		Time:    number(t.Time()),
		Impulse: number(t.Impulse()),
		Gravity: number(t.Gravity()),
	}, nil
}
