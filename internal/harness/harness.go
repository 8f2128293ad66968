package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/internal/compiler"
	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
	"github.com/roach88/arcadejump/trajectory"
)

// Harness is the test execution engine.
type Harness struct {
	scenario *Scenario
	logger   *slog.Logger
	bits     int
}

// Run executes a test scenario and returns the result.
// The error is reserved for scenarios that cannot be executed; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with progress logged at debug level.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h := &Harness{
		scenario: scenario,
		logger:   logger,
		bits:     scenario.NumType().Bits(),
	}

	result := NewResult()
	for i := range scenario.Cases {
		c := &scenario.Cases[i]
		var err error
		if h.bits == 32 {
			err = runCase[float32](h, c, result)
		} else {
			err = runCase[float64](h, c, result)
		}
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
	}
	return result, nil
}

// outcome is what one path produced.
type outcome struct {
	values map[param.Kind]float64
	err    error
}

func runCase[N constraints.Float](h *Harness, c *Case, result *Result) error {
	in, err := c.inputs()
	if err != nil {
		return err
	}
	outs, err := c.outputs()
	if err != nil {
		return err
	}
	a, b := in[0], in[1]

	// resolver
	res := outcome{values: make(map[param.Kind]float64)}
	for _, k := range outs {
		v, err := resolver.Solve(a.kind, N(a.value), b.kind, N(b.value), k)
		if err != nil {
			res.err = err
			break
		}
		res.values[k] = float64(v)
	}
	h.record(c, PathResolver, res, result)

	// trajectory
	traj := outcome{values: make(map[param.Kind]float64)}
	if t, err := trajectory.FromPair(a.kind, N(a.value), b.kind, N(b.value)); err != nil {
		traj.err = err
	} else {
		for _, k := range param.Kinds() {
			traj.values[k] = float64(t.Value(k))
		}
	}
	h.record(c, PathTrajectory, traj, result)

	// jump
	jump, err := h.evalJump(in, outs)
	if err != nil {
		return err
	}
	h.record(c, PathJump, jump, result)
	return nil
}

// jumpSource renders a case as a const .jump block with one output binding
// per kind, named after the kind.
func jumpSource(nt ir.NumType, in []tagged, outs []param.Kind) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "jump Case {\n\tuse const %s\n\t", nt)
	fmt.Fprintf(&sb, "%s(%s), %s(%s) =>",
		in[0].kind.Short(), strconv.FormatFloat(in[0].value, 'g', -1, 64),
		in[1].kind.Short(), strconv.FormatFloat(in[1].value, 'g', -1, 64))
	for i, k := range outs {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, " %s: %s", k.Short(), k.Short())
	}
	sb.WriteString("\n}\n")
	return sb.String()
}

func (h *Harness) evalJump(in []tagged, outs []param.Kind) (outcome, error) {
	src := jumpSource(h.scenario.NumType(), in, outs)
	f, err := compiler.Analyze("case.jump", []byte(src), compiler.DefaultConfig())
	if err != nil {
		var diags compiler.Diagnostics
		if !errors.As(err, &diags) {
			return outcome{}, err
		}
		return outcome{err: diags[0]}, nil
	}

	o := outcome{values: make(map[param.Kind]float64)}
	for _, out := range f.Blocks[0].Statements[0].Outputs {
		v, err := strconv.ParseFloat(out.Value, 64)
		if err != nil {
			return outcome{}, fmt.Errorf("constant %s: %w", out.Name, err)
		}
		o.values[out.Kind] = v
	}
	return o, nil
}

func (h *Harness) record(c *Case, path string, o outcome, result *Result) {
	ev := TraceEvent{Case: c.Name, Path: path}
	if o.err != nil {
		ev.Error = errorText(o.err)
	} else {
		ev.Outputs = make(map[string]string, len(o.values))
		for k, v := range o.values {
			ev.Outputs[k.Short()] = strconv.FormatFloat(v, 'g', -1, h.bits)
		}
	}
	result.AddTrace(ev)

	for _, msg := range h.check(c, o) {
		result.AddError(fmt.Sprintf("%s/%s: %s", c.Name, path, msg))
	}
	h.logger.Debug("case path completed",
		"scenario", h.scenario.Name,
		"case", c.Name,
		"path", path,
		"error", ev.Error,
	)
}

func (h *Harness) check(c *Case, o outcome) []string {
	if c.Error != "" {
		want, _ := param.ParseKind(c.Error)
		switch {
		case o.err == nil:
			return []string{fmt.Sprintf("expected null %s, got %s", want, formatValues(o.values, h.bits))}
		case !isNull(o.err, want):
			return []string{fmt.Sprintf("expected null %s, got %v", want, o.err)}
		}
		return nil
	}
	if o.err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", o.err)}
	}

	expect, _ := c.expected()
	tol := h.scenario.tolerance()
	var msgs []string
	for _, k := range param.Kinds() {
		want, ok := expect[k]
		if !ok {
			continue
		}
		got, ok := o.values[k]
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("%s was not derived", k))
		case !near(got, want, tol):
			msgs = append(msgs, fmt.Sprintf("%s = %s, expected %v", k, strconv.FormatFloat(got, 'g', -1, h.bits), want))
		}
	}
	return msgs
}

// isNull reports whether err is the failure of an identity on a null input
// of kind k, either from the resolver or from const evaluation.
func isNull(err error, k param.Kind) bool {
	target := &resolver.Error{Param: k}
	if errors.Is(err, target) {
		return true
	}
	var diag *compiler.CompileError
	return errors.As(err, &diag) &&
		diag.Code == compiler.ErrConstEval &&
		strings.HasSuffix(diag.Message, target.Error())
}

func errorText(err error) string {
	var diag *compiler.CompileError
	if errors.As(err, &diag) {
		return diag.Code + ": " + diag.Message
	}
	return err.Error()
}

func formatValues(values map[param.Kind]float64, bits int) string {
	parts := make([]string, 0, len(values))
	for _, k := range param.Kinds() {
		if v, ok := values[k]; ok {
			parts = append(parts, k.Short()+"="+strconv.FormatFloat(v, 'g', -1, bits))
		}
	}
	return strings.Join(parts, " ")
}

func near(got, want, tol float64) bool {
	scale := math.Max(1, math.Abs(want))
	return math.Abs(got-want) <= tol*scale
}
