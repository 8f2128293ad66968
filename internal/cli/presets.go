package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arcadejump/preset"
)

// PresetsOptions holds flags for the presets command.
type PresetsOptions struct {
	*RootOptions
	Name string
}

// ProfileResult is one resolved preset.
type ProfileResult struct {
	Name        string  `json:"name"`
	Height      float64 `json:"height"`
	Time        float64 `json:"time"`
	Impulse     float64 `json:"impulse"`
	Gravity     float64 `json:"gravity"`
	Descent     float64 `json:"descent"`
	FallGravity float64 `json:"fall_gravity"`
	CutImpulse  float64 `json:"cut_impulse,omitempty"`
	AirJumps    int     `json:"air_jumps,omitempty"`
	AirImpulse  float64 `json:"air_impulse,omitempty"`
}

// PresetsResult is the JSON payload of the presets command.
type PresetsResult struct {
	Profiles []ProfileResult `json:"profiles"`
}

func (r PresetsResult) String() string {
	if len(r.Profiles) == 0 {
		return "No presets found."
	}
	var b strings.Builder
	for i, p := range r.Profiles {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: H=%v T=%v V=%v G=%v", p.Name, p.Height, p.Time, p.Impulse, p.Gravity)
		if p.Descent != p.Time {
			fmt.Fprintf(&b, " fall=%v/%v", p.Descent, p.FallGravity)
		}
		if p.CutImpulse != 0 {
			fmt.Fprintf(&b, " cut=%v", p.CutImpulse)
		}
		if p.AirJumps > 0 {
			fmt.Fprintf(&b, " air=%dx%v", p.AirJumps, p.AirImpulse)
		}
	}
	return b.String()
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PresetsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "presets <dir>",
		Short: "Resolve jump presets from CUE files",
		Long: `Load the CUE package in a directory and resolve every preset it declares.

Presets live under the top-level "preset" field:

  preset: hero: { height: 4, time: 0.4, min_height: 1 }

Exit codes:
  0 - All presets resolved
  1 - A preset could not be resolved
  2 - The CUE files are invalid

Examples:
  jumpgen presets ./tuning
  jumpgen presets ./tuning --name hero --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "resolve a single preset")

	return cmd
}

func runPresets(opts *PresetsOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.Logger()

	specs, err := preset.Load(dir)
	if err != nil {
		var perr *preset.Error
		details := any(nil)
		if errors.As(err, &perr) {
			details = perr.Preset
		}
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), details)
		return WrapExitError(ExitCommandError, "loading presets", err)
	}
	logger.Debug("loaded presets", "dir", dir, "count", len(specs))

	result := PresetsResult{Profiles: []ProfileResult{}}
	for _, s := range specs {
		if opts.Name != "" && s.Name != opts.Name {
			continue
		}
		p, err := preset.Build(s)
		if err != nil {
			_ = formatter.Error(ErrCodeDegenerate, err.Error(), s.Name)
			return WrapExitError(ExitFailure, "resolving presets", err)
		}
		t := p.Trajectory
		result.Profiles = append(result.Profiles, ProfileResult{
			Name:        p.Name,
			Height:      t.Height(),
			Time:        t.Time(),
			Impulse:     t.Impulse(),
			Gravity:     t.Gravity(),
			Descent:     p.Descent,
			FallGravity: p.FallGravity,
			CutImpulse:  p.CutImpulse,
			AirJumps:    p.AirJumps,
			AirImpulse:  p.AirImpulse,
		})
	}

	if opts.Name != "" && len(result.Profiles) == 0 {
		msg := fmt.Sprintf("preset not found: %s", opts.Name)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	return formatter.Success(result)
}
