// Package preset builds complete jump profiles for a character controller
// from a handful of designer-facing values.
//
// A Spec names either two of the four vertical parameters, or one vertical
// parameter together with the horizontal speed and the distance covered by
// the whole jump. The second form derives the time to peak from the
// horizontal motion; an optional ascent ratio makes the fall faster or slower
// than the rise.
package preset

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
	"github.com/roach88/arcadejump/resolver/nofailure"
	"github.com/roach88/arcadejump/trajectory"
)

var (
	// ErrUnderdetermined is returned when a Spec names fewer than two
	// parameters and no horizontal motion.
	ErrUnderdetermined = errors.New("preset needs two vertical parameters or one with speed and range")

	// ErrOverdetermined is returned when a Spec names more than two
	// parameters.
	ErrOverdetermined = errors.New("preset names too many parameters")

	// ErrCutAbovePeak is returned by VariableHeightCut when the minimum
	// height is above the peak of the full jump.
	ErrCutAbovePeak = errors.New("minimum height is above the peak")
)

// Spec describes a jump the way a designer tunes it.
type Spec struct {
	Name string

	// Vertical maps each given parameter to its value.
	Vertical map[param.Kind]float64

	// Speed and Range describe the horizontal motion over the whole jump.
	// They are used only when a single vertical parameter is given.
	Speed float64
	Range float64

	// Ratio is the share of the airtime spent rising. Zero means a
	// symmetric jump.
	Ratio float64

	// MinHeight is the peak reached when the button is released at once.
	// Zero disables variable height.
	MinHeight float64

	AirJumps  int
	AirHeight float64
}

// Profile is a fully resolved jump.
type Profile struct {
	Name       string
	Trajectory trajectory.Trajectory[float64]

	// Ascent and Descent are the rise and fall durations.
	Ascent  float64
	Descent float64

	// FallGravity is the gravity applied past the peak so the fall lasts
	// Descent.
	FallGravity float64

	// CutImpulse is the vertical speed clamped to on early release. It is
	// zero when variable height is disabled.
	CutImpulse float64

	AirJumps   int
	AirImpulse float64
}

// Build resolves s into a Profile. Errors from the horizontal helpers
// are reported as resolver.ErrTime.
func Build(s Spec) (Profile, error) {
	p := Profile{Name: s.Name, AirJumps: s.AirJumps}

	traj, descent, err := s.vertical()
	if err != nil {
		return Profile{}, fmt.Errorf("preset %q: %w", s.Name, err)
	}
	p.Trajectory = traj
	p.Ascent = traj.Time()
	p.Descent = descent

	p.FallGravity = traj.Gravity()
	if descent != traj.Time() {
		p.FallGravity, err = resolver.GravityFromHeightAndTime(traj.Height(), descent)
		if err != nil {
			return Profile{}, fmt.Errorf("preset %q: fall: %w", s.Name, err)
		}
	}

	if s.MinHeight > 0 {
		p.CutImpulse, err = VariableHeightCut(traj, s.MinHeight)
		if err != nil {
			return Profile{}, fmt.Errorf("preset %q: %w", s.Name, err)
		}
	}
	if s.AirJumps > 0 {
		p.AirImpulse = AirJumpImpulse(traj, s.AirHeight)
	}
	return p, nil
}

// vertical returns the trajectory of the rise and the fall duration.
func (s Spec) vertical() (trajectory.Trajectory[float64], float64, error) {
	kinds := make([]param.Kind, 0, len(s.Vertical))
	for k := range s.Vertical {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Less(kinds[j]) })

	switch {
	case len(kinds) > 2 || (len(kinds) == 2 && s.Range != 0):
		return trajectory.Trajectory[float64]{}, 0, ErrOverdetermined
	case len(kinds) == 2:
		a, b := kinds[0], kinds[1]
		traj, err := trajectory.FromPair(a, s.Vertical[a], b, s.Vertical[b])
		return traj, traj.Time(), err
	case len(kinds) == 1 && s.Range != 0:
		k := kinds[0]
		if k == param.Time {
			return trajectory.Trajectory[float64]{}, 0, ErrOverdetermined
		}
		ascent, descent, err := s.horizontal()
		if err != nil {
			return trajectory.Trajectory[float64]{}, 0, resolver.Widen(err)
		}
		traj, err := trajectory.FromPair(k, s.Vertical[k], param.Time, ascent)
		return traj, descent, err
	default:
		return trajectory.Trajectory[float64]{}, 0, ErrUnderdetermined
	}
}

func (s Spec) horizontal() (ascent, descent float64, err error) {
	if s.Ratio == 0 {
		t, err := resolver.TimeFromSpeedAndRange(s.Speed, s.Range)
		return t, t, err
	}
	return resolver.TimeFromSpeedRangeAndRatio(s.Speed, s.Range, s.Ratio)
}

// VariableHeightCut returns the vertical speed a rising jump is clamped to
// when the button is released, so that it peaks at minHeight under the
// trajectory's gravity.
func VariableHeightCut[N constraints.Float](t trajectory.Trajectory[N], minHeight N) (N, error) {
	if minHeight > t.Height() {
		return 0, ErrCutAbovePeak
	}
	return nofailure.ImpulseFromHeightAndGravity(minHeight, t.Gravity()), nil
}

// AirJumpImpulse returns the impulse of a jump triggered in mid-air that
// rises height above the trigger point. A zero height repeats the ground
// jump.
func AirJumpImpulse[N constraints.Float](t trajectory.Trajectory[N], height N) N {
	if height == 0 {
		return t.Impulse()
	}
	return nofailure.ImpulseFromHeightAndGravity(height, t.Gravity())
}
