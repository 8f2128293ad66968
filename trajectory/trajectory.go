// Package trajectory provides an immutable record of the four parameters of
// an arcade jump. A Trajectory is built from any two parameters; the two
// missing ones are derived through the resolver.
package trajectory

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
)

// Trajectory holds the peak height, time to peak, vertical impulse and
// gravity of a jump. The zero value is a jump that never leaves the ground.
type Trajectory[N constraints.Float] struct {
	height  N
	time    N
	impulse N
	gravity N
}

// Height returns the peak height.
func (t Trajectory[N]) Height() N { return t.height }

// Time returns the time needed to reach the peak.
func (t Trajectory[N]) Time() N { return t.time }

// Impulse returns the initial vertical impulse.
func (t Trajectory[N]) Impulse() N { return t.impulse }

// Gravity returns the gravitational acceleration.
func (t Trajectory[N]) Gravity() N { return t.gravity }

// Value returns the parameter of the given kind.
func (t Trajectory[N]) Value(k param.Kind) N {
	switch k {
	case param.Height:
		return t.height
	case param.Time:
		return t.time
	case param.Impulse:
		return t.impulse
	case param.Gravity:
		return t.gravity
	}
	return 0
}

func (t Trajectory[N]) String() string {
	return fmt.Sprintf("H=%v T=%v V=%v G=%v", t.height, t.time, t.impulse, t.gravity)
}

// FromHeightAndTime builds a trajectory from the peak height and the time to
// reach it.
func FromHeightAndTime[N constraints.Float](height, time N) (Trajectory[N], error) {
	impulse, err := resolver.ImpulseFromHeightAndTime(height, time)
	if err != nil {
		return Trajectory[N]{}, err
	}
	gravity, err := resolver.GravityFromHeightAndTime(height, time)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromHeightAndImpulse builds a trajectory from the peak height and the
// initial impulse.
func FromHeightAndImpulse[N constraints.Float](height, impulse N) (Trajectory[N], error) {
	time, err := resolver.TimeFromHeightAndImpulse(height, impulse)
	if err != nil {
		return Trajectory[N]{}, err
	}
	gravity, err := resolver.GravityFromHeightAndImpulse(height, impulse)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromHeightAndGravity builds a trajectory from the peak height and gravity.
func FromHeightAndGravity[N constraints.Float](height, gravity N) (Trajectory[N], error) {
	time, err := resolver.TimeFromHeightAndGravity(height, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	impulse, err := resolver.ImpulseFromHeightAndGravity(height, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromTimeAndImpulse builds a trajectory from the time to peak and the
// initial impulse.
func FromTimeAndImpulse[N constraints.Float](time, impulse N) (Trajectory[N], error) {
	height, err := resolver.HeightFromTimeAndImpulse(time, impulse)
	if err != nil {
		return Trajectory[N]{}, err
	}
	gravity, err := resolver.GravityFromTimeAndImpulse(time, impulse)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromTimeAndGravity builds a trajectory from the time to peak and gravity.
func FromTimeAndGravity[N constraints.Float](time, gravity N) (Trajectory[N], error) {
	height, err := resolver.HeightFromTimeAndGravity(time, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	impulse, err := resolver.ImpulseFromTimeAndGravity(time, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromImpulseAndGravity builds a trajectory from the initial impulse and
// gravity.
func FromImpulseAndGravity[N constraints.Float](impulse, gravity N) (Trajectory[N], error) {
	height, err := resolver.HeightFromImpulseAndGravity(impulse, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	time, err := resolver.TimeFromImpulseAndGravity(impulse, gravity)
	if err != nil {
		return Trajectory[N]{}, err
	}
	return Trajectory[N]{height: height, time: time, impulse: impulse, gravity: gravity}, nil
}

// FromPair builds a trajectory from two tagged parameters given in any
// order. Equal kinds fail with a *param.CombinationError.
func FromPair[N constraints.Float](a param.Kind, av N, b param.Kind, bv N) (Trajectory[N], error) {
	if a == b || !a.Valid() || !b.Valid() {
		return Trajectory[N]{}, &param.CombinationError{First: a, Second: b, Output: a}
	}
	if b < a {
		a, b = b, a
		av, bv = bv, av
	}
	switch {
	case a == param.Height && b == param.Time:
		return FromHeightAndTime(av, bv)
	case a == param.Height && b == param.Impulse:
		return FromHeightAndImpulse(av, bv)
	case a == param.Height && b == param.Gravity:
		return FromHeightAndGravity(av, bv)
	case a == param.Time && b == param.Impulse:
		return FromTimeAndImpulse(av, bv)
	case a == param.Time && b == param.Gravity:
		return FromTimeAndGravity(av, bv)
	default:
		return FromImpulseAndGravity(av, bv)
	}
}

// Consistent reports whether the trajectory satisfies V = 2H/T, G = −V/T and
// H = −V²/(2G) within the relative tolerance eps. Degenerate trajectories
// with a zero time or gravity are never consistent.
func (t Trajectory[N]) Consistent(eps float64) bool {
	h, tm := float64(t.height), float64(t.time)
	v, g := float64(t.impulse), float64(t.gravity)
	if tm == 0 || g == 0 {
		return false
	}
	return near(v, 2*h/tm, eps) &&
		near(g, -v/tm, eps) &&
		near(h, -v*v/(2*g), eps)
}

func near(a, b, eps float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= eps*scale
}
