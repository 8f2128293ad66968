package resolver

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/param"
)

// Apply evaluates identity id on its inputs, given in the canonical order
// reported by id.Inputs. It lets callers holding a dispatched identity avoid
// a switch of their own.
func Apply[N constraints.Float](id param.Identity, first, second N) (N, error) {
	switch id {
	case param.ImpulseFromHeightAndTime:
		return ImpulseFromHeightAndTime(first, second)
	case param.GravityFromHeightAndTime:
		return GravityFromHeightAndTime(first, second)
	case param.TimeFromHeightAndImpulse:
		return TimeFromHeightAndImpulse(first, second)
	case param.GravityFromHeightAndImpulse:
		return GravityFromHeightAndImpulse(first, second)
	case param.TimeFromHeightAndGravity:
		return TimeFromHeightAndGravity(first, second)
	case param.ImpulseFromHeightAndGravity:
		return ImpulseFromHeightAndGravity(first, second)
	case param.HeightFromTimeAndImpulse:
		return HeightFromTimeAndImpulse(first, second)
	case param.GravityFromTimeAndImpulse:
		return GravityFromTimeAndImpulse(first, second)
	case param.HeightFromTimeAndGravity:
		return HeightFromTimeAndGravity(first, second)
	case param.ImpulseFromTimeAndGravity:
		return ImpulseFromTimeAndGravity(first, second)
	case param.HeightFromImpulseAndGravity:
		return HeightFromImpulseAndGravity(first, second)
	case param.TimeFromImpulseAndGravity:
		return TimeFromImpulseAndGravity(first, second)
	}
	return 0, fmt.Errorf("%w: %s", param.ErrInvalidCombination, id)
}

// Solve derives the output kind from two tagged inputs given in any order.
// Invalid triples fail with a *param.CombinationError.
func Solve[N constraints.Float](a param.Kind, av N, b param.Kind, bv N, output param.Kind) (N, error) {
	id, err := param.Select(a, b, output)
	if err != nil {
		return 0, err
	}
	if b < a {
		av, bv = bv, av
	}
	return Apply(id, av, bv)
}
