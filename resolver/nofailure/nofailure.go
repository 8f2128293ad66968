// Package nofailure holds the four jump identities that involve no division
// by an input and therefore cannot fail. They return the scalar directly.
package nofailure

import (
	"math"

	"golang.org/x/exp/constraints"
)

// HeightFromTimeAndImpulse returns H = ½·V·T.
func HeightFromTimeAndImpulse[N constraints.Float](time, impulse N) N {
	return impulse * time / 2
}

// HeightFromTimeAndGravity returns H = −½·G·T².
func HeightFromTimeAndGravity[N constraints.Float](time, gravity N) N {
	return -(gravity * (time * time)) / 2
}

// ImpulseFromHeightAndGravity returns V = √|2·H·G|. The magnitude is taken
// so that sign mistakes in the inputs never produce NaN.
func ImpulseFromHeightAndGravity[N constraints.Float](height, gravity N) N {
	v := (height + height) * gravity
	if v < 0 {
		v = -v
	}
	return N(math.Sqrt(float64(v)))
}

// ImpulseFromTimeAndGravity returns V = −G·T.
func ImpulseFromTimeAndGravity[N constraints.Float](time, gravity N) N {
	return -gravity * time
}
