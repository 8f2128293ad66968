// Package resolver implements the closed-form identities linking the four
// parameters of an idealised arcade jump: peak height H, time to peak T,
// vertical impulse V and gravity G.
//
// Every function is generic over float32 and float64. The arithmetic of a
// float32 instantiation is carried out in float32. Identities that divide by
// an input return an *Error naming that input when it is zero instead of an
// infinity. Square roots take the magnitude of their argument, so a positive
// gravity magnitude yields the same time and impulse as a negative one; the
// caller is responsible for sign conventions.
//
// The functions are pure and safe for concurrent use.
package resolver

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/roach88/arcadejump/resolver/nofailure"
)

func halve[N constraints.Float](n N) N {
	return n / 2
}

func double[N constraints.Float](n N) N {
	return n + n
}

func pow2[N constraints.Float](n N) N {
	return n * n
}

func sqrtAbs[N constraints.Float](n N) N {
	if n < 0 {
		n = -n
	}
	return N(math.Sqrt(float64(n)))
}

// HeightFromTimeAndImpulse returns H = ½·V·T. It never fails.
func HeightFromTimeAndImpulse[N constraints.Float](time, impulse N) (N, error) {
	return nofailure.HeightFromTimeAndImpulse(time, impulse), nil
}

// HeightFromTimeAndGravity returns H = −½·G·T². It never fails.
func HeightFromTimeAndGravity[N constraints.Float](time, gravity N) (N, error) {
	return nofailure.HeightFromTimeAndGravity(time, gravity), nil
}

// HeightFromImpulseAndGravity returns H = −V²/(2·G).
// It fails with ErrGravity when gravity is zero.
func HeightFromImpulseAndGravity[N constraints.Float](impulse, gravity N) (N, error) {
	if gravity == 0 {
		return 0, ErrGravity
	}
	return -halve(pow2(impulse)) / gravity, nil
}

// TimeFromHeightAndImpulse returns T = 2·H/V.
// It fails with ErrImpulse when the impulse is zero.
func TimeFromHeightAndImpulse[N constraints.Float](height, impulse N) (N, error) {
	if impulse == 0 {
		return 0, ErrImpulse
	}
	return double(height) / impulse, nil
}

// TimeFromHeightAndGravity returns T = √|2·H/G|.
// It fails with ErrGravity when gravity is zero.
func TimeFromHeightAndGravity[N constraints.Float](height, gravity N) (N, error) {
	if gravity == 0 {
		return 0, ErrGravity
	}
	return sqrtAbs(double(height) / gravity), nil
}

// TimeFromImpulseAndGravity returns T = −V/G.
// It fails with ErrGravity when gravity is zero.
func TimeFromImpulseAndGravity[N constraints.Float](impulse, gravity N) (N, error) {
	if gravity == 0 {
		return 0, ErrGravity
	}
	return -impulse / gravity, nil
}

// ImpulseFromHeightAndTime returns V = 2·H/T.
// It fails with ErrTime when the time is zero.
func ImpulseFromHeightAndTime[N constraints.Float](height, time N) (N, error) {
	if time == 0 {
		return 0, ErrTime
	}
	return double(height) / time, nil
}

// ImpulseFromHeightAndGravity returns V = √|2·H·G|. It never fails.
func ImpulseFromHeightAndGravity[N constraints.Float](height, gravity N) (N, error) {
	return nofailure.ImpulseFromHeightAndGravity(height, gravity), nil
}

// ImpulseFromTimeAndGravity returns V = −G·T. It never fails.
func ImpulseFromTimeAndGravity[N constraints.Float](time, gravity N) (N, error) {
	return nofailure.ImpulseFromTimeAndGravity(time, gravity), nil
}

// GravityFromHeightAndTime returns G = −2·H/T².
// It fails with ErrTime when the time is zero.
func GravityFromHeightAndTime[N constraints.Float](height, time N) (N, error) {
	if time == 0 {
		return 0, ErrTime
	}
	return -double(height) / pow2(time), nil
}

// GravityFromHeightAndImpulse returns G = −V²/(2·H).
// It fails with ErrHeight when the height is zero.
func GravityFromHeightAndImpulse[N constraints.Float](height, impulse N) (N, error) {
	if height == 0 {
		return 0, ErrHeight
	}
	return -halve(pow2(impulse)) / height, nil
}

// GravityFromTimeAndImpulse returns G = −V/T.
// It fails with ErrTime when the time is zero.
func GravityFromTimeAndImpulse[N constraints.Float](time, impulse N) (N, error) {
	if time == 0 {
		return 0, ErrTime
	}
	return -impulse / time, nil
}
