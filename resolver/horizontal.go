package resolver

import "golang.org/x/exp/constraints"

// TimeFromSpeedAndRange returns the time to cover half of range at the given
// horizontal speed, d/(2·s). Use it as the time to peak of a jump that lands
// range units away.
// It fails with ErrSpeed when the speed is zero.
func TimeFromSpeedAndRange[N constraints.Float](speed, rng N) (N, error) {
	if speed == 0 {
		return 0, ErrSpeed
	}
	return halve(rng) / speed, nil
}

// TimeFromSpeedRangeAndRatio splits the time to cover range at the given
// speed into an ascent share ratio·d/s and a descent share (1−ratio)·d/s.
// ratio is expected in [0, 1] but not checked.
// It fails with ErrSpeed when the speed is zero.
func TimeFromSpeedRangeAndRatio[N constraints.Float](speed, rng, ratio N) (ascent, descent N, err error) {
	if speed == 0 {
		return 0, 0, ErrSpeed
	}
	total := rng / speed
	return total * ratio, total * (1 - ratio), nil
}
