package param

import (
	"errors"
	"fmt"
)

// Identity names one of the twelve closed-form equations linking the jump
// parameters. Its String form is the name of the resolver function that
// implements it.
type Identity uint8

// The zero Identity is invalid. Inputs of each identity are listed in
// canonical order.
const (
	ImpulseFromHeightAndTime Identity = iota + 1
	GravityFromHeightAndTime
	TimeFromHeightAndImpulse
	GravityFromHeightAndImpulse
	TimeFromHeightAndGravity
	ImpulseFromHeightAndGravity
	HeightFromTimeAndImpulse
	GravityFromTimeAndImpulse
	HeightFromTimeAndGravity
	ImpulseFromTimeAndGravity
	HeightFromImpulseAndGravity
	TimeFromImpulseAndGravity
)

type identityInfo struct {
	name     string
	first    Kind
	second   Kind
	output   Kind
	fallible bool
	// degenerate is the input whose zero value leaves the identity undefined.
	degenerate Kind
}

var identities = [...]identityInfo{
	ImpulseFromHeightAndTime:    {"ImpulseFromHeightAndTime", Height, Time, Impulse, true, Time},
	GravityFromHeightAndTime:    {"GravityFromHeightAndTime", Height, Time, Gravity, true, Time},
	TimeFromHeightAndImpulse:    {"TimeFromHeightAndImpulse", Height, Impulse, Time, true, Impulse},
	GravityFromHeightAndImpulse: {"GravityFromHeightAndImpulse", Height, Impulse, Gravity, true, Height},
	TimeFromHeightAndGravity:    {"TimeFromHeightAndGravity", Height, Gravity, Time, true, Gravity},
	ImpulseFromHeightAndGravity: {"ImpulseFromHeightAndGravity", Height, Gravity, Impulse, false, 0},
	HeightFromTimeAndImpulse:    {"HeightFromTimeAndImpulse", Time, Impulse, Height, false, 0},
	GravityFromTimeAndImpulse:   {"GravityFromTimeAndImpulse", Time, Impulse, Gravity, true, Time},
	HeightFromTimeAndGravity:    {"HeightFromTimeAndGravity", Time, Gravity, Height, false, 0},
	ImpulseFromTimeAndGravity:   {"ImpulseFromTimeAndGravity", Time, Gravity, Impulse, false, 0},
	HeightFromImpulseAndGravity: {"HeightFromImpulseAndGravity", Impulse, Gravity, Height, true, Gravity},
	TimeFromImpulseAndGravity:   {"TimeFromImpulseAndGravity", Impulse, Gravity, Time, true, Gravity},
}

// Identities returns the twelve identities in table order.
func Identities() []Identity {
	ids := make([]Identity, 0, len(identities)-1)
	for id := ImpulseFromHeightAndTime; id <= TimeFromImpulseAndGravity; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether id names one of the twelve identities.
func (id Identity) Valid() bool {
	return id >= ImpulseFromHeightAndTime && id <= TimeFromImpulseAndGravity
}

func (id Identity) String() string {
	if !id.Valid() {
		return fmt.Sprintf("Identity(%d)", uint8(id))
	}
	return identities[id].name
}

// MarshalText encodes the identity by name.
func (id Identity) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid identity %d", uint8(id))
	}
	return []byte(identities[id].name), nil
}

func (id Identity) info() identityInfo {
	if !id.Valid() {
		return identityInfo{}
	}
	return identities[id]
}

// Inputs returns the two input kinds in canonical order.
func (id Identity) Inputs() (Kind, Kind) {
	info := id.info()
	return info.first, info.second
}

// Output returns the kind produced by the identity.
func (id Identity) Output() Kind {
	return id.info().output
}

// Fallible reports whether the identity divides by one of its inputs and
// can therefore fail.
func (id Identity) Fallible() bool {
	return id.info().fallible
}

// Degenerate returns the input kind whose zero value makes the identity
// undefined. ok is false for infallible identities.
func (id Identity) Degenerate() (kind Kind, ok bool) {
	info := id.info()
	return info.degenerate, info.fallible
}

// ErrInvalidCombination is matched by every CombinationError.
var ErrInvalidCombination = errors.New("invalid parameter combination")

// CombinationError reports a triple of kinds no identity can serve.
type CombinationError struct {
	First  Kind
	Second Kind
	Output Kind
}

func (e *CombinationError) Error() string {
	return fmt.Sprintf("invalid parameter combination %s, %s => %s", e.First, e.Second, e.Output)
}

func (e *CombinationError) Unwrap() error {
	return ErrInvalidCombination
}

// dispatch is indexed by [first][second][output] with first < second.
var dispatch = func() (t [NumKinds][NumKinds][NumKinds]Identity) {
	for _, id := range Identities() {
		info := identities[id]
		t[info.first][info.second][info.output] = id
	}
	return t
}()

// Select returns the identity computing output from the inputs a and b, in
// any order. It fails with a *CombinationError when two of the three kinds
// are equal or a kind is out of range.
func Select(a, b, output Kind) (Identity, error) {
	if !a.Valid() || !b.Valid() || !output.Valid() || a == b || a == output || b == output {
		return 0, &CombinationError{First: a, Second: b, Output: output}
	}
	first, second := Canonical(a, b)
	return dispatch[first][second][output], nil
}
