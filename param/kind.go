// Package param defines the four parameters of an arcade jump and the
// dispatcher that picks the closed-form identity deriving one parameter from
// two others.
//
// Kinds carry a fixed total order (Height < Time < Impulse < Gravity). The
// order is only used to canonicalise an unordered input pair so that the
// dispatch table holds 12 entries instead of 24.
package param

import "fmt"

// Kind identifies one of the four jump parameters.
type Kind uint8

const (
	// Height is the peak height reached by the jump.
	Height Kind = iota

	// Time is the time needed to reach the peak.
	Time

	// Impulse is the initial vertical velocity imparted at launch.
	Impulse

	// Gravity is the constant vertical acceleration, negative when downward.
	Gravity
)

// NumKinds is the number of parameter kinds.
const NumKinds = 4

var kindNames = [NumKinds]string{"Height", "Time", "Impulse", "Gravity"}

var kindShort = [NumKinds]string{"H", "T", "I", "G"}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	return []Kind{Height, Time, Impulse, Gravity}
}

// Valid reports whether k is one of the four kinds.
func (k Kind) Valid() bool {
	return k < NumKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Short returns the one-letter alias of k.
func (k Kind) Short() string {
	if !k.Valid() {
		return "?"
	}
	return kindShort[k]
}

// Less reports whether k sorts before other in the canonical order.
func (k Kind) Less(other Kind) bool {
	return k < other
}

// ParseKind accepts the long and short spellings H|Height, T|Time,
// I|Impulse and G|Gravity, plus V for the impulse as velocity. Matching is
// case-sensitive.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "H", "Height":
		return Height, true
	case "T", "Time":
		return Time, true
	case "I", "V", "Impulse":
		return Impulse, true
	case "G", "Gravity":
		return Gravity, true
	}
	return 0, false
}

// MarshalText encodes the long spelling.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid parameter kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText accepts any spelling understood by ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown parameter kind %q", text)
	}
	*k = parsed
	return nil
}

// Canonical returns a and b sorted by the kind order.
func Canonical(a, b Kind) (Kind, Kind) {
	if b < a {
		return b, a
	}
	return a, b
}
