package param

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKindAliases(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"H", Height}, {"Height", Height},
		{"T", Time}, {"Time", Time},
		{"I", Impulse}, {"V", Impulse}, {"Impulse", Impulse},
		{"G", Gravity}, {"Gravity", Gravity},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "h", "height", "v", "Velocity", "Gravity "} {
		_, ok := ParseKind(in)
		assert.False(t, ok, "ParseKind(%q) should fail", in)
	}
}

func TestKindOrder(t *testing.T) {
	assert.True(t, Height.Less(Time))
	assert.True(t, Time.Less(Impulse))
	assert.True(t, Impulse.Less(Gravity))
	assert.False(t, Gravity.Less(Height))
	assert.Equal(t, []Kind{Height, Time, Impulse, Gravity}, Kinds())
}

func TestCanonical(t *testing.T) {
	a, b := Canonical(Gravity, Height)
	assert.Equal(t, Height, a)
	assert.Equal(t, Gravity, b)

	a, b = Canonical(Time, Impulse)
	assert.Equal(t, Time, a)
	assert.Equal(t, Impulse, b)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Impulse", Impulse.String())
	assert.Equal(t, "I", Impulse.Short())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.False(t, Kind(4).Valid())
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Kind{"k": Gravity})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"Gravity"}`, string(data))

	var decoded struct {
		K Kind `json:"k"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"k":"T"}`), &decoded))
	assert.Equal(t, Time, decoded.K)

	err = json.Unmarshal([]byte(`{"k":"Velocity"}`), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Velocity")
}
