package resolver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverFloat32(t *testing.T) {
	impulse, err := ImpulseFromHeightAndTime[float32](20, 10)
	require.NoError(t, err)
	gravity, err := GravityFromHeightAndTime[float32](20, 10)
	require.NoError(t, err)
	time, err := TimeFromHeightAndGravity[float32](20, gravity)
	require.NoError(t, err)

	assert.Equal(t, float32(4.0), impulse)
	assert.Equal(t, float32(-0.4), gravity)
	assert.Equal(t, float32(10.0), time)
}

func TestResolverIdentities(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b float64) (float64, error)
		a, b float64
		want float64
	}{
		{"V(H,T)", ImpulseFromHeightAndTime[float64], 20, 10, 4},
		{"G(H,T)", GravityFromHeightAndTime[float64], 20, 10, -0.4},
		{"T(H,V)", TimeFromHeightAndImpulse[float64], 20, 4, 10},
		{"G(H,V)", GravityFromHeightAndImpulse[float64], 10, 4, -0.8},
		{"T(H,G)", TimeFromHeightAndGravity[float64], 50, -1, 10},
		{"V(H,G)", ImpulseFromHeightAndGravity[float64], 50, -1, 10},
		{"H(T,V)", HeightFromTimeAndImpulse[float64], 10, 4, 20},
		{"G(T,V)", GravityFromTimeAndImpulse[float64], 10, 4, -0.4},
		{"H(T,G)", HeightFromTimeAndGravity[float64], 10, -1, 50},
		{"V(T,G)", ImpulseFromTimeAndGravity[float64], 10, -1, 10},
		{"H(V,G)", HeightFromImpulseAndGravity[float64], 10, -1, 50},
		{"T(V,G)", TimeFromImpulseAndGravity[float64], 10, -1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestResolverDegeneracies(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b float64) (float64, error)
		a, b float64
		want error
	}{
		{"V(H,0)", ImpulseFromHeightAndTime[float64], 20, 0, ErrTime},
		{"G(H,0)", GravityFromHeightAndTime[float64], 20, 0, ErrTime},
		{"T(H,0)", TimeFromHeightAndImpulse[float64], 20, 0, ErrImpulse},
		{"G(0,V)", GravityFromHeightAndImpulse[float64], 0, 4, ErrHeight},
		{"T(H,G=0)", TimeFromHeightAndGravity[float64], 20, 0, ErrGravity},
		{"G(T=0,V)", GravityFromTimeAndImpulse[float64], 0, 4, ErrTime},
		{"H(V,G=0)", HeightFromImpulseAndGravity[float64], 4, 0, ErrGravity},
		{"T(V,G=0)", TimeFromImpulseAndGravity[float64], 4, 0, ErrGravity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, got)
		})
	}
}

func TestImpulseFromHeightAndTimeFailsForAnyHeight(t *testing.T) {
	for _, h := range []float64{-5, 0, 1, 1e9, math.Inf(1)} {
		_, err := ImpulseFromHeightAndTime(h, 0)
		assert.ErrorIs(t, err, ErrTime, "h=%v", h)
	}
}

func TestNegativeZeroIsDegenerate(t *testing.T) {
	_, err := TimeFromHeightAndGravity(10.0, math.Copysign(0, -1))
	assert.ErrorIs(t, err, ErrGravity)
}

func TestSquareRootsIgnoreSign(t *testing.T) {
	for _, h := range []float64{-50, -0.5, 0.5, 50} {
		for _, g := range []float64{-9.81, -1, 1, 9.81} {
			time, err := TimeFromHeightAndGravity(h, g)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(time))
			assert.InDelta(t, math.Sqrt(2*math.Abs(h/g)), time, 1e-12)
			assert.GreaterOrEqual(t, time, 0.0)

			impulse, err := ImpulseFromHeightAndGravity(h, g)
			require.NoError(t, err)
			assert.InDelta(t, math.Sqrt(2*math.Abs(h*g)), impulse, 1e-12)
			assert.GreaterOrEqual(t, impulse, 0.0)
		}
	}
}

func TestRoundTripHeightTime(t *testing.T) {
	heights := []float64{0.25, 1, 3.5, 20, 400}
	times := []float64{0.1, 0.35, 1, 10, 42}
	for _, h := range heights {
		for _, tm := range times {
			v, err := ImpulseFromHeightAndTime(h, tm)
			require.NoError(t, err)
			g, err := GravityFromHeightAndTime(h, tm)
			require.NoError(t, err)

			h2, err := HeightFromImpulseAndGravity(v, g)
			require.NoError(t, err)
			t2, err := TimeFromImpulseAndGravity(v, g)
			require.NoError(t, err)

			assert.InEpsilon(t, h, h2, 1e-12)
			assert.InEpsilon(t, tm, t2, 1e-12)
		}
	}
}

func TestRoundTripHeightTimeFloat32(t *testing.T) {
	for _, h := range []float32{0.5, 2, 20, 64} {
		for _, tm := range []float32{0.25, 1, 10} {
			v, err := ImpulseFromHeightAndTime(h, tm)
			require.NoError(t, err)
			g, err := GravityFromHeightAndTime(h, tm)
			require.NoError(t, err)

			h2, err := HeightFromImpulseAndGravity(v, g)
			require.NoError(t, err)
			t2, err := TimeFromImpulseAndGravity(v, g)
			require.NoError(t, err)

			assert.InEpsilon(t, h, h2, 1e-5)
			assert.InEpsilon(t, tm, t2, 1e-5)
		}
	}
}

func TestScenarios(t *testing.T) {
	t.Run("B", func(t *testing.T) {
		g, err := GravityFromHeightAndImpulse[float32](10, 4)
		require.NoError(t, err)
		assert.Equal(t, float32(-0.8), g)
	})
	t.Run("C", func(t *testing.T) {
		g, err := GravityFromHeightAndImpulse[float32](20, 8)
		require.NoError(t, err)
		assert.Equal(t, float32(-1.6), g)
	})
	t.Run("D", func(t *testing.T) {
		v, err := ImpulseFromHeightAndTime(20.0, 10.0)
		require.NoError(t, err)
		g, err := GravityFromHeightAndTime(20.0, 10.0)
		require.NoError(t, err)
		assert.Equal(t, 4.0, v)
		assert.Equal(t, -0.4, g)
	})
	t.Run("E", func(t *testing.T) {
		tm, err := TimeFromHeightAndGravity[float32](50, -1)
		require.NoError(t, err)
		v, err := ImpulseFromHeightAndGravity[float32](50, -1)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, tm, 1e-6)
		assert.InDelta(t, 10.0, v, 1e-6)
	})
	t.Run("F", func(t *testing.T) {
		h, err := HeightFromImpulseAndGravity[float32](10, -1)
		require.NoError(t, err)
		tm, err := TimeFromImpulseAndGravity[float32](10, -1)
		require.NoError(t, err)
		assert.Equal(t, float32(50), h)
		assert.Equal(t, float32(10), tm)
	})
}
