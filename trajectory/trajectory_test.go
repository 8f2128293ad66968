package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
)

func TestFromHeightAndTime(t *testing.T) {
	traj, err := FromHeightAndTime[float32](20, 10)
	require.NoError(t, err)

	assert.Equal(t, float32(20), traj.Height())
	assert.Equal(t, float32(10), traj.Time())
	assert.Equal(t, float32(4), traj.Impulse())
	assert.Equal(t, float32(-0.4), traj.Gravity())
}

func TestFromImpulseAndGravity(t *testing.T) {
	traj, err := FromImpulseAndGravity[float32](10, -1)
	require.NoError(t, err)
	assert.Equal(t, float32(50), traj.Height())
	assert.Equal(t, float32(10), traj.Time())
}

func TestFromHeightAndGravity(t *testing.T) {
	traj, err := FromHeightAndGravity(50.0, -1.0)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, traj.Time(), 1e-12)
	assert.InDelta(t, 10.0, traj.Impulse(), 1e-12)
}

// Every derivation path must land on the same jump.
func TestAllPairsAreConsistent(t *testing.T) {
	ref, err := FromHeightAndTime(3.5, 0.42)
	require.NoError(t, err)

	builders := map[string]func() (Trajectory[float64], error){
		"HT": func() (Trajectory[float64], error) { return FromHeightAndTime(ref.Height(), ref.Time()) },
		"HV": func() (Trajectory[float64], error) { return FromHeightAndImpulse(ref.Height(), ref.Impulse()) },
		"HG": func() (Trajectory[float64], error) { return FromHeightAndGravity(ref.Height(), ref.Gravity()) },
		"TV": func() (Trajectory[float64], error) { return FromTimeAndImpulse(ref.Time(), ref.Impulse()) },
		"TG": func() (Trajectory[float64], error) { return FromTimeAndGravity(ref.Time(), ref.Gravity()) },
		"VG": func() (Trajectory[float64], error) { return FromImpulseAndGravity(ref.Impulse(), ref.Gravity()) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			traj, err := build()
			require.NoError(t, err)
			assert.True(t, traj.Consistent(1e-9), traj.String())
			for _, k := range param.Kinds() {
				assert.InEpsilon(t, ref.Value(k), traj.Value(k), 1e-9, k.String())
			}
		})
	}
}

func TestConsistentFloat32(t *testing.T) {
	traj, err := FromTimeAndGravity[float32](0.35, -30)
	require.NoError(t, err)
	assert.True(t, traj.Consistent(1e-5))
}

func TestConstructorErrors(t *testing.T) {
	_, err := FromHeightAndTime(20.0, 0.0)
	assert.ErrorIs(t, err, resolver.ErrTime)

	_, err = FromHeightAndImpulse(20.0, 0.0)
	assert.ErrorIs(t, err, resolver.ErrImpulse)

	_, err = FromHeightAndImpulse(0.0, 4.0)
	assert.ErrorIs(t, err, resolver.ErrHeight)

	_, err = FromHeightAndGravity(20.0, 0.0)
	assert.ErrorIs(t, err, resolver.ErrGravity)

	_, err = FromTimeAndImpulse(0.0, 4.0)
	assert.ErrorIs(t, err, resolver.ErrTime)

	_, err = FromImpulseAndGravity(4.0, 0.0)
	assert.ErrorIs(t, err, resolver.ErrGravity)
}

func TestFromTimeAndGravityNeverFails(t *testing.T) {
	traj, err := FromTimeAndGravity(0.0, 0.0)
	require.NoError(t, err)
	assert.False(t, traj.Consistent(1e-9))
}

func TestFromPair(t *testing.T) {
	traj, err := FromPair(param.Time, 10.0, param.Height, 20.0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, traj.Impulse())
	assert.Equal(t, -0.4, traj.Gravity())

	traj, err = FromPair(param.Gravity, -1.0, param.Impulse, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, traj.Height())
	assert.Equal(t, 10.0, traj.Time())
}

func TestFromPairSameKind(t *testing.T) {
	_, err := FromPair(param.Height, 1.0, param.Height, 2.0)
	assert.ErrorIs(t, err, param.ErrInvalidCombination)
}

func TestString(t *testing.T) {
	traj, err := FromHeightAndTime(20.0, 10.0)
	require.NoError(t, err)
	assert.Equal(t, "H=20 T=10 V=4 G=-0.4", traj.String())
}
