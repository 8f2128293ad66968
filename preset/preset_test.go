package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
	"github.com/roach88/arcadejump/trajectory"
)

func TestBuildFromTwoVerticals(t *testing.T) {
	p, err := Build(Spec{
		Name:     "high",
		Vertical: map[param.Kind]float64{param.Height: 20, param.Time: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "high", p.Name)
	assert.Equal(t, 4.0, p.Trajectory.Impulse())
	assert.Equal(t, -0.4, p.Trajectory.Gravity())
	assert.Equal(t, 10.0, p.Ascent)
	assert.Equal(t, 10.0, p.Descent)
	assert.Equal(t, p.Trajectory.Gravity(), p.FallGravity)
	assert.Zero(t, p.CutImpulse)
	assert.Zero(t, p.AirImpulse)
}

func TestBuildFromRange(t *testing.T) {
	// 20 units at speed 1: ten seconds up, ten down.
	p, err := Build(Spec{
		Vertical: map[param.Kind]float64{param.Height: 50},
		Speed:    1,
		Range:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, p.Ascent)
	assert.Equal(t, 10.0, p.Descent)
	assert.Equal(t, 10.0, p.Trajectory.Impulse())
	assert.Equal(t, -1.0, p.Trajectory.Gravity())
}

func TestBuildAsymmetricFall(t *testing.T) {
	p, err := Build(Spec{
		Vertical: map[param.Kind]float64{param.Height: 50},
		Speed:    1,
		Range:    25,
		Ratio:    0.6,
	})
	require.NoError(t, err)

	assert.InDelta(t, 15.0, p.Ascent, 1e-12)
	assert.InDelta(t, 10.0, p.Descent, 1e-12)
	// G = -2H/T² over the shorter fall.
	assert.InDelta(t, -1.0, p.FallGravity, 1e-12)
	assert.Greater(t, p.Trajectory.Gravity(), p.FallGravity)
}

func TestBuildHorizontalErrorsWidenToTime(t *testing.T) {
	_, err := Build(Spec{
		Name:     "stuck",
		Vertical: map[param.Kind]float64{param.Gravity: -10},
		Speed:    0,
		Range:    20,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrTime)
	assert.Contains(t, err.Error(), `preset "stuck"`)
}

func TestBuildFullAscentHasNoFall(t *testing.T) {
	_, err := Build(Spec{
		Vertical: map[param.Kind]float64{param.Height: 5},
		Speed:    1,
		Range:    10,
		Ratio:    1,
	})
	assert.ErrorIs(t, err, resolver.ErrTime)
}

func TestBuildDeterminedness(t *testing.T) {
	_, err := Build(Spec{Vertical: map[param.Kind]float64{param.Height: 5}})
	assert.ErrorIs(t, err, ErrUnderdetermined)

	_, err = Build(Spec{Vertical: map[param.Kind]float64{
		param.Height: 5, param.Time: 1, param.Gravity: -10,
	}})
	assert.ErrorIs(t, err, ErrOverdetermined)

	_, err = Build(Spec{
		Vertical: map[param.Kind]float64{param.Time: 1},
		Speed:    1,
		Range:    2,
	})
	assert.ErrorIs(t, err, ErrOverdetermined)
}

func TestBuildVariableHeightAndAirJumps(t *testing.T) {
	p, err := Build(Spec{
		Vertical:  map[param.Kind]float64{param.Impulse: 10, param.Gravity: -1},
		MinHeight: 2,
		AirJumps:  1,
		AirHeight: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.CutImpulse)
	assert.Equal(t, 4.0, p.AirImpulse)
	assert.Equal(t, 1, p.AirJumps)
}

func TestVariableHeightCut(t *testing.T) {
	traj, err := trajectory.FromImpulseAndGravity[float32](10, -1)
	require.NoError(t, err)

	v, err := VariableHeightCut(traj, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(2), v)

	v, err = VariableHeightCut(traj, traj.Height())
	require.NoError(t, err)
	assert.Equal(t, traj.Impulse(), v)

	_, err = VariableHeightCut(traj, 60)
	assert.ErrorIs(t, err, ErrCutAbovePeak)
}

func TestAirJumpImpulse(t *testing.T) {
	traj, err := trajectory.FromImpulseAndGravity(10.0, -1.0)
	require.NoError(t, err)

	assert.Equal(t, 10.0, AirJumpImpulse(traj, 0))
	assert.Equal(t, 6.0, AirJumpImpulse(traj, 18))
}
