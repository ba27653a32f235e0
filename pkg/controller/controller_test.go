package controller

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/trim"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(chassis.Dimensions{WheelBase: 0.3, WheelRadius: 0.05}, DefaultGains())
	require.NoError(t, err)
	return c
}

func target(x, y float64) *mat.VecDense {
	return mat.NewVecDense(2, []float64{x, y})
}

func TestTargetStraightAhead(t *testing.T) {
	c := newController(t)
	u, err := c.ComputeControl(kinematics.Pose{}, target(1, 0))
	require.NoError(t, err)

	assert.Equal(t, u.Left, u.Right, "no turn expected")
	assert.Greater(t, u.Left, 0.0)
	// v = 5 gives 100 rad/s per wheel, trimmed to the wheel limit.
	assert.Equal(t, 10.0, u.Left)
}

func TestSquaredDistanceLaw(t *testing.T) {
	// A loose wheel limit exposes the raw law.
	g := DefaultGains()
	g.WheelLimit = 1e9
	c, err := New(chassis.Dimensions{WheelBase: 0.3, WheelRadius: 0.05}, g)
	require.NoError(t, err)

	// 0.5 m away gives v = 0.25·5, not 0.5·5.
	u, err := c.ComputeControl(kinematics.Pose{}, target(0.5, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0.25*5/0.05, u.Left, 1e-12)
	assert.InDelta(t, 0.25*5/0.05, u.Right, 1e-12)

	// Beyond a unit squared distance the linear command saturates.
	u, err = c.ComputeControl(kinematics.Pose{}, target(3, 0))
	require.NoError(t, err)
	assert.InDelta(t, 5/0.05, u.Left, 1e-12)
}

func TestTurnTowardsTarget(t *testing.T) {
	c := newController(t)

	// Target to the left: right wheel faster.
	u, err := c.ComputeControl(kinematics.Pose{}, target(0, 1))
	require.NoError(t, err)
	assert.Greater(t, u.Right, u.Left)

	// Target to the right: left wheel faster.
	u, err = c.ComputeControl(kinematics.Pose{}, target(0, -1))
	require.NoError(t, err)
	assert.Greater(t, u.Left, u.Right)

	// Heading already wrapped several turns still picks the short way.
	u, err = c.ComputeControl(kinematics.Pose{Theta: 4 * math.Pi}, target(0, 1))
	require.NoError(t, err)
	assert.Greater(t, u.Right, u.Left)
}

func TestWheelSpeedsAlwaysSaturated(t *testing.T) {
	c := newController(t)
	for _, tc := range []struct {
		pose kinematics.Pose
		x, y float64
	}{
		{kinematics.Pose{}, 10, 10},
		{kinematics.Pose{Theta: 2}, -3, 0.1},
		{kinematics.Pose{X: 1, Y: 1, Theta: -1}, 1.01, 1},
		{kinematics.Pose{X: 5, Y: -5}, -5, 5},
	} {
		u, err := c.ComputeControl(tc.pose, target(tc.x, tc.y))
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Max(math.Abs(u.Left), math.Abs(u.Right)), 10.0)
	}
}

func TestAtTarget(t *testing.T) {
	c := newController(t)
	u, err := c.ComputeControl(kinematics.Pose{X: 2, Y: 3, Theta: 0}, target(2, 3))
	require.NoError(t, err)
	assert.Equal(t, kinematics.Control{}, u)
}

func TestShapeMismatch(t *testing.T) {
	c := newController(t)
	for _, v := range []mat.Vector{
		nil,
		mat.NewVecDense(1, []float64{1}),
		mat.NewVecDense(3, []float64{1, 2, 3}),
	} {
		_, err := c.ComputeControl(kinematics.Pose{}, v)
		assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(chassis.Dimensions{WheelBase: -1, WheelRadius: 0.05}, DefaultGains())
	assert.True(t, errors.Is(err, chassis.ErrInvalidConfiguration))

	for _, mutate := range []func(*Gains){
		func(g *Gains) { g.DistanceLimit = 0 },
		func(g *Gains) { g.OrientationLimit = -math.Pi },
		func(g *Gains) { g.WheelLimit = math.NaN() },
	} {
		g := DefaultGains()
		mutate(&g)
		_, err := New(chassis.Default(), g)
		assert.True(t, errors.Is(err, trim.ErrSaturationLimit), "got %v", err)
	}
}
