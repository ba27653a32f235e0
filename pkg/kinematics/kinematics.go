// Package kinematics models a two-wheeled differential-drive base: forward
// kinematics from wheel speeds and closed-form integration of the resulting
// body twist.
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
)

// LinearThreshold is the angular rate below which Integrate treats the path
// as straight.
const LinearThreshold = 1e-6

type Model struct {
	dims chassis.Dimensions
}

func New(dims chassis.Dimensions) (*Model, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Model{dims: dims}, nil
}

func (m *Model) Dimensions() chassis.Dimensions {
	return m.dims
}

// Derivative returns the world-frame rate of change of pose under control.
func (m *Model) Derivative(pose Pose, control Control) PoseRate {
	r := m.dims.WheelRadius
	d := m.dims.WheelBase
	c := (r / 2) * math.Cos(pose.Theta)
	s := (r / 2) * math.Sin(pose.Theta)
	kin := mat.NewDense(3, 2, []float64{
		c, c,
		s, s,
		-r / (2 * d), r / (2 * d),
	})

	var rate mat.VecDense
	rate.MulVec(kin, control.Vec())
	return PoseRate{X: rate.AtVec(0), Y: rate.AtVec(1), Theta: rate.AtVec(2)}
}

// BodyTwist maps wheel speeds to the robot-frame twist.  VY is always zero:
// a differential drive cannot slip sideways.
func (m *Model) BodyTwist(control Control) Twist {
	r := m.dims.WheelRadius
	d := m.dims.WheelBase
	h := mat.NewDense(3, 2, []float64{
		r / 2, r / 2,
		0, 0,
		-r / (2 * d), r / (2 * d),
	})

	var vb mat.VecDense
	vb.MulVec(h, control.Vec())
	return Twist{VX: vb.AtVec(0), VY: vb.AtVec(1), Omega: vb.AtVec(2)}
}

// Integrate advances pose by dt under a constant control.  Below
// LinearThreshold the body twist is rotated into the world frame and applied
// directly; above it the arc form of the constant-twist integral is used.
func (m *Model) Integrate(pose Pose, control Control, dt float64) Pose {
	vb := m.BodyTwist(control)

	local := vb.Vec()
	if math.Abs(vb.Omega) >= LinearThreshold {
		local = arcDisplacement(vb)
	}

	var delta mat.VecDense
	delta.MulVec(rotationZ(pose.Theta), local)
	delta.ScaleVec(dt, &delta)

	return Pose{
		X:     pose.X + delta.AtVec(0),
		Y:     pose.Y + delta.AtVec(1),
		Theta: pose.Theta + delta.AtVec(2),
	}
}

// arcDisplacement is the body-frame displacement of a constant twist with
// non-zero angular rate.
func arcDisplacement(vb Twist) *mat.VecDense {
	sin, cos := math.Sincos(vb.Omega)
	return mat.NewVecDense(3, []float64{
		(vb.VX*sin + vb.VY*(cos-1)) / vb.Omega,
		(vb.VY*sin + vb.VX*(1-cos)) / vb.Omega,
		vb.Omega,
	})
}

// rotationZ is the homogeneous planar rotation by theta.
func rotationZ(theta float64) *mat.Dense {
	sin, cos := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	})
}
