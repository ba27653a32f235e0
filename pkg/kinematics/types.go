package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pose is a planar position and heading.  Theta is in radians and is not
// wrapped.
type Pose struct {
	X, Y  float64
	Theta float64
}

func (p Pose) Position() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Vec returns the pose as the column vector [x, y, θ].
func (p Pose) Vec() *mat.VecDense {
	return mat.NewVecDense(3, []float64{p.X, p.Y, p.Theta})
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Theta)
}

// Control is a pair of wheel angular speeds in rad/s.
type Control struct {
	Left, Right float64
}

func (c Control) Vec() *mat.VecDense {
	return mat.NewVecDense(2, []float64{c.Left, c.Right})
}

// Twist is the instantaneous velocity of the body expressed in its own
// frame: VX ahead, VY to the left, Omega anticlockwise.
type Twist struct {
	VX, VY float64
	Omega  float64
}

func (t Twist) Vec() *mat.VecDense {
	return mat.NewVecDense(3, []float64{t.VX, t.VY, t.Omega})
}

// PoseRate is the time derivative of a Pose in the world frame.
type PoseRate struct {
	X, Y  float64
	Theta float64
}
