// Package controller turns a target point into saturated wheel speeds for a
// differential-drive base.
package controller

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/angle"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/trim"
)

var ErrShapeMismatch = errors.New("target must be a 2-vector")

type Gains struct {
	DistanceLimit    float64 `yaml:"distance_limit"`
	DistanceGain     float64 `yaml:"distance_gain"`
	OrientationLimit float64 `yaml:"orientation_limit"`
	OrientationGain  float64 `yaml:"orientation_gain"`
	// WheelLimit caps the larger of the two wheel speeds, rad/s.
	WheelLimit float64 `yaml:"wheel_limit"`
}

func DefaultGains() Gains {
	return Gains{
		DistanceLimit:    1,
		DistanceGain:     5,
		OrientationLimit: math.Pi,
		OrientationGain:  20,
		WheelLimit:       10,
	}
}

// Validate checks that every saturation limit is usable.
func (g Gains) Validate() error {
	for _, l := range []struct {
		name  string
		value float64
	}{
		{"distance_limit", g.DistanceLimit},
		{"orientation_limit", g.OrientationLimit},
		{"wheel_limit", g.WheelLimit},
	} {
		if !(l.value > 0) {
			return errors.Wrapf(trim.ErrSaturationLimit, "%s = %v", l.name, l.value)
		}
	}
	return nil
}

type Controller struct {
	dims  chassis.Dimensions
	gains Gains
}

func New(dims chassis.Dimensions, gains Gains) (*Controller, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if err := gains.Validate(); err != nil {
		return nil, err
	}
	return &Controller{dims: dims, gains: gains}, nil
}

func (c *Controller) Gains() Gains {
	return c.gains
}

// ComputeControl steers from current towards target.
//
// The linear command is driven by the squared distance to the target, not
// the distance, so the robot slows down sharply inside a unit radius.
func (c *Controller) ComputeControl(current kinematics.Pose, target mat.Vector) (kinematics.Control, error) {
	if target == nil || target.Len() != 2 {
		n := 0
		if target != nil {
			n = target.Len()
		}
		return kinematics.Control{}, errors.Wrapf(ErrShapeMismatch, "got %d elements", n)
	}

	var d mat.VecDense
	d.SubVec(target, mat.NewVecDense(2, []float64{current.X, current.Y}))

	distanceError := mat.Dot(&d, &d)
	orientationError := angle.Dist(math.Atan2(d.AtVec(1), d.AtVec(0)), current.Theta)

	v, err := trim.Scalar(distanceError, c.gains.DistanceLimit)
	if err != nil {
		return kinematics.Control{}, err
	}
	v *= c.gains.DistanceGain

	w, err := trim.Scalar(orientationError, c.gains.OrientationLimit)
	if err != nil {
		return kinematics.Control{}, err
	}
	w *= c.gains.OrientationGain

	halfBase := c.dims.WheelBase / 2
	left := (v - w*halfBase) / c.dims.WheelRadius
	right := (v + w*halfBase) / c.dims.WheelRadius

	left, right, err = trim.Pair(left, right, c.gains.WheelLimit)
	if err != nil {
		return kinematics.Control{}, err
	}
	return kinematics.Control{Left: left, Right: right}, nil
}
