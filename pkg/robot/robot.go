// Package robot is a differential-drive robot instance: its physical
// constants, its odometry pose history, a goal-seeking controller and a
// simulated range-bearing scanner.
//
// A Robot is not safe for concurrent use; callers that share one between
// goroutines must serialise access themselves.
package robot

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/angle"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/controller"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sensor"
)

var ErrInsufficientHistory = errors.New("at least two poses are needed")

// DefaultScannerSeed seeds the noise of the scanner every robot starts with.
const DefaultScannerSeed = 1

// Displacement is the change between two consecutive odometry poses.  DTheta
// is the wrapped heading difference.
type Displacement struct {
	DX, DY float64
	DTheta float64
}

type Robot struct {
	model      *kinematics.Model
	controller *controller.Controller
	scanner    *sensor.Simulator

	// Append-only, one entry per Step, starting with the initial pose.
	poses []kinematics.Pose
}

type Option func(*Robot) error

// WithInitialPose starts the pose history at p instead of the origin.
func WithInitialPose(p kinematics.Pose) Option {
	return func(r *Robot) error {
		r.poses[0] = p
		return nil
	}
}

// WithGains replaces the default controller gains.
func WithGains(g controller.Gains) Option {
	return func(r *Robot) error {
		c, err := controller.New(r.model.Dimensions(), g)
		if err != nil {
			return err
		}
		r.controller = c
		return nil
	}
}

// WithScanner replaces the default range-bearing scanner.
func WithScanner(s *sensor.Simulator) Option {
	return func(r *Robot) error {
		r.scanner = s
		return nil
	}
}

func New(dims chassis.Dimensions, opts ...Option) (*Robot, error) {
	model, err := kinematics.New(dims)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.New(dims, controller.DefaultGains())
	if err != nil {
		return nil, err
	}
	scanner, err := sensor.NewSimulator(sensor.DefaultConfig(), DefaultScannerSeed)
	if err != nil {
		return nil, err
	}
	r := &Robot{
		model:      model,
		controller: ctrl,
		scanner:    scanner,
		poses:      make([]kinematics.Pose, 1, 64),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Robot) Dimensions() chassis.Dimensions {
	return r.model.Dimensions()
}

// Derivative is the forward-kinematics query.
func (r *Robot) Derivative(pose kinematics.Pose, control kinematics.Control) kinematics.PoseRate {
	return r.model.Derivative(pose, control)
}

// Integrate advances pose by dt without touching the history.
func (r *Robot) Integrate(pose kinematics.Pose, control kinematics.Control, dt float64) kinematics.Pose {
	return r.model.Integrate(pose, control, dt)
}

// Step integrates from the most recent pose and appends the result.
func (r *Robot) Step(control kinematics.Control, dt float64) kinematics.Pose {
	next := r.model.Integrate(r.Pose(), control, dt)
	r.poses = append(r.poses, next)
	return next
}

// Pose is the most recent entry of the history.
func (r *Robot) Pose() kinematics.Pose {
	return r.poses[len(r.poses)-1]
}

// PoseHistory returns a copy of the history, oldest first.
func (r *Robot) PoseHistory() []kinematics.Pose {
	out := make([]kinematics.Pose, len(r.poses))
	copy(out, r.poses)
	return out
}

// DisplacementSinceLast is the difference between the two most recent poses.
func (r *Robot) DisplacementSinceLast() (Displacement, error) {
	n := len(r.poses)
	if n < 2 {
		return Displacement{}, errors.Wrapf(ErrInsufficientHistory, "history has %d pose", n)
	}
	last, prev := r.poses[n-1], r.poses[n-2]
	return Displacement{
		DX:     last.X - prev.X,
		DY:     last.Y - prev.Y,
		DTheta: angle.Dist(last.Theta, prev.Theta),
	}, nil
}

// ComputeControl returns saturated wheel speeds that drive from current
// towards target.  target must be a 2-vector.
func (r *Robot) ComputeControl(current kinematics.Pose, target mat.Vector) (kinematics.Control, error) {
	return r.controller.ComputeControl(current, target)
}

// Simulate returns the scanner's detections of landmarks from pose.
func (r *Robot) Simulate(pose kinematics.Pose, landmarks []sensor.Landmark) []sensor.Detection {
	return r.scanner.Simulate(pose, landmarks)
}
