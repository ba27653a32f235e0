package hardware

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/encoder"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/robot"
)

// Sim is a simulated drive base.  It keeps the ground-truth pose of the
// robot and counts encoder ticks from the commanded wheel speeds.  A slip
// factor other than 1 makes the ground travel differ from what the encoders
// report.
type Sim struct {
	lock sync.Mutex

	truth  *robot.Robot
	slip   encoder.PerWheel[float64]
	speeds encoder.PerWheel[float64]
	// Fractional encoder counts since start.
	counts encoder.PerWheel[float64]

	rawControlActive bool
}

type SimOption func(*Sim) error

// WithSlip scales the ground speed of each wheel.
func WithSlip(left, right float64) SimOption {
	return func(s *Sim) error {
		if !(left > 0) || !(right > 0) {
			return errors.Errorf("wheel slip factors must be > 0, got %v, %v", left, right)
		}
		s.slip = encoder.PerWheel[float64]{left, right}
		return nil
	}
}

func NewSim(dims chassis.Dimensions, initial kinematics.Pose, opts ...SimOption) (*Sim, error) {
	truth, err := robot.New(dims, robot.WithInitialPose(initial))
	if err != nil {
		return nil, err
	}
	s := &Sim{
		truth: truth,
		slip:  encoder.PerWheel[float64]{1, 1},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sim) StartRawControlMode() RawControl {
	s.StopMotorControl()
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rawControlActive = true
	return simRawControl{s}
}

func (s *Sim) StopMotorControl() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rawControlActive = false
	s.speeds = encoder.PerWheel[float64]{}
}

type simRawControl struct {
	s *Sim
}

func (c simRawControl) SetWheelSpeeds(left, right float64) {
	c.s.lock.Lock()
	defer c.s.lock.Unlock()
	if !c.s.rawControlActive {
		return
	}
	c.s.speeds = encoder.PerWheel[float64]{left, right}
}

// Tick advances the simulated base by dt seconds at the current wheel
// speeds.
func (s *Sim) Tick(dt float64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	ground := kinematics.Control{
		Left:  s.speeds[encoder.Left] * s.slip[encoder.Left],
		Right: s.speeds[encoder.Right] * s.slip[encoder.Right],
	}
	s.truth.Step(ground, dt)

	for w, speed := range s.speeds {
		s.counts[w] += speed * dt / (2 * math.Pi) * encoder.CountsPerRotation
	}
}

func (s *Sim) RawDistancesTraveled() (raw encoder.PerWheel[int16], err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for w, c := range s.counts {
		// Truncating to 16 bits gives the same wraparound as the real counters.
		raw[w] = int16(int64(math.Round(c)))
	}
	return raw, nil
}

func (s *Sim) CurrentPose() kinematics.Pose {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.truth.Pose()
}

// Path is the ground-truth pose history.
func (s *Sim) Path() []kinematics.Pose {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.truth.PoseHistory()
}

var _ Simulated = (*Sim)(nil)
