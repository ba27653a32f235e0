// Package sim runs the closed driving loop: the controller steers from the
// odometry estimate, the simulated base moves, the encoders feed odometry
// and the scanner looks at the landmarks from the true pose.
package sim

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/config"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/encoder"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/hardware"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/robot"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sensor"
)

// Frame is the state recorded after one loop iteration.
type Frame struct {
	Step int
	Time float64

	Truth    kinematics.Pose
	Odometry kinematics.Pose

	// Command is what the controller asked for; Measured is what the
	// encoders reported back over the step.
	Command      kinematics.Control
	Measured     kinematics.Control
	Displacement robot.Displacement

	Detections []sensor.Detection
}

type Result struct {
	RunID     uuid.UUID
	Target    r2.Vec
	Landmarks []sensor.Landmark
	Start     kinematics.Pose
	Frames    []Frame
	// Reached is set when the odometry estimate got within the goal
	// tolerance of the target.
	Reached bool
}

type Loop struct {
	cfg config.SimConfig

	odometry *robot.Robot
	hw       hardware.Simulated
	tracker  *encoder.DistanceTracker

	log *log.Logger
}

// New builds a loop driving the simulated base described by cfg.  logger may
// be nil.
func New(cfg config.Config, logger *log.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hw, err := hardware.NewSim(cfg.Chassis, cfg.Sim.InitialPose,
		hardware.WithSlip(cfg.Sim.SlipLeft, cfg.Sim.SlipRight))
	if err != nil {
		return nil, err
	}
	return NewWithHardware(cfg, hw, logger)
}

// NewWithHardware is New with a caller supplied base.
func NewWithHardware(cfg config.Config, hw hardware.Simulated, logger *log.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scanner, err := sensor.NewSimulator(cfg.Sensor, cfg.Sim.Seed)
	if err != nil {
		return nil, err
	}
	odometry, err := robot.New(cfg.Chassis,
		robot.WithInitialPose(cfg.Sim.InitialPose),
		robot.WithGains(cfg.Controller),
		robot.WithScanner(scanner),
	)
	if err != nil {
		return nil, err
	}
	return &Loop{
		cfg:      cfg.Sim,
		odometry: odometry,
		hw:       hw,
		tracker:  encoder.NewDistanceTracker(hw),
		log:      logger,
	}, nil
}

// Odometry is the robot whose pose history is built from the encoders.
func (l *Loop) Odometry() *robot.Robot {
	return l.odometry
}

func (l *Loop) logf(format string, args ...interface{}) {
	if l.log != nil {
		l.log.Printf(format, args...)
	}
}

// Run drives towards the target until it is reached, the step budget runs
// out or ctx is done.  On cancellation the frames recorded so far are
// returned along with ctx.Err().
func (l *Loop) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:     uuid.New(),
		Target:    l.cfg.Target,
		Landmarks: l.cfg.Landmarks,
		Start:     l.odometry.Pose(),
	}
	l.logf("SIM: run %v starting at %v, target (%.3f, %.3f)", res.RunID, res.Start, l.cfg.Target.X, l.cfg.Target.Y)

	target := mat.NewVecDense(2, []float64{l.cfg.Target.X, l.cfg.Target.Y})
	raw := l.hw.StartRawControlMode()
	defer l.hw.StopMotorControl()

	if err := l.tracker.Poll(); err != nil {
		return res, errors.Wrap(err, "reading encoders")
	}

	for step := 1; step <= l.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			l.logf("SIM: run %v cancelled after %d steps", res.RunID, len(res.Frames))
			return res, err
		}
		if l.atTarget() {
			res.Reached = true
			break
		}

		command, err := l.odometry.ComputeControl(l.odometry.Pose(), target)
		if err != nil {
			return res, err
		}
		raw.SetWheelSpeeds(command.Left, command.Right)
		l.hw.Tick(l.cfg.DT)

		if err := l.tracker.Poll(); err != nil {
			return res, errors.Wrap(err, "reading encoders")
		}
		measured := l.tracker.Control(l.cfg.DT)
		odom := l.odometry.Step(measured, l.cfg.DT)
		disp, err := l.odometry.DisplacementSinceLast()
		if err != nil {
			return res, err
		}

		truth := l.hw.CurrentPose()
		detections := l.odometry.Simulate(truth, l.cfg.Landmarks)

		res.Frames = append(res.Frames, Frame{
			Step:         step,
			Time:         float64(step) * l.cfg.DT,
			Truth:        truth,
			Odometry:     odom,
			Command:      command,
			Measured:     measured,
			Displacement: disp,
			Detections:   detections,
		})
		l.logf("SIM: step=%d odom=%v truth=%v cmd=(%.2f, %.2f) seen=%d",
			step, odom, truth, command.Left, command.Right, len(detections))
	}
	if !res.Reached && l.atTarget() {
		res.Reached = true
	}

	l.logf("SIM: run %v finished after %d steps, reached=%v", res.RunID, len(res.Frames), res.Reached)
	return res, nil
}

func (l *Loop) atTarget() bool {
	if l.cfg.GoalTolerance <= 0 {
		return false
	}
	return r2.Norm(r2.Sub(l.cfg.Target, l.odometry.Pose().Position())) <= l.cfg.GoalTolerance
}
