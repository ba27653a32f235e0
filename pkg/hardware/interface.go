// Package hardware is the drive-base boundary: something that accepts wheel
// speed commands and reports encoder counts.
package hardware

import (
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/encoder"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
)

type Interface interface {
	// Enter raw wheel speed control (previous mode will be stopped if needed).
	StartRawControlMode() RawControl
	StopMotorControl()

	// Cumulative 16-bit encoder counts, CountsPerRotation per wheel turn.
	RawDistancesTraveled() (encoder.PerWheel[int16], error)

	// CurrentPose is the best available ground truth for the base.
	CurrentPose() kinematics.Pose
}

type RawControl interface {
	// SetWheelSpeeds sets wheel angular speeds in rad/s.
	SetWheelSpeeds(left, right float64)
}

// Simulated hardware advances in explicit time steps.
type Simulated interface {
	Interface
	Tick(dt float64)
}
