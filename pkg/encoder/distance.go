// Package encoder turns cumulative wheel encoder counts into rotations and
// wheel angular speeds for odometry.
package encoder

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
)

const (
	Left  = 0
	Right = 1
)

// CountsPerRotation is the encoder resolution reported by the motor board.
const CountsPerRotation = 256

type Number interface {
	constraints.Integer | constraints.Float
}

// PerWheel holds one value for each drive wheel, indexed by Left and Right.
type PerWheel[T Number] [2]T

type distanceProvider interface {
	RawDistancesTraveled() (PerWheel[int16], error)
}

// DistanceTracker accumulates raw encoder counts.  The raw counters are
// 16-bit and wrap; deltas between polls are taken in 16-bit arithmetic so
// wrapping is harmless as long as a wheel turns less than 128 rotations
// between polls.
type DistanceTracker struct {
	source distanceProvider

	doneFirstPoll bool
	lastRawValues PerWheel[int16]

	accumulator PerWheel[int64]

	// Rotations at the previous call to Control.
	lastControlRotations PerWheel[float64]
}

func NewDistanceTracker(source distanceProvider) *DistanceTracker {
	return &DistanceTracker{
		source: source,
	}
}

// Poll reads the counters.  The first poll only establishes a baseline.
func (d *DistanceTracker) Poll() error {
	raw, err := d.source.RawDistancesTraveled()
	if err != nil {
		return err
	}

	if d.doneFirstPoll {
		for w, newD := range raw {
			oldD := d.lastRawValues[w]
			delta := newD - oldD
			d.accumulator[w] += int64(delta)
		}
	}

	d.lastRawValues = raw
	d.doneFirstPoll = true
	return nil
}

func (d *DistanceTracker) AccumulatedRotations() (rotations PerWheel[float64]) {
	for w, v := range d.accumulator {
		rotations[w] = float64(v) / CountsPerRotation
	}
	return
}

// Control returns the average wheel angular speeds, rad/s, over the dt
// seconds since the previous call.  A non-positive dt gives a zero control.
func (d *DistanceTracker) Control(dt float64) kinematics.Control {
	rotations := d.AccumulatedRotations()
	var delta PerWheel[float64]
	for w := range rotations {
		delta[w] = rotations[w] - d.lastControlRotations[w]
	}
	d.lastControlRotations = rotations

	if !(dt > 0) {
		return kinematics.Control{}
	}
	return kinematics.Control{
		Left:  2 * math.Pi * delta[Left] / dt,
		Right: 2 * math.Pi * delta[Right] / dt,
	}
}

func (d *DistanceTracker) Zero() {
	d.accumulator = PerWheel[int64]{}
	d.lastControlRotations = PerWheel[float64]{}
}
