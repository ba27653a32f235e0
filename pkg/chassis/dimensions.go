package chassis

import (
	"math"

	"github.com/pkg/errors"
)

// Default dimensions, in metres, of the two-wheeled test chassis.
const (
	DefaultWheelBase   float64 = 0.3
	DefaultWheelRadius float64 = 0.05
)

var ErrInvalidConfiguration = errors.New("invalid chassis configuration")

// Dimensions are the fixed physical constants of a differential-drive base.
type Dimensions struct {
	// WheelBase is the distance between the contact points of the two
	// drive wheels.
	WheelBase float64 `yaml:"wheel_base"`
	// WheelRadius converts wheel angular speed to surface speed.
	WheelRadius float64 `yaml:"wheel_radius"`
}

func Default() Dimensions {
	return Dimensions{
		WheelBase:   DefaultWheelBase,
		WheelRadius: DefaultWheelRadius,
	}
}

// Validate rejects dimensions that would later turn into a division by zero
// or NaN: both values must be finite and strictly positive.
func (d Dimensions) Validate() error {
	if !(d.WheelBase > 0) || math.IsInf(d.WheelBase, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "wheel base %v must be > 0", d.WheelBase)
	}
	if !(d.WheelRadius > 0) || math.IsInf(d.WheelRadius, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "wheel radius %v must be > 0", d.WheelRadius)
	}
	return nil
}
