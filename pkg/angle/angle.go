// Package angle holds the wrapped-angle arithmetic used for headings and
// bearings.  All angles are in radians.
package angle

import "math"

// PlusMinusPi is an angle in radians, stored as a value in range (-π, π].
// All operations clamp their output into range.
type PlusMinusPi struct {
	float64
}

func (a PlusMinusPi) Sub(b PlusMinusPi) PlusMinusPi {
	return FromFloat(a.float64 - b.float64)
}

// Float returns the angle in radians, range (-π, π].
func (a PlusMinusPi) Float() float64 {
	return a.float64
}

// FromFloat converts a float of any magnitude to a PlusMinusPi by calculating
// f mod 2π and shifting into range.  Non-finite input gives NaN.
func FromFloat(f float64) PlusMinusPi {
	d := math.Mod(f, 2*math.Pi)
	if d <= -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return PlusMinusPi{d}
}

// Dist returns the signed shortest rotation that takes heading b to heading
// a, in (-π, π].  Positive means a is anticlockwise of b.  The ±π tie
// resolves to +π.
func Dist(a, b float64) float64 {
	return FromFloat(a).Sub(FromFloat(b)).Float()
}
