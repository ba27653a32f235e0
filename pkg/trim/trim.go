// Package trim scales commands down so that they respect a limit while
// keeping their direction, the same way the motor mixers scale all wheel
// outputs by one common factor.
package trim

import (
	"math"

	"github.com/pkg/errors"
)

var ErrSaturationLimit = errors.New("saturation limit must be > 0")

func checkLimit(limit float64) error {
	if !(limit > 0) {
		return errors.Wrapf(ErrSaturationLimit, "limit %v", limit)
	}
	return nil
}

// Scalar returns x scaled down to magnitude limit if |x| exceeds it, and x
// unchanged otherwise.
func Scalar(x, limit float64) (float64, error) {
	if err := checkLimit(limit); err != nil {
		return 0, err
	}
	if math.Abs(x)/limit > 1 {
		return math.Copysign(limit, x), nil
	}
	return x, nil
}

// Vector returns a copy of v in which every component has been divided by
// the largest component-to-limit ratio, if that ratio exceeds 1.  The
// component(s) with the largest ratio land exactly on ±limit.  A vector
// already inside the limit is returned bit-for-bit unchanged.
func Vector(v []float64, limit float64) ([]float64, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	out := make([]float64, len(v))
	copy(out, v)

	maxRatio := 0.0
	for _, x := range v {
		maxRatio = math.Max(maxRatio, math.Abs(x)/limit)
	}
	if maxRatio > 1 {
		for i, x := range v {
			if math.Abs(x)/limit == maxRatio {
				out[i] = math.Copysign(limit, x)
			} else {
				out[i] = x / maxRatio
			}
		}
	}
	return out, nil
}

// Pair is Vector for the common two-element case of left/right wheel
// commands.
func Pair(a, b, limit float64) (float64, float64, error) {
	v, err := Vector([]float64{a, b}, limit)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}
