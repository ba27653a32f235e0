package trim

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	for _, tc := range []struct {
		x, limit, expected float64
	}{
		{0, 1, 0},
		{0.5, 1, 0.5},
		{1, 1, 1},
		{-1, 1, -1},
		{2, 1, 1},
		{-7, 1, -1},
		{1.2345, math.Pi, 1.2345},
		{-4, math.Pi, -math.Pi},
		{100, 10, 10},
	} {
		got, err := Scalar(tc.x, tc.limit)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "Scalar(%v, %v)", tc.x, tc.limit)
	}
}

func TestVectorWithinLimitUnchanged(t *testing.T) {
	in := []float64{0.1, -9.999999, 3.3333333333333335, 10}
	out, err := Vector(in, 10)
	require.NoError(t, err)
	for i := range in {
		assert.Equal(t, math.Float64bits(in[i]), math.Float64bits(out[i]), "component %d changed", i)
	}

	// The input is not aliased.
	out[0] = 42
	assert.Equal(t, 0.1, in[0])
}

func TestVectorExceedingLimit(t *testing.T) {
	for _, tc := range []struct {
		in    []float64
		limit float64
	}{
		{[]float64{20, 10}, 10},
		{[]float64{-30, 15}, 10},
		{[]float64{3, -7, 11}, math.Pi},
		{[]float64{12.5, 12.5}, 10},
		{[]float64{1e9, -1e-9}, 1},
	} {
		out, err := Vector(tc.in, tc.limit)
		require.NoError(t, err)
		maxRatio := 0.0
		for i := range out {
			maxRatio = math.Max(maxRatio, math.Abs(out[i])/tc.limit)
			// Direction is preserved: same sign and same proportions.
			assert.Equal(t, math.Signbit(tc.in[i]), math.Signbit(out[i]))
			assert.InEpsilon(t, tc.in[i]/tc.in[0], out[i]/out[0], 1e-12)
		}
		assert.Equal(t, 1.0, maxRatio, "input %v", tc.in)
	}
}

func TestPair(t *testing.T) {
	l, r, err := Pair(-40, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, -10.0, l)
	assert.Equal(t, 5.0, r)
}

func TestBadLimit(t *testing.T) {
	for _, limit := range []float64{0, -1, math.NaN()} {
		_, err := Scalar(1, limit)
		assert.True(t, errors.Is(err, ErrSaturationLimit), "Scalar limit %v: %v", limit, err)
		_, err = Vector([]float64{1, 2}, limit)
		assert.True(t, errors.Is(err, ErrSaturationLimit), "Vector limit %v: %v", limit, err)
		_, _, err = Pair(1, 2, limit)
		assert.True(t, errors.Is(err, ErrSaturationLimit), "Pair limit %v: %v", limit, err)
	}
}
