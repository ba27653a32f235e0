package angle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	expectWrapped(t, 0, 0)
	expectWrapped(t, math.Pi, math.Pi)
	expectWrapped(t, -math.Pi, math.Pi)
	expectWrapped(t, 2*math.Pi, 0)
	expectWrapped(t, math.Pi/2, math.Pi/2)
	expectWrapped(t, -math.Pi/2, -math.Pi/2)
	expectWrapped(t, 3*math.Pi/2, -math.Pi/2)
	expectWrapped(t, -3*math.Pi/2, math.Pi/2)
	expectWrapped(t, 4*math.Pi+0.25, 0.25)
}

func expectWrapped(t *testing.T, in, expected float64) {
	t.Helper()
	actual := FromFloat(in).Float()
	assert.InDelta(t, expected, actual, 1e-12, "FromFloat(%v)", in)
	assert.True(t, actual > -math.Pi && actual <= math.Pi, "FromFloat(%v) = %v out of range", in, actual)
}

func TestDistSignConvention(t *testing.T) {
	// Rotating anticlockwise from b reaches a: positive.
	assert.InDelta(t, math.Pi/2, Dist(math.Pi/2, 0), 1e-15)
	assert.InDelta(t, -math.Pi/2, Dist(0, math.Pi/2), 1e-15)

	// Shortest way round, across the ±π seam.
	assert.InDelta(t, 0.2, Dist(-math.Pi+0.1, math.Pi-0.1), 1e-12)
	assert.InDelta(t, -0.2, Dist(math.Pi-0.1, -math.Pi+0.1), 1e-12)

	// Inputs many turns out are wrapped before subtracting.
	assert.InDelta(t, 0.5, Dist(20*math.Pi+0.5, -40*math.Pi), 1e-9)

	// Exactly opposite headings resolve to +π in both orders.
	assert.Equal(t, math.Pi, Dist(math.Pi, 0))
	assert.Equal(t, math.Pi, Dist(0, math.Pi))
}

func TestDistRangeAndPeriodicity(t *testing.T) {
	for _, a := range []float64{-100, -7.5, -math.Pi, -1, 0, 0.3, 1, math.Pi, 2 * math.Pi, 9.9, 1234.5} {
		for _, b := range []float64{-50, -math.Pi, -0.5, 0, 0.5, math.Pi, 42} {
			d := Dist(a, b)
			assert.True(t, d > -math.Pi && d <= math.Pi, "Dist(%v, %v) = %v out of range", a, b, d)
			// Compared on the circle so that π and a rounded -π count as equal.
			assert.InDelta(t, 0, Dist(Dist(a+2*math.Pi, b), d), 1e-9, "Dist(%v+2π, %v)", a, b)
			assert.InDelta(t, 0, Dist(Dist(a, b-2*math.Pi), d), 1e-9, "Dist(%v, %v-2π)", a, b)
		}
	}
}

func TestPlusMinusPiSub(t *testing.T) {
	a := FromFloat(3 * math.Pi / 4)
	b := FromFloat(-math.Pi / 2)
	assert.InDelta(t, -3*math.Pi/4, a.Sub(b).Float(), 1e-12)
	assert.InDelta(t, 3*math.Pi/4, b.Sub(a).Float(), 1e-12)
	assert.Equal(t, 0.0, a.Sub(a).Float())
}

func TestNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(Dist(math.Inf(1), 0)))
	assert.True(t, math.IsNaN(Dist(math.NaN(), 0)))
}
