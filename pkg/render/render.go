// Package render draws a finished simulation run: the true and odometry
// paths, the landmarks and the target.
package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sim"
)

type Options struct {
	Width, Height int
	// Margin around the drawn world, pixels.
	Margin float64
}

func DefaultOptions() Options {
	return Options{Width: 512, Height: 512, Margin: 24}
}

// view maps world metres to image pixels with y pointing up.
type view struct {
	min    r2.Vec
	scale  float64
	height float64
	margin float64
}

func (v view) px(p r2.Vec) (float64, float64) {
	return v.margin + (p.X-v.min.X)*v.scale, v.height - v.margin - (p.Y-v.min.Y)*v.scale
}

func fit(points []r2.Vec, opts Options) view {
	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range points {
		lo = r2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = r2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if !(span > 0) {
		span = 1
	}
	usable := math.Min(float64(opts.Width), float64(opts.Height)) - 2*opts.Margin
	return view{min: lo, scale: usable / span, height: float64(opts.Height), margin: opts.Margin}
}

func Trajectory(res *sim.Result, opts Options) image.Image {
	return draw(res, opts).Image()
}

func SavePNG(path string, res *sim.Result, opts Options) error {
	if err := draw(res, opts).SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

func draw(res *sim.Result, opts Options) *gg.Context {
	truth := []kinematics.Pose{res.Start}
	odom := []kinematics.Pose{res.Start}
	for _, f := range res.Frames {
		truth = append(truth, f.Truth)
		odom = append(odom, f.Odometry)
	}

	points := []r2.Vec{res.Target}
	points = append(points, res.Landmarks...)
	for i := range truth {
		points = append(points, truth[i].Position(), odom[i].Position())
	}
	v := fit(points, opts)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Landmarks.
	dc.SetRGB(0.2, 0.2, 0.2)
	for _, lm := range res.Landmarks {
		x, y := v.px(lm)
		dc.DrawRectangle(x-3, y-3, 6, 6)
	}
	dc.Fill()

	// Target.
	dc.SetRGB(0.9, 0.1, 0.1)
	x, y := v.px(res.Target)
	dc.DrawCircle(x, y, 6)
	dc.Stroke()

	dc.SetLineWidth(2)
	drawPath(dc, v, truth)
	dc.SetRGB(0, 0.5, 0)
	dc.Stroke()

	dc.SetLineWidth(1)
	drawPath(dc, v, odom)
	dc.SetRGB(0.1, 0.3, 0.9)
	dc.Stroke()

	if len(truth) > 0 {
		end := truth[len(truth)-1]
		drawHeading(dc, v, end)
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawString(res.RunID.String(), 4, float64(opts.Height)-4)
	return dc
}

func drawPath(dc *gg.Context, v view, path []kinematics.Pose) {
	for i, p := range path {
		x, y := v.px(p.Position())
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
}

func drawHeading(dc *gg.Context, v view, p kinematics.Pose) {
	x, y := v.px(p.Position())
	dc.Push()
	dc.Translate(x, y)
	// Image y points down so the heading is mirrored.
	dc.Rotate(-p.Theta)
	dc.SetRGB(0, 0.5, 0)
	dc.DrawRegularPolygon(3, 0, 0, 8, 0)
	dc.Fill()
	dc.Pop()
}
