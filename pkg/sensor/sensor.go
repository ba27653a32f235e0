// Package sensor simulates a planar range-bearing scanner that sees point
// landmarks inside a forward-facing cone.
package sensor

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/angle"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
)

var ErrInvalidConfiguration = errors.New("invalid sensor configuration")

// Landmark is a known point feature in the world frame.
type Landmark = r2.Vec

// Detection is a landmark seen from the robot.  Bearing is relative to the
// robot's heading, anticlockwise positive, in (-π, π].
type Detection struct {
	Range   float64
	Bearing float64
}

type Config struct {
	// NoiseStdDev is the standard deviation of the Gaussian noise added to
	// each landmark coordinate before measuring, metres.
	NoiseStdDev float64 `yaml:"noise_stddev"`
	// HalfFOV is half the angular width of the field of view, radians.
	HalfFOV float64 `yaml:"half_fov"`
	// MaxRange is the furthest detectable distance, metres.
	MaxRange float64 `yaml:"max_range"`
}

func DefaultConfig() Config {
	return Config{
		NoiseStdDev: 0.05,
		HalfFOV:     math.Pi / 4,
		MaxRange:    5,
	}
}

func (c Config) Validate() error {
	if !(c.NoiseStdDev >= 0) || math.IsInf(c.NoiseStdDev, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "noise stddev %v must be >= 0", c.NoiseStdDev)
	}
	if !(c.HalfFOV > 0) || c.HalfFOV > math.Pi {
		return errors.Wrapf(ErrInvalidConfiguration, "half field of view %v must be in (0, π]", c.HalfFOV)
	}
	if !(c.MaxRange > 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "max range %v must be > 0", c.MaxRange)
	}
	return nil
}

// Simulator produces noisy detections.  The noise stream is seeded so runs
// are reproducible; a Simulator is not safe for concurrent use.
type Simulator struct {
	config Config
	noise  distuv.Normal
}

func NewSimulator(config Config, seed uint64) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		config: config,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: config.NoiseStdDev,
			Src:   rand.NewPCG(seed, seed),
		},
	}, nil
}

func (s *Simulator) Config() Config {
	return s.config
}

// Simulate measures every landmark from pose and keeps those within the
// field of view and range, both bounds inclusive.  The result keeps the
// order of landmarks.
func (s *Simulator) Simulate(pose kinematics.Pose, landmarks []Landmark) []Detection {
	noisy := make([]Landmark, len(landmarks))
	for i, lm := range landmarks {
		noisy[i] = s.perturb(lm)
	}

	detections := make([]Detection, 0, len(landmarks))
	for _, lm := range noisy {
		d := measure(pose, lm)
		if s.visible(d) {
			detections = append(detections, d)
		}
	}
	return detections
}

// perturb draws x noise then y noise.
func (s *Simulator) perturb(lm Landmark) Landmark {
	dx := s.noise.Rand()
	dy := s.noise.Rand()
	return Landmark{X: lm.X + dx, Y: lm.Y + dy}
}

func (s *Simulator) visible(d Detection) bool {
	return d.Bearing >= -s.config.HalfFOV &&
		d.Bearing <= s.config.HalfFOV &&
		d.Range <= s.config.MaxRange
}

func measure(pose kinematics.Pose, lm Landmark) Detection {
	rel := r2.Sub(lm, pose.Position())
	return Detection{
		Range:   r2.Norm(rel),
		Bearing: angle.Dist(math.Atan2(rel.Y, rel.X), pose.Theta),
	}
}
