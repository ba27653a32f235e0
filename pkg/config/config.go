// Package config loads the simulation configuration from YAML.  Defaults are
// built in; a file only needs to mention what it overrides.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	yaml "gopkg.in/yaml.v2"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/chassis"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/controller"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sensor"
)

var ErrInvalidSimConfig = errors.New("invalid sim configuration")

type Config struct {
	Chassis    chassis.Dimensions `yaml:"chassis"`
	Controller controller.Gains   `yaml:"controller"`
	Sensor     sensor.Config      `yaml:"sensor"`
	Sim        SimConfig          `yaml:"sim"`
}

type SimConfig struct {
	DT    float64 `yaml:"dt"`
	Steps int     `yaml:"steps"`
	Seed  uint64  `yaml:"seed"`

	InitialPose kinematics.Pose `yaml:"initial_pose"`
	Target      r2.Vec          `yaml:"target"`
	// GoalTolerance is how close the odometry estimate must get to Target
	// to end the run early.  Zero disables early stopping.
	GoalTolerance float64 `yaml:"goal_tolerance"`

	// Ground speed scale factors of the simulated wheels.
	SlipLeft  float64 `yaml:"slip_left"`
	SlipRight float64 `yaml:"slip_right"`

	Landmarks []sensor.Landmark `yaml:"landmarks"`
}

func Default() Config {
	return Config{
		Chassis:    chassis.Default(),
		Controller: controller.DefaultGains(),
		Sensor:     sensor.DefaultConfig(),
		Sim: SimConfig{
			DT:            0.1,
			Steps:         200,
			Seed:          1,
			Target:        r2.Vec{X: 2, Y: 1},
			GoalTolerance: 0.05,
			SlipLeft:      1,
			SlipRight:     1,
			Landmarks: []sensor.Landmark{
				{X: 2, Y: 0},
				{X: 3, Y: 2},
				{X: 1, Y: 3},
				{X: -1, Y: 1},
				{X: 4, Y: -1},
			},
		},
	}
}

func (c Config) Validate() error {
	if err := c.Chassis.Validate(); err != nil {
		return err
	}
	if err := c.Controller.Validate(); err != nil {
		return err
	}
	if err := c.Sensor.Validate(); err != nil {
		return err
	}
	s := c.Sim
	switch {
	case !(s.DT > 0):
		return errors.Wrapf(ErrInvalidSimConfig, "dt %v must be > 0", s.DT)
	case s.Steps <= 0:
		return errors.Wrapf(ErrInvalidSimConfig, "steps %v must be > 0", s.Steps)
	case !(s.GoalTolerance >= 0):
		return errors.Wrapf(ErrInvalidSimConfig, "goal_tolerance %v must be >= 0", s.GoalTolerance)
	case !(s.SlipLeft > 0) || !(s.SlipRight > 0):
		return errors.Wrapf(ErrInvalidSimConfig, "slip factors %v, %v must be > 0", s.SlipLeft, s.SlipRight)
	}
	return nil
}

// Parse overlays YAML data on the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	fmt.Printf("CFG: loaded %s\n", path)
	return cfg, nil
}

// Save writes out the config, typically the one actually in use so that a
// run can be reproduced.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "marshalling config")
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
