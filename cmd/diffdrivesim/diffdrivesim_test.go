package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/config"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sim"
)

func runLoop(t *testing.T, cfg config.Config) *sim.Result {
	t.Helper()
	loop, err := sim.New(cfg, nil)
	require.NoError(t, err)
	res, err := loop.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestSummaryWhenStartingAtTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.InitialPose = kinematics.Pose{X: cfg.Sim.Target.X, Y: cfg.Sim.Target.Y, Theta: 0.5}
	res := runLoop(t, cfg)
	require.Empty(t, res.Frames)

	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()
	assert.Contains(t, out, res.RunID.String())
	assert.Contains(t, out, "0 steps, reached=true")
	assert.Contains(t, out, "odometry "+res.Start.String())
}

func TestSummaryAfterSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Steps = 3
	res := runLoop(t, cfg)
	require.Len(t, res.Frames, 3)

	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "3 steps, reached=false")
	assert.Contains(t, out, "truth    "+res.Frames[2].Truth.String())
}
