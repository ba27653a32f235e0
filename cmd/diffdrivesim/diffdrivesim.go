package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/config"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/render"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/sim"
)

var CLI struct {
	Run    RunCmd    `cmd:"" help:"Drive the simulated robot to its target."`
	Config ConfigCmd `cmd:"" help:"Write the default configuration as YAML."`
}

type Context struct {
	ctx context.Context
}

type RunCmd struct {
	Config string `help:"YAML config file; built-in defaults if omitted." type:"path"`
	PNG    string `name:"png" help:"Draw the trajectory to this PNG file." type:"path"`
	Seed   int64  `help:"Override the sensor noise seed (negative keeps the config's)." default:"-1"`
	Steps  int    `help:"Override the step budget (0 keeps the config's)." default:"0"`
	Quiet  bool   `help:"Only print the summary." short:"q"`
}

func (r *RunCmd) Run(c *Context) error {
	cfg := config.Default()
	if r.Config != "" {
		var err error
		cfg, err = config.Load(r.Config)
		if err != nil {
			return err
		}
	}
	if r.Seed >= 0 {
		cfg.Sim.Seed = uint64(r.Seed)
	}
	if r.Steps > 0 {
		cfg.Sim.Steps = r.Steps
	}

	var logger *log.Logger
	if !r.Quiet {
		logger = log.New(os.Stdout, "", log.Lmicroseconds)
	}
	loop, err := sim.New(cfg, logger)
	if err != nil {
		return err
	}
	res, err := loop.Run(c.ctx)
	if res != nil {
		printSummary(os.Stdout, res)
	}
	if err != nil {
		return err
	}

	if r.PNG != "" {
		if err := render.SavePNG(r.PNG, res, render.DefaultOptions()); err != nil {
			return err
		}
		fmt.Println("Wrote", r.PNG)
	}
	return nil
}

func printSummary(w io.Writer, res *sim.Result) {
	fmt.Fprintf(w, "Run %v: %d steps, reached=%v\n", res.RunID, len(res.Frames), res.Reached)
	odom, truth := res.Start, res.Start
	if n := len(res.Frames); n > 0 {
		odom, truth = res.Frames[n-1].Odometry, res.Frames[n-1].Truth
	}
	fmt.Fprintf(w, "  odometry %v\n  truth    %v\n", odom, truth)
}

type ConfigCmd struct {
	Out string `help:"Output file." default:"diffdrivesim.yaml" type:"path"`
}

func (cc *ConfigCmd) Run(c *Context) error {
	if err := config.Save(cc.Out, config.Default()); err != nil {
		return err
	}
	fmt.Println("Wrote", cc.Out)
	return nil
}

func main() {
	fmt.Print("---- diffdrivesim ----\n\n")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	// Cancelled on SIGINT/SIGTERM so a long run stops cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		log.Println("Signal: ", s)
		cancel()
	}()

	k := kong.Parse(&CLI,
		kong.Name("diffdrivesim"),
		kong.Description("Differential-drive odometry and range-bearing sensing simulator."),
	)
	err := k.Run(&Context{ctx: ctx})
	k.FatalIfErrorf(err)
}
