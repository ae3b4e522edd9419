package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"lifetorus/src/batch"
	"lifetorus/src/config"
	"lifetorus/src/engine"
	"lifetorus/src/universe"
	"lifetorus/src/view"
)

//flagOptions are the command line values, zero values keep the configuration file (or default) value
type flagOptions struct {
	configFile  string
	width       uint32
	height      uint32
	interval    time.Duration
	maxSteps    int
	interactive bool
	randomData  bool
	density     float64
	template    string
	batch       int
	seed        int64
}

func main() {
	cfg := initOptions()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Batch > 0 {
		runBatch(ctx, cfg)
		return
	}

	e, err := engine.New(cfg.EngineOptions(), nil)
	if err != nil {
		log.Fatalln(err)
	}
	defer e.Close()

	if cfg.Random {
		rng := rand.New(rand.NewSource(seedOf(cfg)))
		err = e.Settle(universe.RandomPositions(rng, cfg.Width, cfg.Height, cfg.Density)...)
	} else {
		err = e.SettleTemplate(cfg.Template)
	}
	if err != nil {
		log.Fatalln(err)
	}

	if cfg.Interactive {
		v := view.NewViewTerminal(cfg.Density)
		e.RegisterViewer(v)
		v.Start()
		return
	}

	fmt.Printf("\"The Life\" game simulation on the torus started...\n")
	c := view.NewConsoleOut(os.Stdout, true)
	e.RegisterViewer(c)
	c.Start()
	e.Run()
	select {
	case <-c.Done():
	case <-ctx.Done():
		st := e.Status()
		fmt.Printf("\nInterrupted, iteration is: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
	}
}

//runBatch simulates cfg.Batch random universes, one goroutine per universe
func runBatch(ctx context.Context, cfg config.Config) {
	seed := seedOf(cfg)
	jobs := make([]batch.Job, cfg.Batch)
	for i := range jobs {
		jobs[i] = batch.Job{
			Name:        fmt.Sprintf("universe-%d", i+1),
			Width:       cfg.Width,
			Height:      cfg.Height,
			Density:     cfg.Density,
			Seed:        seed + int64(i),
			Generations: cfg.MaxSteps,
		}
		if !cfg.Random {
			jobs[i].Template = cfg.Template
		}
	}

	start := time.Now()
	results, err := batch.Run(ctx, jobs, runtime.NumCPU())
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("Simulated %v universes %vx%v in %v\n", len(results), cfg.Width, cfg.Height, time.Since(start).Round(time.Millisecond))
	for _, r := range results {
		outcome := aurora.Cyan("running")
		switch {
		case r.Extinct:
			outcome = aurora.Red("extinct")
		case r.Stable:
			outcome = aurora.Green("stable")
		}
		fmt.Printf("  %-14s generations: %6d  live cells: %6d  %v\n", r.Name, r.Generations, r.Population, outcome)
	}
}

func seedOf(cfg config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func initOptions() config.Config {
	fo := &flagOptions{}
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&fo.configFile, "c", "config", "JSON configuration file, the flags override its values")
	flaggy.UInt32(&fo.width, "x", "width", "Width of a simulation field")
	flaggy.UInt32(&fo.height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&fo.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&fo.maxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Bool(&fo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&fo.randomData, "r", "random", "Settle with random data")
	flaggy.Float64(&fo.density, "d", "density", "Share of live cells for random data, from 0 to 1")
	flaggy.String(&fo.template, "t", "template", "Template to settle [blinker|block|beehive|glider|testSample1]")
	flaggy.Int(&fo.batch, "b", "batch", "Simulate this many independent random universes and print the summary")
	flaggy.Int64(&fo.seed, "", "seed", "Random seed, 0 means the current time")

	flaggy.Parse()

	cfg := config.Default()
	if fo.configFile != "" {
		var err error
		if cfg, err = config.Load(fo.configFile); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	}
	fo.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return cfg
}

//apply overrides the configuration with the flags which were set
func (fo *flagOptions) apply(cfg *config.Config) {
	if fo.width != 0 {
		cfg.Width = fo.width
	}
	if fo.height != 0 {
		cfg.Height = fo.height
	}
	if fo.interval != 0 {
		cfg.Interval = fo.interval
	}
	if fo.maxSteps != 0 {
		cfg.MaxSteps = fo.maxSteps
	}
	if fo.density != 0 {
		cfg.Density = fo.density
	}
	if fo.template != "" {
		cfg.Template = fo.template
	}
	if fo.batch != 0 {
		cfg.Batch = fo.batch
	}
	if fo.seed != 0 {
		cfg.Seed = fo.seed
	}
	cfg.Interactive = cfg.Interactive || fo.interactive
	cfg.Random = cfg.Random || fo.randomData
}
