package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires the planner and blocks until the loop stops. It returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("energy-planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	interval := fs.Duration("interval", 0, "wait between ticks (overrides config)")
	ticks := fs.Int("ticks", 0, "stop after this many ticks, 0 runs until interrupted (overrides config)")
	seed := fs.Uint64("seed", 0, "seed for condition sampling (overrides config)")
	airspacePath := fs.String("airspace", "", "GeoJSON file with waypoint positions and no-fly zones (overrides config)")
	httpAddr := fs.String("http", "", "address for the status/metrics HTTP server, empty disables it (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = *interval
		case "ticks":
			cfg.MaxTicks = *ticks
		case "seed":
			cfg.Seed = *seed
		case "airspace":
			cfg.AirspacePath = *airspacePath
		case "http":
			cfg.HTTPAddr = *httpAddr
		}
	})

	log := NewLogger(stderr, LogConfigFromEnv(cfg.Log))
	ctx := context.Background()
	fatal := func(msg string, err error) int {
		log.Error(ctx, msg, Err(err))
		fmt.Fprintf(stderr, "fatal: %s: %v\n", msg, err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		return fatal("invalid configuration", err)
	}

	graph, err := NewGraph(cfg.Waypoints)
	if err != nil {
		return fatal("failed to build waypoint graph", err)
	}
	log.Info(ctx, "waypoint graph built",
		Int("nodes", len(graph.Nodes())),
		Int("edges", graph.Len()))

	var airspace *Airspace
	if cfg.AirspacePath != "" {
		airspace, err = LoadAirspace(cfg.AirspacePath)
		if err != nil {
			return fatal("failed to load airspace", err)
		}
		restricted := graph.Restrict(airspace)
		log.Info(ctx, "airspace loaded",
			String("path", cfg.AirspacePath),
			Int("positions", len(airspace.Positions)),
			Int("no_fly_zones", len(airspace.NoFlyZones)),
			Int("restricted_edges", restricted))
	}

	collector, err := NewPlannerCollector(prometheus.NewRegistry())
	if err != nil {
		return fatal("failed to initialise metrics collector", err)
	}

	latest := &LatestReport{}
	opts := []Option{
		WithSampler(NewUniformSampler(cfg.Ranges, cfg.Seed)),
		WithReporter(MultiReporter{NewTextReporter(stdout), latest}),
		WithLogger(log),
		WithMetrics(collector),
	}
	if airspace != nil {
		opts = append(opts, WithPositions(airspace.Positions))
	}

	sim, err := NewSimulation(graph, SimulationConfig{
		Start:    cfg.Start,
		End:      cfg.End,
		Interval: cfg.Interval,
		MaxTicks: cfg.MaxTicks,
		Initial:  cfg.InitialConditions,
	}, opts...)
	if err != nil {
		return fatal("failed to initialise simulation", err)
	}

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = NewStatusServer(latest, collector, log).Serve(cfg.HTTPAddr)
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sim.Run(runCtx); err != nil {
		return fatal("simulation failed", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return 0
}
