package main

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// State of the simulation loop
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SimulationConfig fixes the route and the pace of the loop
type SimulationConfig struct {
	Start    string
	End      string
	Interval time.Duration
	MaxTicks int        // 0 runs until the context is cancelled
	Initial  Conditions // conditions the baseline is priced with
}

// Simulation repeatedly samples conditions, reweights the graph and solves
// the optimized path, comparing it with a baseline fixed at construction.
// It is single-threaded: Step and Run must not be called concurrently.
type Simulation struct {
	graph *Graph
	cfg   SimulationConfig

	sampler   Sampler
	clock     Clock
	reporter  Reporter
	logger    Logger
	metrics   *PlannerCollector
	positions map[string]orb.Point

	baseline Path
	state    State
	tick     int
}

// Option customizes a Simulation
type Option func(*Simulation)

func WithSampler(s Sampler) Option { return func(sim *Simulation) { sim.sampler = s } }

func WithClock(c Clock) Option { return func(sim *Simulation) { sim.clock = c } }

func WithReporter(r Reporter) Option { return func(sim *Simulation) { sim.reporter = r } }

func WithLogger(l Logger) Option { return func(sim *Simulation) { sim.logger = l } }

func WithMetrics(c *PlannerCollector) Option { return func(sim *Simulation) { sim.metrics = c } }

// WithPositions enables route lengths in meters for fully positioned paths
func WithPositions(p map[string]orb.Point) Option {
	return func(sim *Simulation) { sim.positions = p }
}

// NewSimulation prices the graph with cfg.Initial and computes the baseline
// path once. A *MissingEdgeError from the baseline is returned as is; the run
// cannot proceed without it.
func NewSimulation(g *Graph, cfg SimulationConfig, opts ...Option) (*Simulation, error) {
	if !g.HasNode(cfg.Start) {
		return nil, configErrorf("start", "waypoint %q is not in the graph", cfg.Start)
	}
	if !g.HasNode(cfg.End) {
		return nil, configErrorf("end", "waypoint %q is not in the graph", cfg.End)
	}

	sim := &Simulation{
		graph:    g,
		cfg:      cfg,
		sampler:  NewUniformSampler(DefaultRanges(), uint64(time.Now().UnixNano())),
		clock:    SystemClock{},
		reporter: MultiReporter{},
		logger:   NoopLogger(),
	}
	for _, opt := range opts {
		opt(sim)
	}

	g.Reweight(cfg.Initial)
	baseline, err := BaselinePath(g, cfg.Start, cfg.End)
	if err != nil {
		return nil, err
	}
	sim.baseline = baseline
	sim.metrics.SetBaseline(baseline)

	return sim, nil
}

// Baseline returns the fixed comparison path
func (s *Simulation) Baseline() Path { return s.baseline }

// State returns the loop state
func (s *Simulation) State() State { return s.state }

// Ticks returns the number of completed ticks
func (s *Simulation) Ticks() int { return s.tick }

// Step runs one tick: sample, reweight, solve, report. Solver errors are
// recorded in the report and never returned.
func (s *Simulation) Step(ctx context.Context) Report {
	s.tick++
	started := time.Now()

	conditions := s.sampler.Sample()
	s.graph.Reweight(conditions)
	optimized, err := OptimizedPath(s.graph, s.cfg.Start, s.cfg.End)
	elapsed := time.Since(started)

	r := Report{
		Tick:       s.tick,
		At:         s.clock.Now(),
		Conditions: conditions,
		Baseline:   s.baseline,
		Err:        err,
	}
	if err == nil {
		r.Optimized = optimized
		r.Saved = s.baseline.Cost - optimized.Cost
		if meters, ok := RouteLengthMeters(optimized.Nodes, s.positions); ok {
			r.LengthMeters = meters
		}
		s.logger.Debug(ctx, "tick solved",
			Int("tick", s.tick),
			Float("optimized_cost", optimized.Cost),
			Float("saved", r.Saved))
	} else {
		s.logger.Warn(ctx, "tick skipped",
			Int("tick", s.tick),
			String("reason", failureReason(err)),
			Err(err))
	}

	s.metrics.ObserveTick(r, elapsed)
	s.reporter.Report(r)
	return r
}

// Run ticks until ctx is cancelled or MaxTicks ticks have completed, waiting
// Interval on the clock between ticks. A tick in progress always completes.
func (s *Simulation) Run(ctx context.Context) error {
	if s.state == StateRunning {
		return errors.New("simulation already running")
	}
	s.state = StateRunning
	defer func() { s.state = StateStopped }()

	s.logger.Info(ctx, "simulation started",
		String("start", s.cfg.Start),
		String("end", s.cfg.End),
		String("interval", s.cfg.Interval.String()),
		Float("baseline_cost", s.baseline.Cost))

	for {
		if ctx.Err() != nil {
			break
		}
		s.Step(ctx)
		if s.cfg.MaxTicks > 0 && s.tick >= s.cfg.MaxTicks {
			break
		}

		select {
		case <-ctx.Done():
		case <-s.clock.After(s.cfg.Interval):
		}
	}

	s.logger.Info(ctx, "simulation stopped", Int("ticks", s.tick))
	return nil
}
