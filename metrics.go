package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles the Prometheus metrics of the simulation loop.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Ticks         prometheus.Counter
	TickFailures  *prometheus.CounterVec
	SolveDuration prometheus.Histogram

	OptimizedCost prometheus.Gauge
	BaselineCost  prometheus.Gauge
	Saved         prometheus.Gauge
	Conditions    *prometheus.GaugeVec
}

// NewPlannerCollector registers the planner metrics against reg, defaulting
// to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_ticks_total",
		Help: "Total number of simulation ticks executed.",
	}), "planner_ticks_total")
	if err != nil {
		return nil, err
	}
	failures, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_tick_failures_total",
		Help: "Ticks that produced no optimized path, labeled by reason.",
	}, []string{"reason"}), "planner_tick_failures_total")
	if err != nil {
		return nil, err
	}
	solve, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_solve_duration_seconds",
		Help:    "Time spent reweighting the graph and solving the optimized path.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}), "planner_solve_duration_seconds")
	if err != nil {
		return nil, err
	}
	optimized, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_optimized_cost_units",
		Help: "Energy cost of the most recent optimized path.",
	}), "planner_optimized_cost_units")
	if err != nil {
		return nil, err
	}
	baseline, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_baseline_cost_units",
		Help: "Energy cost of the fixed baseline path.",
	}), "planner_baseline_cost_units")
	if err != nil {
		return nil, err
	}
	saved, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_saved_units",
		Help: "Baseline cost minus optimized cost for the most recent tick.",
	}), "planner_saved_units")
	if err != nil {
		return nil, err
	}
	conditions, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_conditions",
		Help: "Most recently sampled environmental conditions.",
	}, []string{"factor"}), "planner_conditions")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:      gatherer,
		Ticks:         ticks,
		TickFailures:  failures,
		SolveDuration: solve,
		OptimizedCost: optimized,
		BaselineCost:  baseline,
		Saved:         saved,
		Conditions:    conditions,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveTick records the outcome of one tick. Safe on a nil collector.
func (c *PlannerCollector) ObserveTick(r Report, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.SolveDuration.Observe(elapsed.Seconds())
	c.Conditions.WithLabelValues("payload_weight").Set(r.Conditions.PayloadWeight)
	c.Conditions.WithLabelValues("wind_speed").Set(r.Conditions.WindSpeed)
	c.Conditions.WithLabelValues("altitude_change").Set(r.Conditions.AltitudeChange)

	if r.Err != nil {
		c.TickFailures.WithLabelValues(failureReason(r.Err)).Inc()
		return
	}
	c.OptimizedCost.Set(r.Optimized.Cost)
	c.Saved.Set(r.Saved)
}

// SetBaseline records the fixed baseline cost. Safe on a nil collector.
func (c *PlannerCollector) SetBaseline(p Path) {
	if c == nil {
		return
	}
	c.BaselineCost.Set(p.Cost)
}

// register adds collector to reg, reusing an identical collector that is
// already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
