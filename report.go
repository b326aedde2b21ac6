package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Report is the outcome of one tick. Baseline is the fixed comparison path;
// Optimized and Saved are only set when Err is nil.
type Report struct {
	Tick         int        `json:"tick"`
	At           time.Time  `json:"at"`
	Conditions   Conditions `json:"conditions"`
	Baseline     Path       `json:"baseline"`
	Optimized    Path       `json:"optimized"`
	Saved        float64    `json:"saved"`
	LengthMeters float64    `json:"lengthMeters,omitempty"`
	Err          error      `json:"-"`
}

// MarshalJSON adds the tick error as a string
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	out := struct {
		plain
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}{plain: plain(r), Success: r.Err == nil}
	if r.Err != nil {
		out.Message = r.Err.Error()
	}
	return json.Marshal(out)
}

// Reporter receives one report per tick
type Reporter interface {
	Report(r Report)
}

// TextReporter writes the human-readable per-tick report
type TextReporter struct {
	w io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

var separator = strings.Repeat("-", 60)

func (t *TextReporter) Report(r Report) {
	c := r.Conditions
	fmt.Fprintf(t.w, "Tick %d Conditions -> Payload: %.2f kg, Wind: %.2f m/s, Altitude Change: %.2f m\n",
		r.Tick, c.PayloadWeight, c.WindSpeed, c.AltitudeChange)
	fmt.Fprintf(t.w, "Baseline Path: %s\n", formatNodes(r.Baseline.Nodes))
	fmt.Fprintf(t.w, "Baseline Battery Consumption: %.2f units\n", r.Baseline.Cost)

	if r.Err != nil {
		fmt.Fprintf(t.w, "WARNING: no optimized path this tick: %v\n", r.Err)
		fmt.Fprintln(t.w, separator)
		return
	}

	fmt.Fprintf(t.w, "Optimized Path: %s\n", formatNodes(r.Optimized.Nodes))
	fmt.Fprintf(t.w, "Optimized Battery Consumption: %.2f units\n", r.Optimized.Cost)
	if r.LengthMeters > 0 {
		fmt.Fprintf(t.w, "Optimized Route Length: %.2f m\n", r.LengthMeters)
	}
	fmt.Fprintf(t.w, "Battery Saved: %.2f units\n", r.Saved)
	fmt.Fprintln(t.w, separator)
}

func formatNodes(nodes []string) string {
	return "[" + strings.Join(nodes, " -> ") + "]"
}

// LatestReport keeps the most recent report for concurrent readers
type LatestReport struct {
	mu     sync.RWMutex
	report *Report
}

func (l *LatestReport) Report(r Report) {
	l.mu.Lock()
	l.report = &r
	l.mu.Unlock()
}

// Get returns the last report, or false if no tick has completed yet
func (l *LatestReport) Get() (Report, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.report == nil {
		return Report{}, false
	}
	return *l.report, true
}

// MultiReporter fans a report out to several reporters in order
type MultiReporter []Reporter

func (m MultiReporter) Report(r Report) {
	for _, rep := range m {
		rep.Report(r)
	}
}
