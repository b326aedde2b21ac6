package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioConditions = Conditions{PayloadWeight: 5, WindSpeed: 10, AltitudeChange: 50}

func defaultGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(DefaultWaypoints())
	require.NoError(t, err)
	return g
}

func TestNewGraph_DefaultWaypoints(t *testing.T) {
	g := defaultGraph(t)

	assert.Equal(t, []string{"Warehouse", "Checkpoint1", "Checkpoint2", "Customer"}, g.Nodes())
	assert.Equal(t, 10, g.Len())
	assert.False(t, g.Weighted())

	e, ok := g.Edge("Checkpoint1", "Customer")
	require.True(t, ok)
	assert.Equal(t, 7.0, e.Distance)
	assert.Zero(t, e.Weight)

	// Both directions exist as distinct edges
	back, ok := g.Edge("Customer", "Checkpoint1")
	require.True(t, ok)
	assert.NotSame(t, e, back)

	_, ok = g.Edge("Warehouse", "Customer")
	assert.False(t, ok)
}

func TestGraph_SuccessorsKeepTableOrder(t *testing.T) {
	g := defaultGraph(t)

	var got []string
	for _, e := range g.Successors("Checkpoint1") {
		got = append(got, e.To)
	}
	assert.Equal(t, []string{"Warehouse", "Checkpoint2", "Customer"}, got)
	assert.Nil(t, g.Successors("Nowhere"))
}

func TestGraph_TargetOnlyNodesAreAdded(t *testing.T) {
	g, err := NewGraph(WaypointTable{{Label: "A", Legs: []Leg{{"B", 1}}}})
	require.NoError(t, err)
	assert.True(t, g.HasNode("B"))
	assert.Empty(t, g.Successors("B"))
}

func TestGraph_ReweightAppliesCostModelToEveryEdge(t *testing.T) {
	g := defaultGraph(t)

	for _, c := range []Conditions{
		scenarioConditions,
		{PayloadWeight: 3.7, WindSpeed: 14.2, AltitudeChange: 31.9},
		{},
	} {
		g.Reweight(c)
		require.True(t, g.Weighted())
		for _, e := range g.Edges() {
			assert.Equal(t, BatteryUsage(e.Distance, c.PayloadWeight, c.WindSpeed, c.AltitudeChange), e.Weight,
				"%s -> %s under %+v", e.From, e.To, c)
		}
	}
}

func TestGraph_ReweightScenarioWeights(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(scenarioConditions)

	e, _ := g.Edge("Warehouse", "Checkpoint1")
	assert.Equal(t, 22.5, e.Weight)
	e, _ = g.Edge("Checkpoint2", "Customer")
	assert.Equal(t, 18.0, e.Weight)
}

func TestGraph_ReweightWithCustomCost(t *testing.T) {
	g := defaultGraph(t)
	g.ReweightWith(scenarioConditions, func(distance float64, _ Conditions) float64 { return 2 * distance })

	for _, e := range g.Edges() {
		assert.Equal(t, 2*e.Distance, e.Weight)
	}
	// Distances never change
	e, _ := g.Edge("Warehouse", "Checkpoint2")
	assert.Equal(t, 8.0, e.Distance)
}

func TestNewGraph_RejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		table WaypointTable
		entry string
	}{
		{"self-loop", WaypointTable{{Label: "A", Legs: []Leg{{"A", 1}}}}, "A -> A"},
		{"duplicate edge", WaypointTable{{Label: "A", Legs: []Leg{{"B", 1}, {"B", 2}}}}, "A -> B"},
		{"duplicate source", WaypointTable{{Label: "A", Legs: []Leg{{"B", 1}}}, {Label: "A", Legs: []Leg{{"C", 1}}}}, "A"},
		{"zero distance", WaypointTable{{Label: "A", Legs: []Leg{{"B", 0}}}}, "A -> B"},
		{"negative distance", WaypointTable{{Label: "A", Legs: []Leg{{"B", -3}}}}, "A -> B"},
		{"NaN distance", WaypointTable{{Label: "A", Legs: []Leg{{"B", math.NaN()}}}}, "A -> B"},
		{"infinite distance", WaypointTable{{Label: "A", Legs: []Leg{{"B", math.Inf(1)}}}}, "A -> B"},
		{"empty source", WaypointTable{{Label: "", Legs: []Leg{{"B", 1}}}}, "waypoints"},
		{"empty target", WaypointTable{{Label: "A", Legs: []Leg{{"", 1}}}}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.table)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrConfig))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.entry, cfgErr.Entry)
		})
	}
}
