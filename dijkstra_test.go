package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allSimplePaths enumerates every cycle-free path from start to end, ignoring
// restricted edges
func allSimplePaths(g *Graph, start, end string) [][]string {
	var out [][]string
	onPath := map[string]bool{start: true}
	var walk func(path []string)
	walk = func(path []string) {
		last := path[len(path)-1]
		if last == end {
			out = append(out, append([]string(nil), path...))
			return
		}
		for _, e := range g.Successors(last) {
			if e.Restricted || onPath[e.To] {
				continue
			}
			onPath[e.To] = true
			walk(append(path, e.To))
			onPath[e.To] = false
		}
	}
	walk([]string{start})
	return out
}

func sumWeights(t *testing.T, g *Graph, nodes []string) float64 {
	t.Helper()
	var total float64
	for i := 0; i+1 < len(nodes); i++ {
		e, ok := g.Edge(nodes[i], nodes[i+1])
		require.True(t, ok, "missing edge %s -> %s", nodes[i], nodes[i+1])
		total += e.Weight
	}
	return total
}

func TestOptimizedPath_Scenario(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(scenarioConditions)

	path, err := OptimizedPath(g, "Warehouse", "Customer")
	require.NoError(t, err)

	// Every route has total distance 12, so the cost is 12 * 4.5
	assert.InDelta(t, 12*4.5, path.Cost, 1e-9)
	// Tie-break: first equal-cost path found in table order
	assert.Equal(t, []string{"Warehouse", "Checkpoint1", "Customer"}, path.Nodes)
}

func TestOptimizedPath_CostIsSumOfTraversedWeights(t *testing.T) {
	g := defaultGraph(t)
	sampler := NewUniformSampler(DefaultRanges(), 7)

	for i := 0; i < 50; i++ {
		g.Reweight(sampler.Sample())
		path, err := OptimizedPath(g, "Warehouse", "Customer")
		require.NoError(t, err)
		assert.Equal(t, sumWeights(t, g, path.Nodes), path.Cost)
		assert.Equal(t, "Warehouse", path.Nodes[0])
		assert.Equal(t, "Customer", path.Nodes[len(path.Nodes)-1])
	}
}

func TestOptimizedPath_IsNoWorseThanAnyOtherPath(t *testing.T) {
	table := WaypointTable{
		{Label: "S", Legs: []Leg{{"A", 4}, {"B", 1}, {"C", 9}}},
		{Label: "A", Legs: []Leg{{"T", 1}, {"B", 2}}},
		{Label: "B", Legs: []Leg{{"A", 1}, {"C", 5}, {"T", 7}}},
		{Label: "C", Legs: []Leg{{"T", 1}}},
	}
	g, err := NewGraph(table)
	require.NoError(t, err)

	g.Reweight(scenarioConditions)
	path, err := OptimizedPath(g, "S", "T")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "B", "A", "T"}, path.Nodes)

	candidates := allSimplePaths(g, "S", "T")
	require.NotEmpty(t, candidates)
	for _, other := range candidates {
		assert.LessOrEqual(t, path.Cost, sumWeights(t, g, other)+1e-9, "path %v", other)
	}
}

func TestOptimizedPath_OptimalUnderRandomConditions(t *testing.T) {
	g := defaultGraph(t)
	sampler := NewUniformSampler(DefaultRanges(), 99)
	candidates := allSimplePaths(g, "Warehouse", "Customer")
	require.Len(t, candidates, 4)

	for i := 0; i < 25; i++ {
		g.Reweight(sampler.Sample())
		path, err := OptimizedPath(g, "Warehouse", "Customer")
		require.NoError(t, err)
		for _, other := range candidates {
			assert.LessOrEqual(t, path.Cost, sumWeights(t, g, other)+1e-9)
		}
	}
}

func TestOptimizedPath_Idempotent(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(Conditions{PayloadWeight: 6.1, WindSpeed: 7.3, AltitudeChange: 44})

	first, err := OptimizedPath(g, "Warehouse", "Customer")
	require.NoError(t, err)
	second, err := OptimizedPath(g, "Warehouse", "Customer")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizedPath_TieBreakFollowsTableOrder(t *testing.T) {
	table := WaypointTable{
		{Label: "A", Legs: []Leg{{"B", 1}, {"C", 1}}},
		{Label: "B", Legs: []Leg{{"D", 1}}},
		{Label: "C", Legs: []Leg{{"D", 1}}},
	}
	g, err := NewGraph(table)
	require.NoError(t, err)
	g.Reweight(Conditions{})

	path, err := OptimizedPath(g, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, path.Nodes)
	assert.Equal(t, 2.0, path.Cost)
}

func TestOptimizedPath_StartEqualsEnd(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(scenarioConditions)

	path, err := OptimizedPath(g, "Customer", "Customer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer"}, path.Nodes)
	assert.Zero(t, path.Cost)
}

func TestOptimizedPath_Unreachable(t *testing.T) {
	g, err := NewGraph(WaypointTable{
		{Label: "A", Legs: []Leg{{"B", 1}}},
		{Label: "C", Legs: []Leg{{"A", 1}}},
	})
	require.NoError(t, err)
	g.Reweight(Conditions{})

	_, err = OptimizedPath(g, "A", "C")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))

	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "A", unreachable.From)
	assert.Equal(t, "C", unreachable.To)
}

func TestOptimizedPath_SkipsRestrictedEdges(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(scenarioConditions)
	e, _ := g.Edge("Warehouse", "Checkpoint1")
	e.Restricted = true

	path, err := OptimizedPath(g, "Warehouse", "Customer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Warehouse", "Checkpoint2", "Customer"}, path.Nodes)
	assert.Equal(t, 54.0, path.Cost)
}

func TestOptimizedPath_Errors(t *testing.T) {
	g := defaultGraph(t)

	_, err := OptimizedPath(g, "Warehouse", "Customer")
	assert.ErrorIs(t, err, ErrUnweighted)

	g.Reweight(scenarioConditions)
	_, err = OptimizedPath(g, "Depot", "Customer")
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = OptimizedPath(g, "Warehouse", "Depot")
	assert.ErrorIs(t, err, ErrUnknownNode)

	g.Reweight(Conditions{AltitudeChange: -200})
	_, err = OptimizedPath(g, "Warehouse", "Customer")
	assert.ErrorIs(t, err, ErrNegativeWeight)
}

func TestOptimizedPath_DoesNotMutateWeights(t *testing.T) {
	g := defaultGraph(t)
	g.Reweight(scenarioConditions)

	before := make([]float64, 0, g.Len())
	for _, e := range g.Edges() {
		before = append(before, e.Weight)
	}
	_, err := OptimizedPath(g, "Warehouse", "Customer")
	require.NoError(t, err)

	for i, e := range g.Edges() {
		assert.Equal(t, before[i], e.Weight)
	}
}
