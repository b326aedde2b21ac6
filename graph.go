package main

import (
	"math"
)

// Leg is one outgoing entry of a waypoint: the target label and the fixed
// distance to it
type Leg struct {
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

// Waypoint lists the legs leaving one waypoint, in table order
type Waypoint struct {
	Label string `json:"label"`
	Legs  []Leg  `json:"legs"`
}

// WaypointTable is the static adjacency table the graph is built from.
// Order matters: it is the graph iteration order.
type WaypointTable []Waypoint

// DefaultWaypoints returns the built-in delivery network
func DefaultWaypoints() WaypointTable {
	return WaypointTable{
		{Label: "Warehouse", Legs: []Leg{{"Checkpoint1", 5}, {"Checkpoint2", 8}}},
		{Label: "Checkpoint1", Legs: []Leg{{"Warehouse", 5}, {"Checkpoint2", 3}, {"Customer", 7}}},
		{Label: "Checkpoint2", Legs: []Leg{{"Warehouse", 8}, {"Checkpoint1", 3}, {"Customer", 4}}},
		{Label: "Customer", Legs: []Leg{{"Checkpoint1", 7}, {"Checkpoint2", 4}}},
	}
}

// Edge is a directed connection between two waypoints. Distance is fixed at
// construction; Weight is overwritten on every reweight.
type Edge struct {
	From       string
	To         string
	Distance   float64
	Weight     float64
	Restricted bool // crosses a no-fly zone; the solver will not use it
}

// Graph is a directed waypoint graph with per-edge energy weights
type Graph struct {
	nodes    []string
	index    map[string]int
	edges    map[int][]*Edge // outgoing edges per node index, in table order
	count    int
	weighted bool
}

// NewGraph builds the graph from table. Any malformed entry fails the whole
// construction with a *ConfigError.
func NewGraph(table WaypointTable) (*Graph, error) {
	g := &Graph{
		index: make(map[string]int),
		edges: make(map[int][]*Edge),
	}

	seenSource := make(map[string]bool, len(table))
	for _, wp := range table {
		if wp.Label == "" {
			return nil, configErrorf("waypoints", "empty source label")
		}
		if seenSource[wp.Label] {
			return nil, configErrorf(wp.Label, "source listed more than once")
		}
		seenSource[wp.Label] = true
		from := g.addNode(wp.Label)

		for _, leg := range wp.Legs {
			entry := wp.Label + " -> " + leg.To
			switch {
			case leg.To == "":
				return nil, configErrorf(wp.Label, "empty target label")
			case leg.To == wp.Label:
				return nil, configErrorf(entry, "self-loop")
			case math.IsNaN(leg.Distance) || math.IsInf(leg.Distance, 0):
				return nil, configErrorf(entry, "distance %v is not a finite number", leg.Distance)
			case leg.Distance <= 0:
				return nil, configErrorf(entry, "distance %v must be positive", leg.Distance)
			}
			if _, dup := g.Edge(wp.Label, leg.To); dup {
				return nil, configErrorf(entry, "duplicate edge")
			}

			g.addNode(leg.To)
			g.edges[from] = append(g.edges[from], &Edge{
				From:     wp.Label,
				To:       leg.To,
				Distance: leg.Distance,
			})
			g.count++
		}
	}

	return g, nil
}

func (g *Graph) addNode(label string) int {
	if i, ok := g.index[label]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, label)
	g.index[label] = i
	return i
}

// Reweight recomputes every edge weight with BatteryUsage under c
func (g *Graph) Reweight(c Conditions) {
	g.ReweightWith(c, batteryCost)
}

// ReweightWith recomputes every edge weight with cost under c, overwriting
// the previous weights
func (g *Graph) ReweightWith(c Conditions, cost CostFunc) {
	for i := range g.nodes {
		for _, e := range g.edges[i] {
			e.Weight = cost(e.Distance, c)
		}
	}
	g.weighted = true
}

// Weighted reports whether Reweight has run at least once
func (g *Graph) Weighted() bool { return g.weighted }

// Nodes returns the waypoint labels in first-seen order
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// HasNode reports whether label is a waypoint of the graph
func (g *Graph) HasNode(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Len returns the number of edges
func (g *Graph) Len() int { return g.count }

// Edge returns the edge from -> to, if any
func (g *Graph) Edge(from, to string) (*Edge, bool) {
	i, ok := g.index[from]
	if !ok {
		return nil, false
	}
	for _, e := range g.edges[i] {
		if e.To == to {
			return e, true
		}
	}
	return nil, false
}

// Successors returns the outgoing edges of label in table order
func (g *Graph) Successors(label string) []*Edge {
	i, ok := g.index[label]
	if !ok {
		return nil
	}
	return g.edges[i]
}

// Edges returns all edges, grouped by source in node order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, g.count)
	for i := range g.nodes {
		out = append(out, g.edges[i]...)
	}
	return out
}
