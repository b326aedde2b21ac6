package main

import (
	"container/heap"
	"fmt"
	"math"
)

// Path is an ordered waypoint sequence and its total energy cost. The cost is
// only valid for the weights it was computed from.
type Path struct {
	Nodes []string `json:"nodes"`
	Cost  float64  `json:"cost"`
}

// queueItem is a waypoint in the Dijkstra frontier
type queueItem struct {
	node int
	dist float64
	seq  int // push order, breaks ties between equal distances
}

// PriorityQueue implements heap.Interface ordered by distance, then push order
type PriorityQueue []*queueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].dist == pq[j].dist {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].dist < pq[j].dist
}

func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

// OptimizedPath computes the minimum-energy path from start to end over the
// current edge weights using Dijkstra's algorithm.
//
// Neighbours are relaxed in table order and a distance is only replaced by a
// strictly smaller one, so among equal-cost paths the first one discovered in
// table order wins. Restricted edges are never traversed.
func OptimizedPath(g *Graph, start, end string) (Path, error) {
	if !g.HasNode(start) {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, start)
	}
	if !g.HasNode(end) {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, end)
	}
	if !g.Weighted() {
		return Path{}, ErrUnweighted
	}

	// Dijkstra is only correct for non-negative weights
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			return Path{}, fmt.Errorf("%w: %s -> %s weight=%.4f", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	n := len(g.nodes)
	src, dst := g.index[start], g.index[end]

	dist := make([]float64, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	seq := 0
	heap.Push(openSet, &queueItem{node: src, dist: 0, seq: seq})

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*queueItem)
		u := current.node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			break
		}

		for _, e := range g.edges[u] {
			if e.Restricted {
				continue
			}
			v := g.index[e.To]
			if visited[v] {
				continue
			}
			tentative := dist[u] + e.Weight
			if tentative < dist[v] {
				dist[v] = tentative
				prev[v] = u
				seq++
				heap.Push(openSet, &queueItem{node: v, dist: tentative, seq: seq})
			}
		}
	}

	if !visited[dst] {
		return Path{}, &UnreachableError{From: start, To: end}
	}

	// Reconstruct path
	nodes := []string{}
	for at := dst; at != -1; at = prev[at] {
		nodes = append([]string{g.nodes[at]}, nodes...)
	}

	return Path{Nodes: nodes, Cost: pathCost(g, nodes)}, nil
}

// pathCost sums the current weights along nodes. Every consecutive pair must
// have an edge.
func pathCost(g *Graph, nodes []string) float64 {
	var total float64
	for i := 0; i+1 < len(nodes); i++ {
		e, _ := g.Edge(nodes[i], nodes[i+1])
		total += e.Weight
	}
	return total
}
