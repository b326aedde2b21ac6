package main

import "fmt"

// BaselinePath builds the fixed comparison path: the direct successors of
// start in table order, followed by end. The sequence is structural and is
// not checked against the topology up front; a consecutive pair without an
// edge fails with *MissingEdgeError. Restricted edges are still counted.
func BaselinePath(g *Graph, start, end string) (Path, error) {
	if !g.HasNode(start) {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, start)
	}
	if !g.HasNode(end) {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownNode, end)
	}

	successors := g.Successors(start)
	nodes := make([]string, 0, len(successors)+1)
	for _, e := range successors {
		nodes = append(nodes, e.To)
	}
	nodes = append(nodes, end)

	var total float64
	for i := 0; i+1 < len(nodes); i++ {
		e, ok := g.Edge(nodes[i], nodes[i+1])
		if !ok {
			return Path{}, &MissingEdgeError{From: nodes[i], To: nodes[i+1]}
		}
		total += e.Weight
	}

	return Path{Nodes: nodes, Cost: total}, nil
}
