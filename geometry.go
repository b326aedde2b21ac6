package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Airspace holds waypoint positions (lon/lat) and no-fly zones
type Airspace struct {
	Positions  map[string]orb.Point
	NoFlyZones []orb.Polygon
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 orb.Point
}

// DoSegmentsIntersect checks if two line segments intersect
func DoSegmentsIntersect(seg1, seg2 LineSegment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	// Segments sharing an endpoint touch but do not cross
	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return false
	}

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}

	return false
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3.X()-p1.X())*(p2.Y()-p1.Y()) - (p2.X()-p1.X())*(p3.Y()-p1.Y())
}

// onSegment checks if point q lies on segment pr
func onSegment(p, r, q orb.Point) bool {
	return q.X() <= math.Max(p.X(), r.X()) && q.X() >= math.Min(p.X(), r.X()) &&
		q.Y() <= math.Max(p.Y(), r.Y()) && q.Y() >= math.Min(p.Y(), r.Y())
}

// DoesSegmentIntersectPolygon checks if a segment crosses the outer ring of zone
func DoesSegmentIntersectPolygon(seg LineSegment, zone orb.Polygon) bool {
	if len(zone) == 0 {
		return false
	}
	ring := zone[0]
	n := len(ring)
	for i := 0; i < n; i++ {
		edge := LineSegment{P1: ring[i], P2: ring[(i+1)%n]}
		if DoSegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// IsPathClear checks if a straight flight between two points avoids every zone
func IsPathClear(p1, p2 orb.Point, zones []orb.Polygon) bool {
	segment := LineSegment{P1: p1, P2: p2}
	midpoint := orb.Point{(p1.X() + p2.X()) / 2, (p1.Y() + p2.Y()) / 2}

	for _, zone := range zones {
		if DoesSegmentIntersectPolygon(segment, zone) {
			return false
		}
		// Endpoints or midpoint inside catches segments fully within a zone
		if planar.PolygonContains(zone, p1) || planar.PolygonContains(zone, p2) ||
			planar.PolygonContains(zone, midpoint) {
			return false
		}
	}

	return true
}

// Restrict marks every edge whose endpoints are both positioned and whose
// straight segment is blocked by a no-fly zone. It returns the number of
// restricted edges.
func (g *Graph) Restrict(a *Airspace) int {
	if a == nil || len(a.NoFlyZones) == 0 {
		return 0
	}
	index := NewSpatialIndex(a.NoFlyZones)

	restricted := 0
	for _, e := range g.Edges() {
		from, okFrom := a.Positions[e.From]
		to, okTo := a.Positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		candidates := index.QueryBound(orb.LineString{from, to}.Bound())
		if !IsPathClear(from, to, candidates) {
			e.Restricted = true
			restricted++
		}
	}
	return restricted
}

// RouteLengthMeters returns the great-circle length of path. It returns
// false when any waypoint has no known position.
func RouteLengthMeters(nodes []string, positions map[string]orb.Point) (float64, bool) {
	if len(nodes) == 0 || len(positions) == 0 {
		return 0, false
	}
	var total float64
	for i, label := range nodes {
		p, ok := positions[label]
		if !ok {
			return 0, false
		}
		if i > 0 {
			total += geo.DistanceHaversine(positions[nodes[i-1]], p)
		}
	}
	return total, true
}
