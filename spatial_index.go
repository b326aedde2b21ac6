package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minSide pads degenerate bounds, rtreego rejects zero-length sides
const minSide = 1e-9

// zoneEntry wraps a no-fly zone for R-tree storage
type zoneEntry struct {
	zone orb.Polygon
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (z *zoneEntry) Bounds() rtreego.Rect {
	return z.bbox
}

// SpatialIndex answers which no-fly zones may intersect a region
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index over zones
func NewSpatialIndex(zones []orb.Polygon) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, zone := range zones {
		if len(zone) == 0 || len(zone[0]) == 0 {
			continue
		}
		bbox, err := boundToRect(zone.Bound())
		if err == nil {
			tree.Insert(&zoneEntry{zone: zone, bbox: bbox})
		}
	}

	return &SpatialIndex{tree: tree}
}

// Size returns the number of indexed zones
func (si *SpatialIndex) Size() int {
	return si.tree.Size()
}

// QueryBound returns the zones whose bounding box intersects b
func (si *SpatialIndex) QueryBound(b orb.Bound) []orb.Polygon {
	rect, err := boundToRect(b)
	if err != nil {
		return []orb.Polygon{}
	}

	results := si.tree.SearchIntersect(rect)
	zones := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		zones = append(zones, item.(*zoneEntry).zone)
	}

	return zones
}

// boundToRect converts an orb bound to an rtreego rectangle
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{
			max(b.Max.X()-b.Min.X(), minSide),
			max(b.Max.Y()-b.Min.Y(), minSide),
		},
	)
}
