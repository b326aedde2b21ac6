package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadAirspace reads a GeoJSON FeatureCollection. Point features carrying a
// "name" property position the waypoint of that name; Polygon and
// MultiPolygon features are no-fly zones.
func LoadAirspace(path string) (*Airspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read airspace file: %w", err)
	}
	return ParseAirspace(data)
}

// ParseAirspace is LoadAirspace on an in-memory document
func ParseAirspace(data []byte) (*Airspace, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ConfigError{Entry: "airspace", Reason: err.Error()}
	}

	a := &Airspace{Positions: make(map[string]orb.Point)}
	for i, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case orb.Point:
			name := feature.Properties.MustString("name", "")
			if name == "" {
				return nil, configErrorf(fmt.Sprintf("airspace feature %d", i), "point without a name property")
			}
			if _, dup := a.Positions[name]; dup {
				return nil, configErrorf(name, "waypoint positioned more than once")
			}
			a.Positions[name] = geom

		case orb.Polygon:
			a.NoFlyZones = append(a.NoFlyZones, outerRing(geom))

		case orb.MultiPolygon:
			for _, poly := range geom {
				a.NoFlyZones = append(a.NoFlyZones, outerRing(poly))
			}
		}
	}

	return a, nil
}

// outerRing drops holes, only the outer boundary is used
func outerRing(p orb.Polygon) orb.Polygon {
	if len(p) == 0 {
		return p
	}
	return orb.Polygon{p[0]}
}
