package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration of the planner
type Config struct {
	Start             string        `yaml:"start"`
	End               string        `yaml:"end"`
	Interval          time.Duration `yaml:"-"`
	MaxTicks          int           `yaml:"max_ticks"`
	Seed              uint64        `yaml:"seed"`
	InitialConditions Conditions    `yaml:"initial_conditions"`
	Ranges            Ranges        `yaml:"ranges"`
	Waypoints         WaypointTable `yaml:"-"`
	AirspacePath      string        `yaml:"airspace"`
	HTTPAddr          string        `yaml:"http_addr"`
	Log               LogConfig     `yaml:"log"`
}

// DefaultConfig reproduces the built-in delivery scenario
func DefaultConfig() Config {
	return Config{
		Start:    "Warehouse",
		End:      "Customer",
		Interval: 10 * time.Second,
		Seed:     uint64(time.Now().UnixNano()),
		InitialConditions: Conditions{
			PayloadWeight:  5.0,
			WindSpeed:      10.0,
			AltitudeChange: 50.0,
		},
		Ranges:    DefaultRanges(),
		Waypoints: DefaultWaypoints(),
	}
}

// fileConfig mirrors Config for decoding; the waypoint table stays a raw node
// so its key order and duplicates can be inspected
type fileConfig struct {
	Config    `yaml:",inline"`
	Interval  string    `yaml:"interval"`
	Waypoints yaml.Node `yaml:"waypoints"`
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig on an in-memory document
func ParseConfig(data []byte) (Config, error) {
	fc := fileConfig{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, &ConfigError{Reason: err.Error()}
	}

	cfg := fc.Config
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return Config{}, configErrorf("interval", "%v", err)
		}
		cfg.Interval = d
	}
	if fc.Waypoints.Kind != 0 {
		table, err := parseWaypoints(&fc.Waypoints)
		if err != nil {
			return Config{}, err
		}
		cfg.Waypoints = table
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the waypoint table cannot check itself
func (c Config) Validate() error {
	if c.Start == "" {
		return configErrorf("start", "must not be empty")
	}
	if c.End == "" {
		return configErrorf("end", "must not be empty")
	}
	if c.Interval < 0 {
		return configErrorf("interval", "must not be negative")
	}
	if c.MaxTicks < 0 {
		return configErrorf("max_ticks", "must not be negative")
	}
	for name, r := range map[string]Range{
		"ranges.payload_weight":  c.Ranges.PayloadWeight,
		"ranges.wind_speed":      c.Ranges.WindSpeed,
		"ranges.altitude_change": c.Ranges.AltitudeChange,
	} {
		if r.Min > r.Max {
			return configErrorf(name, "min %v is greater than max %v", r.Min, r.Max)
		}
	}
	return nil
}

// parseWaypoints walks {source: {target: distance}} in document order
func parseWaypoints(node *yaml.Node) (WaypointTable, error) {
	if node.Kind != yaml.MappingNode {
		return nil, configErrorf("waypoints", "line %d: expected a mapping of source waypoints", node.Line)
	}

	table := make(WaypointTable, 0, len(node.Content)/2)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		source := key.Value
		if seen[source] {
			return nil, configErrorf(source, "line %d: source listed more than once", key.Line)
		}
		seen[source] = true

		if value.Kind != yaml.MappingNode {
			return nil, configErrorf(source, "line %d: expected a mapping of target distances", value.Line)
		}

		wp := Waypoint{Label: source}
		targets := make(map[string]bool)
		for j := 0; j+1 < len(value.Content); j += 2 {
			tk, tv := value.Content[j], value.Content[j+1]
			entry := source + " -> " + tk.Value
			if targets[tk.Value] {
				return nil, configErrorf(entry, "line %d: duplicate edge", tk.Line)
			}
			targets[tk.Value] = true

			if tv.Kind != yaml.ScalarNode || (tv.Tag != "!!int" && tv.Tag != "!!float") {
				return nil, configErrorf(entry, "line %d: distance %q is not numeric", tv.Line, tv.Value)
			}
			var distance float64
			if err := tv.Decode(&distance); err != nil {
				return nil, configErrorf(entry, "line %d: %v", tv.Line, err)
			}
			wp.Legs = append(wp.Legs, Leg{To: tk.Value, Distance: distance})
		}
		table = append(table, wp)
	}

	return table, nil
}
