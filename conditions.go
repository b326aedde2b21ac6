package main

import (
	"math/rand/v2"
)

// Range is a closed sampling interval
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Ranges bounds each sampled condition
type Ranges struct {
	PayloadWeight  Range `yaml:"payload_weight" json:"payloadWeight"`
	WindSpeed      Range `yaml:"wind_speed" json:"windSpeed"`
	AltitudeChange Range `yaml:"altitude_change" json:"altitudeChange"`
}

// DefaultRanges are the condition bounds of a typical delivery day
func DefaultRanges() Ranges {
	return Ranges{
		PayloadWeight:  Range{Min: 3, Max: 7},
		WindSpeed:      Range{Min: 5, Max: 15},
		AltitudeChange: Range{Min: 30, Max: 70},
	}
}

// Sampler produces the conditions for one tick
type Sampler interface {
	Sample() Conditions
}

// UniformSampler draws each condition independently and uniformly from its range
type UniformSampler struct {
	ranges Ranges
	rng    *rand.Rand
}

// NewUniformSampler returns a sampler whose sequence is fully determined by seed
func NewUniformSampler(ranges Ranges, seed uint64) *UniformSampler {
	return &UniformSampler{
		ranges: ranges,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Sample draws payload, wind and altitude in that order
func (s *UniformSampler) Sample() Conditions {
	return Conditions{
		PayloadWeight:  s.uniform(s.ranges.PayloadWeight),
		WindSpeed:      s.uniform(s.ranges.WindSpeed),
		AltitudeChange: s.uniform(s.ranges.AltitudeChange),
	}
}

func (s *UniformSampler) uniform(r Range) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// FixedSampler replays a list of conditions, cycling when exhausted
type FixedSampler struct {
	seq  []Conditions
	next int
}

func NewFixedSampler(seq ...Conditions) *FixedSampler {
	return &FixedSampler{seq: seq}
}

func (s *FixedSampler) Sample() Conditions {
	if len(s.seq) == 0 {
		return Conditions{}
	}
	c := s.seq[s.next%len(s.seq)]
	s.next++
	return c
}
