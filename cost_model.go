package main

// Conditions are the environmental inputs sampled once per tick
type Conditions struct {
	PayloadWeight  float64 `json:"payloadWeight" yaml:"payload_weight"`   // kg
	WindSpeed      float64 `json:"windSpeed" yaml:"wind_speed"`           // m/s
	AltitudeChange float64 `json:"altitudeChange" yaml:"altitude_change"` // meters
}

// CostFunc maps an edge distance under the given conditions to an edge weight
type CostFunc func(distance float64, c Conditions) float64

// BatteryUsage estimates the energy needed to fly distance under the given
// conditions. Each factor scales the base consumption linearly and
// independently. Inputs are not validated: negative values simply scale the
// result, which may then be negative.
func BatteryUsage(distance, payloadWeight, windSpeed, altitudeChange float64) float64 {
	payloadFactor := 1.0 + payloadWeight/10.0
	windFactor := 1.0 + windSpeed/10.0
	altitudeFactor := 1.0 + altitudeChange/100.0

	return distance * payloadFactor * windFactor * altitudeFactor
}

// Cost applies BatteryUsage to distance under c
func (c Conditions) Cost(distance float64) float64 {
	return BatteryUsage(distance, c.PayloadWeight, c.WindSpeed, c.AltitudeChange)
}

// batteryCost adapts BatteryUsage to the CostFunc signature
func batteryCost(distance float64, c Conditions) float64 {
	return c.Cost(distance)
}
