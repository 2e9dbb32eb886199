// Package control maps normalized driver inputs onto the longitudinal and
// steering commands consumed by the vehicle model.
package control

import "math"

// Curves holds the pedal response parameters.
type Curves struct {
	MaxAccel      float64 // m/s², also the braking asymptote
	MaxSpeed      float64 // m/s, throttle authority fades to zero here
	BrakeMidpoint float64 // pedal position at half braking force
	BrakeGain     float64 // S-curve steepness
	StopThreshold float64 // m/s, braking fades linearly below this speed
}

// DefaultCurves returns the stock pedal response.
func DefaultCurves() Curves {
	return Curves{
		MaxAccel:      5.0,
		MaxSpeed:      33.3,
		BrakeMidpoint: 0.4,
		BrakeGain:     7.0,
		StopThreshold: 0.2,
	}
}

// Acceleration returns the throttle contribution at speed v.
// Linear in throttle, fading to zero at MaxSpeed and negative above it.
func (c Curves) Acceleration(throttle, v float64) float64 {
	return c.MaxAccel * throttle * (1 - v/c.MaxSpeed)
}

// Deceleration returns the (non-positive) brake contribution at speed v.
func (c Curves) Deceleration(brake, v float64) float64 {
	if brake == 0 {
		return 0
	}
	target := -c.MaxAccel / (1 + math.Exp(-c.BrakeGain*(brake-c.BrakeMidpoint)))
	if v > c.StopThreshold {
		return target
	}
	// Near standstill the force fades out so the car settles instead of reversing.
	return target * (v / c.StopThreshold)
}

// Longitudinal returns the combined acceleration. Throttle and brake are
// additive; pressing both simply sums.
func (c Curves) Longitudinal(throttle, brake, v float64) float64 {
	return c.Acceleration(throttle, v) + c.Deceleration(brake, v)
}
