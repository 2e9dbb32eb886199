package control

import "math"

// Steering is a rate-limited front-wheel angle integrator.
type Steering struct {
	OmegaMin float64 // rad/s, steering-wheel rate floor at high speed
	Omega0   float64 // rad/s, extra rate available near standstill
	Lambda   float64 // logistic slope
	RefSpeed float64 // m/s, logistic midpoint
	Ratio    float64 // steering-wheel to front-wheel ratio
	MaxAngle float64 // rad, front-wheel lock
}

// DefaultSteering returns the stock steering response.
func DefaultSteering() Steering {
	return Steering{
		OmegaMin: 2.0,
		Omega0:   12.0,
		Lambda:   0.3,
		RefSpeed: 10.0,
		Ratio:    15.0,
		MaxAngle: 35 * math.Pi / 180,
	}
}

// Rate returns the steering-wheel angular rate available at speed v.
// Agility drops from OmegaMin+Omega0 at rest toward OmegaMin at speed.
func (s Steering) Rate(v float64) float64 {
	return s.Omega0/(1+math.Exp(s.Lambda*(v-s.RefSpeed))) + s.OmegaMin
}

// Update integrates the front-wheel angle for one tick and returns the new
// front-wheel and steering-wheel angles. command is clamped to [-1, 1].
func (s Steering) Update(v, current, command, dt float64) (front, wheel float64) {
	command = clamp(command, -1, 1)
	front = clamp(current+s.Rate(v)/s.Ratio*command*dt, -s.MaxAngle, s.MaxAngle)
	return front, front * s.Ratio
}

// MaxDelta returns the largest front-wheel change Update can make in dt.
func (s Steering) MaxDelta(v, dt float64) float64 {
	return s.Rate(v) * dt / s.Ratio
}

// clamp restricts x to [lo, hi]; NaN reads as zero.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		x = 0
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
