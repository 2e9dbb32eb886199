// Package angle provides angle normalization primitives shared by the
// vehicle model and the camera controller.
package angle

import (
	"fmt"
	"math"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Normalize reduces a modulo 2π into (-π, π].
// The result is congruent to a and Normalize is idempotent.
func Normalize(a float64) float64 {
	r := math.Mod(a, TwoPi)
	if r > math.Pi {
		r -= TwoPi
	} else if r <= -math.Pi {
		r += TwoPi
	}
	return r
}

// Wrap maps x into [low, high) by subtracting whole multiples of (high-low).
// Values already inside [low, high] (inclusive on both ends) are returned
// unchanged, so high itself is accepted as-is while a wrapped result never
// lands on it. Callers must guarantee high > low; see Interval.
func Wrap(x, low, high float64) float64 {
	if low <= x && x <= high {
		return x
	}
	span := high - low
	n := math.Floor((x - low) / span)
	return x - span*n
}

// Interval is a validated [Low, High] range for Wrap.
type Interval struct {
	Low, High float64
}

// NewInterval returns an interval, rejecting empty or inverted ranges.
func NewInterval(low, high float64) (Interval, error) {
	if !(high > low) {
		return Interval{}, fmt.Errorf("angle: invalid interval [%v, %v]: high must exceed low", low, high)
	}
	return Interval{Low: low, High: high}, nil
}

// MustInterval is like NewInterval but panics on an invalid range.
// Intended for package-level interval constants.
func MustInterval(low, high float64) Interval {
	iv, err := NewInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

// Wrap maps x into the interval.
func (iv Interval) Wrap(x float64) float64 {
	return Wrap(x, iv.Low, iv.High)
}

// Span returns High - Low.
func (iv Interval) Span() float64 {
	return iv.High - iv.Low
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * math.Pi / 180
}

// ToDeg converts radians to degrees.
func ToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
