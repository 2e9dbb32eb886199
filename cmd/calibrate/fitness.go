package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/input"
	"github.com/pthm-cable/egodrive/sim"
)

// Reference speed for the launch and stop maneuvers.
const refSpeed = 100 / 3.6 // m/s

// maneuverLimit bounds every maneuver in sim seconds.
const maneuverLimit = 120.0

// Measurements are the observable responses of one configuration.
type Measurements struct {
	LaunchSec    float64 // full throttle, rest to 100 km/h
	StopDistance float64 // full brake, 100 km/h to rest, meters
	HalfDecel    float64 // m/s² at half brake pedal at speed
}

// Targets are the desired responses.
type Targets Measurements

// Measure runs the three maneuvers on independent sessions.
func Measure(cfg *config.Config) (Measurements, error) {
	var (
		m    Measurements
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, out *float64, fn func(*sim.Session, float64) float64) {
		defer wg.Done()
		s, err := sim.NewSession(cfg)
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			return
		}
		*out = fn(s, cfg.Dynamics.DT)
	}

	wg.Add(3)
	go run("launch", &m.LaunchSec, launch)
	go run("stop", &m.StopDistance, stop)
	go run("half brake", &m.HalfDecel, halfDecel)
	wg.Wait()

	if len(errs) > 0 {
		return m, errs[0]
	}
	return m, nil
}

// launch returns the time to reach refSpeed from rest, or maneuverLimit.
func launch(s *sim.Session, dt float64) float64 {
	f := input.Frame{Throttle: 1, DT: dt}
	for s.Time() < maneuverLimit {
		if snap := s.Step(f); snap.State.V >= refSpeed {
			return snap.Time
		}
	}
	return maneuverLimit
}

// stop returns the distance covered braking from refSpeed to rest.
func stop(s *sim.Session, dt float64) float64 {
	s.Vehicle.State.V = refSpeed
	f := input.Frame{Brake: 1, DT: dt}
	for s.Time() < maneuverLimit {
		if snap := s.Step(f); snap.State.V <= 0.01 {
			break
		}
	}
	return s.Vehicle.State.S
}

// halfDecel returns the speed lost over one tick at half pedal.
func halfDecel(s *sim.Session, dt float64) float64 {
	const v0 = 20.0
	s.Vehicle.State.V = v0
	snap := s.Step(input.Frame{Brake: 0.5, DT: dt})
	return (v0 - snap.State.V) / dt
}

// Fitness is the sum of squared relative errors (lower = better).
func Fitness(m Measurements, t Targets) float64 {
	rel := func(got, want float64) float64 {
		if want == 0 {
			return got * got
		}
		e := (got - want) / want
		return e * e
	}
	return rel(m.LaunchSec, t.LaunchSec) + rel(m.StopDistance, t.StopDistance) + rel(m.HalfDecel, t.HalfDecel)
}

// FitnessEvaluator runs headless maneuvers and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	targets    Targets

	mu          sync.Mutex
	bestFitness float64
	last        Measurements
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		baseConfig:  baseCfg,
		targets:     targets,
		bestFitness: math.Inf(1),
	}
}

// Evaluate computes fitness for a raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	m, err := Measure(cfg)
	if err != nil {
		return math.Inf(1)
	}
	fitness := Fitness(m, fe.targets)

	fe.mu.Lock()
	fe.last = m
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.mu.Unlock()

	return fitness
}

// LastMeasurements returns the responses from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeasurements() Measurements {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// copyConfig returns a copy of the base config safe to modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
