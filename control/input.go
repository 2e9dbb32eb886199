package control

// Input is the controller-layer view of the driver commands.
// The integrator reads it; the HUD and audio layers only observe it.
type Input struct {
	Throttle           float64 // [0, 1]
	Brake              float64 // [0, 1]
	FrontWheelAngle    float64 // rad, within ±Steering.MaxAngle
	SteeringWheelAngle float64 // rad, FrontWheelAngle * Ratio (display only)
}

// SetPedals stores throttle and brake clamped to [0, 1].
func (in *Input) SetPedals(throttle, brake float64) {
	in.Throttle = clamp(throttle, 0, 1)
	in.Brake = clamp(brake, 0, 1)
}

// Steer advances the wheel angles through the steering integrator.
func (in *Input) Steer(s Steering, v, command, dt float64) {
	in.FrontWheelAngle, in.SteeringWheelAngle = s.Update(v, in.FrontWheelAngle, command, dt)
}
