package component

// Position is an entity's location and facing in system space.
type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

// Velocity is integrated into Position each tick by MovementSystem, which
// also clamps the linear speed to MaxSpeed.
type Velocity struct {
	VX              float64 `json:"vx"`
	VY              float64 `json:"vy"`
	VZ              float64 `json:"vz"`
	AngularVelocity float64 `json:"angular_velocity"`
	MaxSpeed        float64 `json:"max_speed"`
}
