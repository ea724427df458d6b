package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

const (
	// MinWarpDistance is the shortest destination a warp command accepts.
	MinWarpDistance = 150000.0
	// CollisionPushMargin is how far outside a keep-out sphere a ship is
	// placed when found inside it.
	CollisionPushMargin = 500.0
)

// CollisionZone is a celestial keep-out sphere.
type CollisionZone struct {
	Name   string
	X      float64
	Y      float64
	Z      float64
	Radius float64
}

type commandKind int

const (
	cmdOrbit commandKind = iota
	cmdApproach
	cmdWarp
)

type warpPhase int

const (
	warpAligning warpPhase = iota
	warpInWarp
)

// moveCommand is the active movement order for one entity. Exactly one
// command is active at a time; a new command replaces the old one.
type moveCommand struct {
	kind     commandKind
	targetID ecs.EntityID
	orbit    float64

	phase        warpPhase
	alignLeft    float64
	startX       float64
	startY       float64
	startZ       float64
	destX        float64
	destY        float64
	destZ        float64
	warpDuration float64
	warpProgress float64
}

// MovementSystem integrates velocity into position, clamps speed, runs the
// Orbit/Approach/Warp/Stop command machine, and enforces celestial keep-out
// zones. Commands live in the system, not in components: they are transient
// orders, not persisted state.
type MovementSystem struct {
	world      *ecs.World
	stores     *component.Stores
	commands   map[ecs.EntityID]*moveCommand
	disruption map[ecs.EntityID]float64
	zones      []CollisionZone
	log        *zap.Logger
}

func NewMovementSystem(world *ecs.World, stores *component.Stores, log *zap.Logger) *MovementSystem {
	return &MovementSystem{
		world:      world,
		stores:     stores,
		commands:   make(map[ecs.EntityID]*moveCommand),
		disruption: make(map[ecs.EntityID]float64),
		log:        log,
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// SetCollisionZones installs the current solar system's keep-out spheres.
func (s *MovementSystem) SetCollisionZones(zones []CollisionZone) {
	s.zones = zones
}

// SetWarpDisruption sets the total disruptor strength applied to an entity.
// Zero clears it.
func (s *MovementSystem) SetWarpDisruption(id ecs.EntityID, strength float64) {
	if strength <= 0 {
		delete(s.disruption, id)
		return
	}
	s.disruption[id] = strength
}

// IsWarpDisrupted reports whether disruption on the entity meets or exceeds
// its warp core strength.
func (s *MovementSystem) IsWarpDisrupted(id ecs.EntityID) bool {
	strength, ok := s.disruption[id]
	if !ok {
		return false
	}
	core := 1.0
	if ship, ok := s.stores.Ship.Get(id); ok && ship.WarpCoreStrength > 0 {
		core = ship.WarpCoreStrength
	}
	return strength >= core
}

// CommandOrbit orders the entity to hold distance around targetID.
func (s *MovementSystem) CommandOrbit(id, targetID ecs.EntityID, distance float64) {
	s.commands[id] = &moveCommand{kind: cmdOrbit, targetID: targetID, orbit: distance}
}

// CommandApproach orders the entity to fly straight at targetID. No
// distance floor: the collision push is the only separation.
func (s *MovementSystem) CommandApproach(id, targetID ecs.EntityID) {
	s.commands[id] = &moveCommand{kind: cmdApproach, targetID: targetID}
}

// CommandStop cancels any active command and zeroes the entity's velocity.
func (s *MovementSystem) CommandStop(id ecs.EntityID) {
	delete(s.commands, id)
	if vel, ok := s.stores.Velocity.Get(id); ok {
		vel.VX, vel.VY, vel.VZ, vel.AngularVelocity = 0, 0, 0, 0
	}
}

// CommandWarp starts a warp to the destination. Returns false with no state
// change when the entity is warp-disrupted or the destination is under the
// minimum warp distance. On success the entity aligns for its ship's align
// time and then warps, position driven by progress rather than velocity.
func (s *MovementSystem) CommandWarp(id ecs.EntityID, destX, destY, destZ float64) bool {
	pos, ok := s.stores.Position.Get(id)
	if !ok {
		return false
	}
	if s.IsWarpDisrupted(id) {
		return false
	}
	dist := dist3(pos.X, pos.Y, pos.Z, destX, destY, destZ)
	if dist < MinWarpDistance {
		return false
	}

	alignTime, warpSpeed := 3.0, 5000.0
	if ship, ok := s.stores.Ship.Get(id); ok {
		if ship.AlignTime > 0 {
			alignTime = ship.AlignTime
		}
		if ship.WarpSpeed > 0 {
			warpSpeed = ship.WarpSpeed
		}
	}

	s.commands[id] = &moveCommand{
		kind:         cmdWarp,
		phase:        warpAligning,
		alignLeft:    alignTime,
		destX:        destX,
		destY:        destY,
		destZ:        destZ,
		warpDuration: dist / warpSpeed,
	}
	return true
}

// ActiveCommand reports whether the entity has a movement order in flight.
func (s *MovementSystem) ActiveCommand(id ecs.EntityID) bool {
	_, ok := s.commands[id]
	return ok
}

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()

	for id, cmd := range s.commands {
		if !s.world.HasEntity(id) {
			delete(s.commands, id)
			delete(s.disruption, id)
			continue
		}
		switch cmd.kind {
		case cmdOrbit:
			s.tickOrbit(id, cmd)
		case cmdApproach:
			s.tickApproach(id, cmd)
		case cmdWarp:
			s.tickWarp(id, cmd, sec)
		}
	}

	// Integrate position from velocity for everything not in warp, with the
	// speed clamp applied before integration.
	s.stores.Velocity.Each(func(id ecs.EntityID, vel *component.Velocity) {
		pos, ok := s.stores.Position.Get(id)
		if !ok {
			return
		}
		if s.stores.Docked.Has(id) {
			return
		}
		if cmd, ok := s.commands[id]; ok && cmd.kind == cmdWarp && cmd.phase == warpInWarp {
			return
		}

		speed := math.Sqrt(vel.VX*vel.VX + vel.VY*vel.VY + vel.VZ*vel.VZ)
		if vel.MaxSpeed > 0 && speed > vel.MaxSpeed {
			scale := vel.MaxSpeed / speed
			vel.VX *= scale
			vel.VY *= scale
			vel.VZ *= scale
		}

		pos.X += vel.VX * sec
		pos.Y += vel.VY * sec
		pos.Z += vel.VZ * sec
		pos.Rotation += vel.AngularVelocity * sec
	})

	// Keep-out spheres: push movable entities radially outward.
	for _, zone := range s.zones {
		s.stores.Velocity.Each(func(id ecs.EntityID, _ *component.Velocity) {
			pos, ok := s.stores.Position.Get(id)
			if !ok {
				return
			}
			d := dist3(pos.X, pos.Y, pos.Z, zone.X, zone.Y, zone.Z)
			if d >= zone.Radius {
				return
			}
			push := zone.Radius + CollisionPushMargin
			if d < 1e-9 {
				pos.X = zone.X + push
				pos.Y = zone.Y
				pos.Z = zone.Z
				return
			}
			pos.X = zone.X + (pos.X-zone.X)/d*push
			pos.Y = zone.Y + (pos.Y-zone.Y)/d*push
			pos.Z = zone.Z + (pos.Z-zone.Z)/d*push
		})
	}
}

func (s *MovementSystem) tickOrbit(id ecs.EntityID, cmd *moveCommand) {
	pos, ok := s.stores.Position.Get(id)
	if !ok {
		return
	}
	vel, ok := s.stores.Velocity.Get(id)
	if !ok {
		return
	}
	tpos, ok := s.stores.Position.Get(cmd.targetID)
	if !ok || !s.world.HasEntity(cmd.targetID) {
		delete(s.commands, id)
		return
	}

	rx, ry, rz := pos.X-tpos.X, pos.Y-tpos.Y, pos.Z-tpos.Z
	d := math.Sqrt(rx*rx + ry*ry + rz*rz)
	cruise := vel.MaxSpeed
	if cruise <= 0 {
		cruise = 100
	}
	if d < 1e-9 {
		// Dead center: kick outward and let the next tick settle.
		vel.VX, vel.VY, vel.VZ = cruise, 0, 0
		return
	}
	rx, ry, rz = rx/d, ry/d, rz/d

	// Tangent = radial × up, falling back when they are parallel.
	tx, ty, tz := crossUnit(rx, ry, rz, 0, 1, 0)
	if tx == 0 && ty == 0 && tz == 0 {
		tx, ty, tz = crossUnit(rx, ry, rz, 1, 0, 0)
	}

	// Radial correction proportional to the range error, capped at cruise.
	err := d - cmd.orbit
	radial := math.Max(-cruise, math.Min(cruise, err))
	vel.VX = tx*cruise*0.7 - rx*radial
	vel.VY = ty*cruise*0.7 - ry*radial
	vel.VZ = tz*cruise*0.7 - rz*radial
}

func (s *MovementSystem) tickApproach(id ecs.EntityID, cmd *moveCommand) {
	pos, ok := s.stores.Position.Get(id)
	if !ok {
		return
	}
	vel, ok := s.stores.Velocity.Get(id)
	if !ok {
		return
	}
	tpos, ok := s.stores.Position.Get(cmd.targetID)
	if !ok || !s.world.HasEntity(cmd.targetID) {
		delete(s.commands, id)
		return
	}

	dx, dy, dz := tpos.X-pos.X, tpos.Y-pos.Y, tpos.Z-pos.Z
	d := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if d < 1e-9 {
		vel.VX, vel.VY, vel.VZ = 0, 0, 0
		return
	}
	cruise := vel.MaxSpeed
	if cruise <= 0 {
		cruise = 100
	}
	vel.VX = dx / d * cruise
	vel.VY = dy / d * cruise
	vel.VZ = dz / d * cruise
}

func (s *MovementSystem) tickWarp(id ecs.EntityID, cmd *moveCommand, sec float64) {
	pos, ok := s.stores.Position.Get(id)
	if !ok {
		delete(s.commands, id)
		return
	}

	switch cmd.phase {
	case warpAligning:
		cmd.alignLeft -= sec
		// Burn toward the destination while aligning.
		if vel, ok := s.stores.Velocity.Get(id); ok {
			dx, dy, dz := cmd.destX-pos.X, cmd.destY-pos.Y, cmd.destZ-pos.Z
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			cruise := vel.MaxSpeed
			if cruise <= 0 {
				cruise = 100
			}
			if d > 1e-9 {
				vel.VX = dx / d * cruise
				vel.VY = dy / d * cruise
				vel.VZ = dz / d * cruise
			}
		}
		if cmd.alignLeft <= 0 {
			cmd.phase = warpInWarp
			cmd.startX, cmd.startY, cmd.startZ = pos.X, pos.Y, pos.Z
			cmd.warpProgress = 0
			if vel, ok := s.stores.Velocity.Get(id); ok {
				vel.VX, vel.VY, vel.VZ = 0, 0, 0
			}
		}

	case warpInWarp:
		if cmd.warpDuration <= 0 {
			cmd.warpProgress = 1
		} else {
			cmd.warpProgress += sec / cmd.warpDuration
		}
		if cmd.warpProgress >= 1 {
			pos.X, pos.Y, pos.Z = cmd.destX, cmd.destY, cmd.destZ
			delete(s.commands, id)
			return
		}
		pos.X = cmd.startX + (cmd.destX-cmd.startX)*cmd.warpProgress
		pos.Y = cmd.startY + (cmd.destY-cmd.startY)*cmd.warpProgress
		pos.Z = cmd.startZ + (cmd.destZ-cmd.startZ)*cmd.warpProgress
	}
}

func dist3(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx, dy, dz := x2-x1, y2-y1, z2-z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// crossUnit returns the normalized cross product, or zeros when the inputs
// are parallel.
func crossUnit(ax, ay, az, bx, by, bz float64) (float64, float64, float64) {
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	n := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if n < 1e-9 {
		return 0, 0, 0
	}
	return cx / n, cy / n, cz / n
}
