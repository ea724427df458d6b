package system

import (
	"math"
	"time"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// WeaponSystem fires each armed entity's weapon at its first locked target,
// consuming capacitor through CapacitorSystem and handing resolved hits to
// CombatSystem (which runs later in the same phase).
type WeaponSystem struct {
	world     *ecs.World
	stores    *component.Stores
	capacitor *CapacitorSystem
	combat    *CombatSystem
	cooldowns map[ecs.EntityID]float64
}

func NewWeaponSystem(world *ecs.World, stores *component.Stores, capacitor *CapacitorSystem, combat *CombatSystem) *WeaponSystem {
	return &WeaponSystem{
		world:     world,
		stores:    stores,
		capacitor: capacitor,
		combat:    combat,
		cooldowns: make(map[ecs.EntityID]float64),
	}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WeaponSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for id := range s.cooldowns {
		s.cooldowns[id] -= sec
		if s.cooldowns[id] <= 0 || !s.world.HasEntity(id) {
			delete(s.cooldowns, id)
		}
	}

	s.stores.Weapon.Each(func(id ecs.EntityID, w *component.Weapon) {
		if _, cooling := s.cooldowns[id]; cooling {
			return
		}
		if w.AmmoCount <= 0 {
			return
		}
		tgt, ok := s.stores.Target.Get(id)
		if !ok || len(tgt.LockedTargets) == 0 {
			return
		}
		pos, ok := s.stores.Position.Get(id)
		if !ok {
			return
		}

		targetID := ecs.EntityID(tgt.LockedTargets[0])
		tpos, ok := s.stores.Position.Get(targetID)
		if !ok {
			return
		}

		dist := dist3(pos.X, pos.Y, pos.Z, tpos.X, tpos.Y, tpos.Z)
		mult := falloffMultiplier(dist, w.OptimalRange, w.FalloffRange)
		if mult < 0.01 {
			return
		}
		if tvel, ok := s.stores.Velocity.Get(targetID); ok && w.TrackingSpeed > 0 {
			speed := math.Sqrt(tvel.VX*tvel.VX + tvel.VY*tvel.VY + tvel.VZ*tvel.VZ)
			angular := speed / math.Max(dist, 1)
			mult *= w.TrackingSpeed / (w.TrackingSpeed + angular)
		}

		if w.CapacitorCost > 0 && !s.capacitor.ConsumeCapacitor(id, w.CapacitorCost) {
			return // dry capacitor skips the cycle, no cooldown spent
		}
		w.AmmoCount--

		s.combat.QueueDamage(DamagePacket{
			AttackerID: id,
			TargetID:   targetID,
			Amount:     w.Damage * mult,
			DamageType: w.DamageType,
		})
		s.cooldowns[id] = w.RateOfFire
	})
}

// falloffMultiplier is the standard falloff curve: full damage inside
// optimal, 50% at optimal+falloff, fading toward zero beyond.
func falloffMultiplier(dist, optimal, falloff float64) float64 {
	if dist <= optimal {
		return 1
	}
	if falloff <= 0 {
		return 0
	}
	over := (dist - optimal) / falloff
	return math.Pow(0.5, over*over)
}
