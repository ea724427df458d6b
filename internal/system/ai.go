package system

import (
	"time"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// AISystem drives NPC behavior. Behavior is fixed at spawn; state moves
// through idle → approaching → orbiting → attacking (→ fleeing) as the NPC
// acquires and engages hostiles through the same movement and targeting
// commands players use.
type AISystem struct {
	world     *ecs.World
	stores    *component.Stores
	movement  *MovementSystem
	targeting *TargetingSystem
	shields   *ShieldRechargeSystem
}

func NewAISystem(world *ecs.World, stores *component.Stores, movement *MovementSystem, targeting *TargetingSystem, shields *ShieldRechargeSystem) *AISystem {
	return &AISystem{
		world:     world,
		stores:    stores,
		movement:  movement,
		targeting: targeting,
		shields:   shields,
	}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AISystem) Update(_ time.Duration) {
	s.stores.AI.Each(func(id ecs.EntityID, ai *component.AI) {
		pos, ok := s.stores.Position.Get(id)
		if !ok {
			return
		}

		// Target lost: reset to scanning.
		if ai.TargetEntityID != "" && !s.world.HasEntity(ecs.EntityID(ai.TargetEntityID)) {
			ai.TargetEntityID = ""
			ai.State = component.AIStateIdle
			s.movement.CommandStop(id)
		}

		switch ai.State {
		case component.AIStateIdle:
			s.tickIdle(id, ai, pos)
		case component.AIStateApproaching:
			s.tickApproachState(id, ai, pos)
		case component.AIStateOrbiting:
			s.tickOrbitState(id, ai)
		case component.AIStateAttacking:
			s.tickAttackState(id, ai)
		case component.AIStateFleeing:
			if !s.movement.ActiveCommand(id) {
				ai.State = component.AIStateIdle
			}
		}
	})
}

func (s *AISystem) tickIdle(id ecs.EntityID, ai *component.AI, pos *component.Position) {
	switch ai.Behavior {
	case component.BehaviorAggressive, component.BehaviorDefensive, component.BehaviorPatrol:
		target := s.nearestHostile(id, pos, ai.AwarenessRange)
		if target == "" {
			return
		}
		ai.TargetEntityID = string(target)
		ai.State = component.AIStateApproaching
		s.movement.CommandApproach(id, target)
		s.targeting.StartLock(id, target)

	case component.BehaviorMining:
		deposit := s.nearestDeposit(pos)
		if deposit == "" {
			return
		}
		ai.TargetEntityID = string(deposit)
		ai.State = component.AIStateOrbiting
		s.movement.CommandOrbit(id, deposit, 2500)
	}
}

func (s *AISystem) tickApproachState(id ecs.EntityID, ai *component.AI, pos *component.Position) {
	target := ecs.EntityID(ai.TargetEntityID)
	tpos, ok := s.stores.Position.Get(target)
	if !ok {
		ai.TargetEntityID = ""
		ai.State = component.AIStateIdle
		return
	}
	s.targeting.StartLock(id, target)
	if dist3(pos.X, pos.Y, pos.Z, tpos.X, tpos.Y, tpos.Z) <= ai.OrbitDistance*1.5 {
		s.movement.CommandOrbit(id, target, ai.OrbitDistance)
		ai.State = component.AIStateOrbiting
	}
}

func (s *AISystem) tickOrbitState(id ecs.EntityID, ai *component.AI) {
	if ai.Behavior == component.BehaviorMining {
		return // miners hold their orbit
	}
	target := ecs.EntityID(ai.TargetEntityID)
	s.targeting.StartLock(id, target)
	if s.targeting.IsLocked(id, target) {
		ai.State = component.AIStateAttacking
	}
}

func (s *AISystem) tickAttackState(id ecs.EntityID, ai *component.AI) {
	// WeaponSystem does the shooting; the AI only decides to stay or run.
	if ai.Behavior == component.BehaviorDefensive {
		if pct := s.shields.ShieldPercentage(id); pct >= 0 && pct < 25 {
			if pos, ok := s.stores.Position.Get(id); ok {
				if s.movement.CommandWarp(id, pos.X+400000, pos.Y, pos.Z+400000) {
					ai.State = component.AIStateFleeing
					ai.TargetEntityID = ""
				}
			}
		}
	}
}

// nearestHostile finds the closest hostile entity within radius. Faction
// members are never hostile to each other; everyone else is hostile when
// the AI's personal standing toward them is negative, and players are fair
// game to pirate factions by default.
func (s *AISystem) nearestHostile(id ecs.EntityID, pos *component.Position, radius float64) ecs.EntityID {
	var ownFaction string
	if f, ok := s.stores.Faction.Get(id); ok {
		ownFaction = f.FactionName
	}
	standings, _ := s.stores.Standings.Get(id)

	best := ecs.EntityID("")
	bestDist := radius
	s.stores.Position.Each(func(other ecs.EntityID, opos *component.Position) {
		if other == id || !s.stores.Health.Has(other) {
			return
		}
		if s.stores.Wreck.Has(other) || s.stores.Docked.Has(other) {
			return
		}
		if f, ok := s.stores.Faction.Get(other); ok && f.FactionName == ownFaction {
			return
		}

		hostile := s.stores.Player.Has(other)
		if standings != nil {
			if v, ok := standings.Personal[string(other)]; ok && v < 0 {
				hostile = true
			}
		}
		if !hostile {
			return
		}

		d := dist3(pos.X, pos.Y, pos.Z, opos.X, opos.Y, opos.Z)
		if d <= bestDist {
			best = other
			bestDist = d
		}
	})
	return best
}

func (s *AISystem) nearestDeposit(pos *component.Position) ecs.EntityID {
	best := ecs.EntityID("")
	bestDist := float64(1 << 52)
	s.stores.MineralDeposit.Each(func(other ecs.EntityID, dep *component.MineralDeposit) {
		if dep.Remaining <= 0 {
			return
		}
		opos, ok := s.stores.Position.Get(other)
		if !ok {
			return
		}
		d := dist3(pos.X, pos.Y, pos.Z, opos.X, opos.Y, opos.Z)
		if d < bestDist {
			best = other
			bestDist = d
		}
	})
	return best
}
