package system

import (
	"time"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// TargetingSystem runs the per-pair lock state machine: locking (progress
// 0..1 in Target.LockingTargets) → locked (Target.LockedTargets) → removed.
// Lock time is 1000 / scan_resolution seconds.
type TargetingSystem struct {
	world  *ecs.World
	stores *component.Stores
}

func NewTargetingSystem(world *ecs.World, stores *component.Stores) *TargetingSystem {
	return &TargetingSystem{world: world, stores: stores}
}

func (s *TargetingSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// StartLock begins locking target from entity id. Returns false when the
// target does not exist or the entity is at its lock capacity. Starting a
// lock on a pair that is already locking or locked succeeds idempotently.
func (s *TargetingSystem) StartLock(id, targetID ecs.EntityID) bool {
	if !s.world.HasEntity(targetID) || id == targetID {
		return false
	}
	tgt, ok := s.stores.Target.Get(id)
	if !ok {
		return false
	}
	ship, ok := s.stores.Ship.Get(id)
	if !ok {
		return false
	}

	for _, locked := range tgt.LockedTargets {
		if locked == string(targetID) {
			return true
		}
	}
	if _, locking := tgt.LockingTargets[string(targetID)]; locking {
		return true
	}

	if len(tgt.LockedTargets)+len(tgt.LockingTargets) >= ship.MaxLockedTargets {
		return false
	}
	if tgt.LockingTargets == nil {
		tgt.LockingTargets = make(map[string]float64)
	}
	tgt.LockingTargets[string(targetID)] = 0
	return true
}

// UnlockTarget removes target from both collections. Idempotent: unlocking
// an unknown pair is a no-op.
func (s *TargetingSystem) UnlockTarget(id, targetID ecs.EntityID) {
	tgt, ok := s.stores.Target.Get(id)
	if !ok {
		return
	}
	delete(tgt.LockingTargets, string(targetID))
	for i, locked := range tgt.LockedTargets {
		if locked == string(targetID) {
			tgt.LockedTargets = append(tgt.LockedTargets[:i], tgt.LockedTargets[i+1:]...)
			break
		}
	}
}

// IsLocked reports whether id holds a completed lock on targetID.
func (s *TargetingSystem) IsLocked(id, targetID ecs.EntityID) bool {
	tgt, ok := s.stores.Target.Get(id)
	if !ok {
		return false
	}
	for _, locked := range tgt.LockedTargets {
		if locked == string(targetID) {
			return true
		}
	}
	return false
}

func (s *TargetingSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.stores.Target.Each(func(id ecs.EntityID, tgt *component.Target) {
		// Drop references to entities destroyed since last tick.
		kept := tgt.LockedTargets[:0]
		for _, locked := range tgt.LockedTargets {
			if s.world.HasEntity(ecs.EntityID(locked)) {
				kept = append(kept, locked)
			}
		}
		tgt.LockedTargets = kept
		for tid := range tgt.LockingTargets {
			if !s.world.HasEntity(ecs.EntityID(tid)) {
				delete(tgt.LockingTargets, tid)
			}
		}

		ship, ok := s.stores.Ship.Get(id)
		if !ok || ship.ScanResolution <= 0 {
			return
		}
		lockTime := 1000 / ship.ScanResolution

		var completed []string
		for tid := range tgt.LockingTargets {
			tgt.LockingTargets[tid] += sec / lockTime
			if tgt.LockingTargets[tid] >= 1.0 {
				completed = append(completed, tid)
			}
		}
		for _, tid := range completed {
			delete(tgt.LockingTargets, tid)
			tgt.LockedTargets = append(tgt.LockedTargets, tid)
		}
	})
}
