package system

import (
	"time"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// CapacitorSystem passively recharges every capacitor once per tick.
// ConsumeCapacitor is the only other mutating entry point.
type CapacitorSystem struct {
	stores *component.Stores
}

func NewCapacitorSystem(stores *component.Stores) *CapacitorSystem {
	return &CapacitorSystem{stores: stores}
}

func (s *CapacitorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CapacitorSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.stores.Capacitor.Each(func(_ ecs.EntityID, c *component.Capacitor) {
		c.Capacitor += c.RechargeRate * sec
		if c.Capacitor > c.CapacitorMax {
			c.Capacitor = c.CapacitorMax
		}
		if c.Capacitor < 0 {
			c.Capacitor = 0
		}
	})
}

// ConsumeCapacitor spends amount from the entity's capacitor. Returns false
// without mutating when the entity has no capacitor or the charge is
// insufficient. A refusal, never an error.
func (s *CapacitorSystem) ConsumeCapacitor(id ecs.EntityID, amount float64) bool {
	c, ok := s.stores.Capacitor.Get(id)
	if !ok {
		return false
	}
	if amount < 0 || amount > c.Capacitor {
		return false
	}
	c.Capacitor -= amount
	return true
}

// CapacitorPercentage returns the charge in [0,100], or -1 when the entity
// has no capacitor component (sentinel, not an error).
func (s *CapacitorSystem) CapacitorPercentage(id ecs.EntityID) float64 {
	c, ok := s.stores.Capacitor.Get(id)
	if !ok {
		return -1
	}
	if c.CapacitorMax <= 0 {
		return 0
	}
	return c.Capacitor / c.CapacitorMax * 100
}
