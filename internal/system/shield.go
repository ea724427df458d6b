package system

import (
	"time"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// ShieldRechargeSystem passively regenerates shields once per tick.
type ShieldRechargeSystem struct {
	stores *component.Stores
}

func NewShieldRechargeSystem(stores *component.Stores) *ShieldRechargeSystem {
	return &ShieldRechargeSystem{stores: stores}
}

func (s *ShieldRechargeSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ShieldRechargeSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.stores.Health.Each(func(_ ecs.EntityID, h *component.Health) {
		h.ShieldHP += h.ShieldRechargeRate * sec
		if h.ShieldHP > h.ShieldMax {
			h.ShieldHP = h.ShieldMax
		}
		if h.ShieldHP < 0 {
			h.ShieldHP = 0
		}
	})
}

// ShieldPercentage returns the shield level in [0,100], or -1 when the
// entity has no health component.
func (s *ShieldRechargeSystem) ShieldPercentage(id ecs.EntityID) float64 {
	h, ok := s.stores.Health.Get(id)
	if !ok {
		return -1
	}
	if h.ShieldMax <= 0 {
		return 0
	}
	return h.ShieldHP / h.ShieldMax * 100
}
