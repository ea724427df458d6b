package system

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	coresys "github.com/eveoffline/server/internal/core/system"
	"github.com/eveoffline/server/internal/scripting"
)

// Broadcaster lets systems announce entity lifecycle to connected clients
// without depending on the game session package.
type Broadcaster interface {
	BroadcastSpawn(id ecs.EntityID)
	BroadcastDestroy(id ecs.EntityID)
}

// DamagePacket is one resolved weapon hit waiting to be applied.
type DamagePacket struct {
	AttackerID ecs.EntityID
	TargetID   ecs.EntityID
	Amount     float64
	DamageType string
}

// CombatSystem applies queued damage shield → armor → hull with per-layer
// resistances, and turns dead ships into wrecks.
type CombatSystem struct {
	world       *ecs.World
	stores      *component.Stores
	bus         *event.Bus
	lua         *scripting.Engine
	broadcaster Broadcaster
	queue       []DamagePacket
	rng         *rand.Rand
	log         *zap.Logger
}

func NewCombatSystem(world *ecs.World, stores *component.Stores, bus *event.Bus, lua *scripting.Engine, log *zap.Logger) *CombatSystem {
	return &CombatSystem{
		world:  world,
		stores: stores,
		bus:    bus,
		lua:    lua,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log,
	}
}

// SetBroadcaster wires the game session in after construction (the session
// is built later in boot order).
func (s *CombatSystem) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// QueueDamage enqueues a hit for this tick. Called by WeaponSystem, which
// runs earlier in the same phase.
func (s *CombatSystem) QueueDamage(p DamagePacket) {
	s.queue = append(s.queue, p)
}

func (s *CombatSystem) Update(_ time.Duration) {
	for _, p := range s.queue {
		if !s.world.HasEntity(p.TargetID) {
			continue
		}
		h, ok := s.stores.Health.Get(p.TargetID)
		if !ok {
			continue
		}

		remaining := applyLayer(&h.ShieldHP, resistFor(h.ShieldResists, p.DamageType), p.Amount)
		remaining = applyLayer(&h.ArmorHP, resistFor(h.ArmorResists, p.DamageType), remaining)
		applyLayer(&h.HullHP, resistFor(h.HullResists, p.DamageType), remaining)

		if h.HullHP <= 0 {
			s.destroy(p.TargetID, p.AttackerID)
		}
	}
	s.queue = s.queue[:0]
}

// destroy marks the victim for end-of-tick cleanup, spawns its wreck with
// rolled loot, and emits EntityDestroyed for next tick's dispatch.
func (s *CombatSystem) destroy(victimID, killerID ecs.EntityID) {
	shipType := ""
	if ship, ok := s.stores.Ship.Get(victimID); ok {
		shipType = ship.Type
	}

	var iskDrop float64
	loot := []component.InventoryItem{}
	if table, ok := s.stores.LootTable.Get(victimID); ok {
		iskDrop = table.ISKDrop
		for _, entry := range table.Entries {
			if s.rng.Float64() <= entry.Chance {
				loot = append(loot, component.InventoryItem{
					ItemID:   entry.ItemID,
					Quantity: entry.Quantity,
				})
			}
		}
	}

	wreckID := ecs.EntityID("wreck-" + uuid.NewString())
	if err := s.world.CreateEntity(wreckID); err != nil {
		s.log.Error("wreck spawn failed", zap.String("id", string(wreckID)), zap.Error(err))
		wreckID = ""
	} else {
		if pos, ok := s.stores.Position.Get(victimID); ok {
			p := *pos
			s.stores.Position.Set(wreckID, &p)
		}
		s.stores.Wreck.Set(wreckID, &component.Wreck{
			SourceEntityID: string(victimID),
			SourceShipType: shipType,
		})
		s.stores.Inventory.Set(wreckID, &component.Inventory{
			MaxCapacity: 500,
			Items:       loot,
		})
		if s.broadcaster != nil {
			s.broadcaster.BroadcastSpawn(wreckID)
		}
	}

	bounty := iskDrop
	if s.lua != nil {
		bounty = s.lua.CalcBounty(shipType, iskDrop)
	}

	s.world.MarkForDestruction(victimID)
	event.Emit(s.bus, event.EntityDestroyed{
		EntityID: victimID,
		KillerID: killerID,
		ShipType: shipType,
		WreckID:  wreckID,
		Bounty:   bounty,
	})

	s.log.Info("entity destroyed",
		zap.String("victim", string(victimID)),
		zap.String("killer", string(killerID)),
		zap.String("ship", shipType),
	)
}

// applyLayer applies raw damage to one hp layer after resistances and
// returns the raw damage carried into the next layer.
func applyLayer(hp *float64, resist, raw float64) float64 {
	if raw <= 0 || *hp <= 0 {
		return raw
	}
	if resist >= 1 {
		return 0 // immune layer absorbs everything
	}
	effective := raw * (1 - resist)
	if *hp > effective {
		*hp -= effective
		return 0
	}
	absorbedRaw := *hp / (1 - resist)
	*hp = 0
	return raw - absorbedRaw
}

func resistFor(r component.Resistances, damageType string) float64 {
	switch damageType {
	case "em":
		return r.EM
	case "thermal":
		return r.Thermal
	case "kinetic":
		return r.Kinetic
	case "explosive":
		return r.Explosive
	default:
		return 0
	}
}
