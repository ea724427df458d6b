package system

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
)

func newCombatFixture() (*ecs.World, *component.Stores, *event.Bus, *CombatSystem) {
	w := ecs.NewWorld()
	stores := component.NewStores(w)
	bus := event.NewBus()
	sys := NewCombatSystem(w, stores, bus, nil, zap.NewNop())
	return w, stores, bus, sys
}

func TestDamageLayersWithResists(t *testing.T) {
	w, stores, _, sys := newCombatFixture()

	assert.NoError(t, w.CreateEntity("victim"))
	h := component.Health{
		HullHP: 100, HullMax: 100,
		ArmorHP: 100, ArmorMax: 100,
		ShieldHP: 50, ShieldMax: 100,
		ShieldResists: component.Resistances{Kinetic: 0.5},
		ArmorResists:  component.Resistances{Kinetic: 0.25},
	}
	stores.Health.Set("victim", &h)

	// 200 raw kinetic: shield soaks 100 raw for its 50 hp at 50% resist,
	// the remaining 100 raw lands on armor at 25% resist for 75 effective.
	sys.QueueDamage(DamagePacket{AttackerID: "shooter", TargetID: "victim", Amount: 200, DamageType: "kinetic"})
	sys.Update(100 * time.Millisecond)

	assert.InDelta(t, 0.0, h.ShieldHP, 1e-9)
	assert.InDelta(t, 25.0, h.ArmorHP, 1e-9)
	assert.InDelta(t, 100.0, h.HullHP, 1e-9)
	assert.True(t, w.HasEntity("victim"))
}

func TestDamageToMissingTargetIsDropped(t *testing.T) {
	_, _, _, sys := newCombatFixture()
	sys.QueueDamage(DamagePacket{AttackerID: "shooter", TargetID: "ghost", Amount: 50, DamageType: "em"})
	sys.Update(100 * time.Millisecond)
}

func TestDestroyLeavesWreckAndEmitsEvent(t *testing.T) {
	w, stores, bus, sys := newCombatFixture()

	assert.NoError(t, w.CreateEntity("victim"))
	stores.Position.Set("victim", &component.Position{X: 1000, Y: 2000, Z: 3000})
	ship := component.DefaultShip()
	ship.Type = "merlin"
	stores.Ship.Set("victim", &ship)
	stores.Health.Set("victim", &component.Health{HullHP: 10, HullMax: 100})
	stores.LootTable.Set("victim", &component.LootTable{
		ISKDrop: 25000,
		Entries: []component.LootEntry{{ItemID: "ammo_hybrid_s", Quantity: 100, Chance: 1.0}},
	})

	var destroyed []event.EntityDestroyed
	event.Subscribe(bus, func(ev event.EntityDestroyed) {
		destroyed = append(destroyed, ev)
	})

	sys.QueueDamage(DamagePacket{AttackerID: "shooter", TargetID: "victim", Amount: 10, DamageType: "kinetic"})
	sys.Update(100 * time.Millisecond)

	// Victim lingers until the destroy queue is flushed at end of tick.
	assert.True(t, w.HasEntity("victim"))
	flushed := w.FlushDestroyQueue()
	assert.Equal(t, []ecs.EntityID{"victim"}, flushed)
	assert.False(t, w.HasEntity("victim"))

	var wreckID ecs.EntityID
	for _, id := range w.Entities() {
		if strings.HasPrefix(string(id), "wreck-") {
			wreckID = id
		}
	}
	assert.NotEmpty(t, wreckID)

	wpos, ok := stores.Position.Get(wreckID)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, wpos.X)

	wreck, ok := stores.Wreck.Get(wreckID)
	assert.True(t, ok)
	assert.Equal(t, "victim", wreck.SourceEntityID)
	assert.Equal(t, "merlin", wreck.SourceShipType)

	inv, ok := stores.Inventory.Get(wreckID)
	assert.True(t, ok)
	assert.Equal(t, []component.InventoryItem{{ItemID: "ammo_hybrid_s", Quantity: 100}}, inv.Items)

	// The event is buffered until the next dispatch cycle.
	bus.DispatchAll()
	assert.Empty(t, destroyed)
	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Len(t, destroyed, 1)
	assert.Equal(t, ecs.EntityID("victim"), destroyed[0].EntityID)
	assert.Equal(t, ecs.EntityID("shooter"), destroyed[0].KillerID)
	assert.Equal(t, wreckID, destroyed[0].WreckID)
	assert.Equal(t, 25000.0, destroyed[0].Bounty)
}

func TestOverflowCarriesRawDamage(t *testing.T) {
	// A layer at 90% resist with 9 hp absorbs 90 raw before breaking.
	hp := 9.0
	carried := applyLayer(&hp, 0.9, 100)
	assert.InDelta(t, 0.0, hp, 1e-9)
	assert.InDelta(t, 10.0, carried, 1e-9)

	// Immune layers stop everything.
	hp = 1
	assert.Zero(t, applyLayer(&hp, 1.0, 500))

	// Empty layers pass damage straight through.
	hp = 0
	assert.Equal(t, 42.0, applyLayer(&hp, 0.5, 42))
}
