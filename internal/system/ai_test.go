package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
)

func newAIFixture() (*ecs.World, *component.Stores, *MovementSystem, *TargetingSystem, *AISystem) {
	w := ecs.NewWorld()
	stores := component.NewStores(w)
	movement := NewMovementSystem(w, stores, zap.NewNop())
	targeting := NewTargetingSystem(w, stores)
	shields := NewShieldRechargeSystem(stores)
	ai := NewAISystem(w, stores, movement, targeting, shields)
	return w, stores, movement, targeting, ai
}

func spawnPirate(t *testing.T, w *ecs.World, stores *component.Stores, id ecs.EntityID, behavior component.Behavior) *component.AI {
	t.Helper()
	assert.NoError(t, w.CreateEntity(id))
	stores.Position.Set(id, &component.Position{X: 10000})
	stores.Velocity.Set(id, &component.Velocity{MaxSpeed: 300})
	h := component.DefaultHealth()
	stores.Health.Set(id, &h)
	ship := component.DefaultShip()
	ship.MaxLockedTargets = 4
	stores.Ship.Set(id, &ship)
	tgt := component.DefaultTarget()
	stores.Target.Set(id, &tgt)
	stores.Faction.Set(id, &component.Faction{FactionName: "guristas"})
	aiComp := component.DefaultAI()
	aiComp.Behavior = behavior
	stores.AI.Set(id, &aiComp)
	return &aiComp
}

func spawnVictim(t *testing.T, w *ecs.World, stores *component.Stores, id ecs.EntityID, x float64) {
	t.Helper()
	assert.NoError(t, w.CreateEntity(id))
	stores.Position.Set(id, &component.Position{X: x})
	h := component.DefaultHealth()
	stores.Health.Set(id, &h)
	stores.Player.Set(id, &component.Player{PlayerID: string(id)})
}

func TestAggressiveNPCAcquiresNearestPlayer(t *testing.T) {
	w, stores, movement, _, ai := newAIFixture()

	pirate := spawnPirate(t, w, stores, "pirate", component.BehaviorAggressive)
	spawnVictim(t, w, stores, "far-player", 60000)
	spawnVictim(t, w, stores, "near-player", 12000)

	ai.Update(100 * time.Millisecond)

	assert.Equal(t, "near-player", pirate.TargetEntityID)
	assert.Equal(t, component.AIStateApproaching, pirate.State)
	assert.True(t, movement.ActiveCommand("pirate"))
}

func TestNPCIgnoresOwnFactionAndWrecks(t *testing.T) {
	w, stores, _, _, ai := newAIFixture()

	pirate := spawnPirate(t, w, stores, "pirate", component.BehaviorAggressive)

	// Same faction, in range, but never a target.
	assert.NoError(t, w.CreateEntity("wingman"))
	stores.Position.Set("wingman", &component.Position{X: 11000})
	h := component.DefaultHealth()
	stores.Health.Set("wingman", &h)
	stores.Faction.Set("wingman", &component.Faction{FactionName: "guristas"})
	stores.Player.Set("wingman", &component.Player{PlayerID: "w"})

	assert.NoError(t, w.CreateEntity("old-wreck"))
	stores.Position.Set("old-wreck", &component.Position{X: 10500})
	h2 := component.DefaultHealth()
	stores.Health.Set("old-wreck", &h2)
	stores.Wreck.Set("old-wreck", &component.Wreck{})
	stores.Player.Set("old-wreck", &component.Player{PlayerID: "x"})

	ai.Update(100 * time.Millisecond)

	assert.Equal(t, component.AIStateIdle, pirate.State)
	assert.Empty(t, pirate.TargetEntityID)
}

func TestNPCAttacksOnceLocked(t *testing.T) {
	w, stores, _, targeting, ai := newAIFixture()

	pirate := spawnPirate(t, w, stores, "pirate", component.BehaviorAggressive)
	spawnVictim(t, w, stores, "player", 12000)

	ai.Update(100 * time.Millisecond)
	assert.Equal(t, component.AIStateApproaching, pirate.State)

	// Close the range so the approach hands over to orbit.
	pos, _ := stores.Position.Get("pirate")
	ppos, _ := stores.Position.Get("player")
	pos.X = ppos.X + pirate.OrbitDistance

	ai.Update(100 * time.Millisecond)
	assert.Equal(t, component.AIStateOrbiting, pirate.State)

	// Lock time at scan resolution 500 is two seconds.
	targeting.Update(2 * time.Second)
	ai.Update(100 * time.Millisecond)
	assert.Equal(t, component.AIStateAttacking, pirate.State)
}

func TestDefensiveNPCFleesOnLowShield(t *testing.T) {
	w, stores, movement, _, ai := newAIFixture()

	pirate := spawnPirate(t, w, stores, "pirate", component.BehaviorDefensive)
	spawnVictim(t, w, stores, "player", 12000)

	pirate.State = component.AIStateAttacking
	pirate.TargetEntityID = "player"

	h, _ := stores.Health.Get("pirate")
	h.ShieldHP = 10 // 10% of a 100 point shield

	ai.Update(100 * time.Millisecond)

	assert.Equal(t, component.AIStateFleeing, pirate.State)
	assert.Empty(t, pirate.TargetEntityID)
	assert.True(t, movement.ActiveCommand("pirate"), "warp out in progress")

	// Warp command winds down, the NPC goes back to scanning.
	for i := 0; i < 2000; i++ {
		movement.Update(100 * time.Millisecond)
	}
	assert.False(t, movement.ActiveCommand("pirate"))
	ai.Update(100 * time.Millisecond)
	assert.Equal(t, component.AIStateIdle, pirate.State)
}

func TestMiningNPCOrbitsNearestDeposit(t *testing.T) {
	w, stores, movement, _, ai := newAIFixture()

	miner := spawnPirate(t, w, stores, "miner", component.BehaviorMining)

	assert.NoError(t, w.CreateEntity("belt-1"))
	stores.Position.Set("belt-1", &component.Position{X: 30000})
	stores.MineralDeposit.Set("belt-1", &component.MineralDeposit{OreType: "veldspar", Remaining: 10000})

	assert.NoError(t, w.CreateEntity("belt-2"))
	stores.Position.Set("belt-2", &component.Position{X: 15000})
	stores.MineralDeposit.Set("belt-2", &component.MineralDeposit{OreType: "veldspar", Remaining: 0})

	ai.Update(100 * time.Millisecond)

	assert.Equal(t, "belt-1", miner.TargetEntityID, "empty deposits are skipped")
	assert.Equal(t, component.AIStateOrbiting, miner.State)
	assert.True(t, movement.ActiveCommand("miner"))

	// Miners hold their orbit; no lock, no attack.
	ai.Update(100 * time.Millisecond)
	assert.Equal(t, component.AIStateOrbiting, miner.State)
}
