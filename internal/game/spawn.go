package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/data"
)

// SeedUniverse creates the static entities for the configured solar system:
// the system marker, its stations and its minable deposits. Celestial
// keep-out spheres are wired into MovementSystem separately at boot.
func (g *Game) SeedUniverse(sys *data.SystemEntry) {
	sysID := ecs.EntityID("system-" + sys.Name)
	if err := g.world.CreateEntity(sysID); err == nil {
		g.stores.SolarSystem.Set(sysID, &component.SolarSystem{
			Name:           sys.Name,
			Region:         sys.Region,
			SecurityStatus: sys.Security,
		})
		g.stores.SystemResources.Set(sysID, &component.SystemResources{
			AsteroidDensity: float64(len(sys.Deposits)),
		})
	}

	for _, cel := range sys.Celestials {
		if cel.Kind != "station" {
			continue
		}
		id := ecs.EntityID("station-" + cel.Name)
		if err := g.world.CreateEntity(id); err != nil {
			continue
		}
		g.stores.Position.Set(id, &component.Position{X: cel.X, Y: cel.Y, Z: cel.Z})
		g.stores.Station.Set(id, &component.Station{
			Name:          cel.Name,
			DockingRadius: cel.Radius,
			Services:      []string{"repair", "market"},
		})
		g.stores.MarketHub.Set(id, &component.MarketHub{Orders: []component.MarketOrder{}})
		g.stores.ContractBoard.Set(id, &component.ContractBoard{Contracts: []component.Contract{}})
	}

	for _, dep := range sys.Deposits {
		id := ecs.EntityID(dep.ID)
		if err := g.world.CreateEntity(id); err != nil {
			continue
		}
		g.stores.Position.Set(id, &component.Position{X: dep.X, Y: dep.Y, Z: dep.Z})
		g.stores.MineralDeposit.Set(id, &component.MineralDeposit{
			OreType:   dep.OreType,
			Remaining: dep.Remaining,
		})
	}

	g.log.Info("universe seeded",
		zap.String("system", sys.Name),
		zap.Int("celestials", len(sys.Celestials)),
		zap.Int("deposits", len(sys.Deposits)),
	)
}

// SpawnNPCs creates the boot roster. Spawn ids are fixed in data, so an id
// already present (loaded from a snapshot) or tombstoned (killed since the
// snapshot) is skipped rather than duplicated or resurrected.
func (g *Game) SpawnNPCs(spawns []data.SpawnEntry) {
	created := 0
	for _, sp := range spawns {
		if err := g.spawnNPC(sp); err != nil {
			g.log.Debug("spawn skipped", zap.String("id", sp.ID), zap.Error(err))
			continue
		}
		created++
	}
	g.log.Info("npc roster spawned", zap.Int("count", created))
}

func (g *Game) spawnNPC(sp data.SpawnEntry) error {
	tmpl := g.ships.Get(sp.ShipType)
	if tmpl == nil {
		return fmt.Errorf("unknown ship type %q", sp.ShipType)
	}
	id := ecs.EntityID(sp.ID)
	if err := g.world.CreateEntity(id); err != nil {
		return err
	}

	g.stores.Position.Set(id, &component.Position{X: sp.X, Y: sp.Y, Z: sp.Z})
	ship := tmpl.Ship(sp.Name)
	g.stores.Ship.Set(id, &ship)
	health := tmpl.Health()
	g.stores.Health.Set(id, &health)
	capac := tmpl.Capacitor()
	g.stores.Capacitor.Set(id, &capac)
	vel := tmpl.Velocity()
	g.stores.Velocity.Set(id, &vel)
	if weapon, ok := tmpl.WeaponComponent(); ok {
		g.stores.Weapon.Set(id, &weapon)
	}
	target := component.DefaultTarget()
	g.stores.Target.Set(id, &target)

	g.stores.Faction.Set(id, &component.Faction{FactionName: sp.Faction})

	ai := component.DefaultAI()
	ai.Behavior = component.Behavior(sp.Behavior)
	if sp.OrbitDistance > 0 {
		ai.OrbitDistance = sp.OrbitDistance
	}
	if sp.AwarenessRange > 0 {
		ai.AwarenessRange = sp.AwarenessRange
	}
	g.stores.AI.Set(id, &ai)

	loot := component.LootTable{ISKDrop: sp.ISKDrop, Entries: make([]component.LootEntry, 0, len(sp.Loot))}
	for _, l := range sp.Loot {
		loot.Entries = append(loot.Entries, component.LootEntry{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Chance:   l.Chance,
		})
	}
	g.stores.LootTable.Set(id, &loot)
	return nil
}
