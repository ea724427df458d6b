package game

import (
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/protocol"
)

// broadcast buffers data on every connected player session.
func (g *Game) broadcast(data []byte) {
	g.server.Sessions().ForEach(func(sess *net.Session) {
		if sess.EntityID == "" {
			return
		}
		sess.Send(data)
	})
}

func (g *Game) broadcastExcept(skip *net.Session, data []byte) {
	g.server.Sessions().ForEach(func(sess *net.Session) {
		if sess == skip || sess.EntityID == "" {
			return
		}
		sess.Send(data)
	})
}

// BroadcastState queues the full world snapshot for every connected client.
// Every wire-visible entity is included, carrying whichever of position,
// velocity and health it has; clients diff locally. Pure bookkeeping
// entities such as system markers carry none of the three and stay off
// the wire.
func (g *Game) BroadcastState() {
	ids := g.world.Entities()
	entities := make([]protocol.EntityState, 0, len(ids))
	for _, id := range ids {
		if !g.wireVisible(id) {
			continue
		}
		st := protocol.EntityState{ID: string(id)}
		if pos, ok := g.stores.Position.Get(id); ok {
			st.Pos = &protocol.PosState{
				X: pos.X, Y: pos.Y, Z: pos.Z, Rotation: pos.Rotation,
			}
		}
		if vel, ok := g.stores.Velocity.Get(id); ok {
			st.Vel = &protocol.VelState{VX: vel.VX, VY: vel.VY, VZ: vel.VZ}
		}
		if h, ok := g.stores.Health.Get(id); ok {
			st.Health = &protocol.HealthState{
				ShieldHP: h.ShieldHP, ShieldMax: h.ShieldMax,
				ArmorHP: h.ArmorHP, ArmorMax: h.ArmorMax,
				HullHP: h.HullHP, HullMax: h.HullMax,
			}
		}
		entities = append(entities, st)
	}
	if len(entities) == 0 {
		return
	}
	g.broadcast(protocol.StateUpdate(entities))
}

// wireVisible reports whether an entity belongs in client-facing traffic.
// Anything with a position, velocity or health is game state the client
// renders; entities with none of the three are server-side bookkeeping.
func (g *Game) wireVisible(id ecs.EntityID) bool {
	return g.stores.Position.Has(id) || g.stores.Velocity.Has(id) || g.stores.Health.Has(id)
}

// BroadcastSpawn tells every connected client about a newly created entity.
func (g *Game) BroadcastSpawn(id ecs.EntityID) {
	g.broadcast(protocol.SpawnEntity(g.spawnData(id)))
}

// BroadcastDestroy tells every connected client an entity is gone.
func (g *Game) BroadcastDestroy(id ecs.EntityID) {
	g.broadcast(protocol.DestroyEntity(string(id)))
}

func (g *Game) spawnData(id ecs.EntityID) protocol.SpawnEntityData {
	d := protocol.SpawnEntityData{EntityID: string(id)}
	if pos, ok := g.stores.Position.Get(id); ok {
		d.Position = &protocol.PosState{X: pos.X, Y: pos.Y, Z: pos.Z, Rotation: pos.Rotation}
	}
	if h, ok := g.stores.Health.Get(id); ok {
		d.Health = &protocol.HealthState{
			ShieldHP: h.ShieldHP, ShieldMax: h.ShieldMax,
			ArmorHP: h.ArmorHP, ArmorMax: h.ArmorMax,
			HullHP: h.HullHP, HullMax: h.HullMax,
		}
	}
	if ship, ok := g.stores.Ship.Get(id); ok {
		d.ShipType = ship.Type
		d.ShipName = ship.Name
	}
	if f, ok := g.stores.Faction.Get(id); ok {
		d.Faction = f.FactionName
	}
	return d
}
