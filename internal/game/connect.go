package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/protocol"
)

func (g *Game) handleConnect(sess *net.Session, rawData string) {
	if sess.EntityID != "" {
		sess.Send(protocol.Error("already connected"))
		return
	}

	var req protocol.ConnectData
	if rawData != "" {
		if err := json.Unmarshal([]byte(rawData), &req); err != nil {
			sess.Send(protocol.ConnectAck(false, "", "malformed connect payload"))
			return
		}
	}
	if req.PlayerID == "" {
		sess.Send(protocol.ConnectAck(false, "", "player_id is required"))
		return
	}
	if other, ok := g.byPlayerID[req.PlayerID]; ok && !other.IsClosed() {
		sess.Send(protocol.ConnectAck(false, "", "player already connected"))
		return
	}

	name := req.CharacterName
	if name == "" {
		name = fmt.Sprintf("Capsuleer-%d", sess.ID)
	}
	if max := g.cfg.Game.NameMaxLen; max > 0 {
		name = truncateUTF8(name, max)
	}

	entityID := ecs.EntityID("player-" + uuid.NewString())
	if err := g.world.CreateEntity(entityID); err != nil {
		// uuid collision does not happen in practice
		sess.Send(protocol.ConnectAck(false, "", "internal error"))
		return
	}
	g.outfitPlayer(entityID, req.PlayerID, name)

	sess.EntityID = string(entityID)
	sess.CharName = name
	g.byPlayerID[req.PlayerID] = sess
	g.markOnline(req.PlayerID, sess.IP, true)

	motd := g.cfg.Server.MOTD
	if g.lua != nil {
		motd = g.lua.OnPlayerConnect(name, motd)
	}
	sess.Send(protocol.ConnectAck(true, string(entityID), motd))

	// Roster replay: the new client learns every entity already in space
	// before anyone is told about the newcomer.
	for _, id := range g.world.Entities() {
		if id == entityID {
			continue
		}
		if !g.wireVisible(id) {
			continue
		}
		sess.Send(protocol.SpawnEntity(g.spawnData(id)))
	}

	g.broadcastExcept(sess, protocol.SpawnEntity(g.spawnData(entityID)))

	event.Emit(g.bus, event.PlayerJoined{
		EntityID:      entityID,
		PlayerID:      req.PlayerID,
		CharacterName: name,
	})

	g.log.Info("player connected",
		zap.Uint64("session", sess.ID),
		zap.String("player", req.PlayerID),
		zap.String("character", name),
		zap.String("entity", string(entityID)),
	)
}

// outfitPlayer attaches a full starter loadout to a fresh player entity.
func (g *Game) outfitPlayer(id ecs.EntityID, playerID, name string) {
	tmpl := g.ships.Get(g.cfg.Game.StarterShip)
	if tmpl == nil {
		tmpl = g.ships.Get("shuttle")
	}

	pos := component.Position{X: 0, Y: 0, Z: 200000}
	g.stores.Position.Set(id, &pos)

	if tmpl != nil {
		ship := tmpl.Ship(name + "'s " + tmpl.Type)
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
		inv := component.DefaultInventory()
		inv.MaxCapacity = tmpl.CargoCapacity
		g.stores.Inventory.Set(id, &inv)
	} else {
		health := component.DefaultHealth()
		g.stores.Health.Set(id, &health)
		capac := component.DefaultCapacitor()
		g.stores.Capacitor.Set(id, &capac)
		g.stores.Velocity.Set(id, &component.Velocity{MaxSpeed: 300})
		inv := component.DefaultInventory()
		g.stores.Inventory.Set(id, &inv)
	}

	target := component.DefaultTarget()
	g.stores.Target.Set(id, &target)
	standings := component.DefaultStandings()
	g.stores.Standings.Set(id, &standings)
	g.stores.Player.Set(id, &component.Player{
		PlayerID:      playerID,
		CharacterName: name,
		ISK:           g.cfg.Game.StarterISK,
	})
}
