package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/persist"
	"github.com/eveoffline/server/internal/protocol"
)

func (g *Game) subscribeEvents() {
	event.Subscribe(g.bus, g.onEntityDestroyed)
}

// onEntityDestroyed pays the kill bounty. It runs one tick after the kill,
// via the event bus, so combat resolution never mutates wallets mid-fight.
func (g *Game) onEntityDestroyed(ev event.EntityDestroyed) {
	if ev.KillerID == "" || ev.Bounty <= 0 {
		return
	}
	player, ok := g.stores.Player.Get(ev.KillerID)
	if !ok {
		return
	}
	player.ISK += ev.Bounty

	g.log.Info("bounty awarded",
		zap.String("killer", string(ev.KillerID)),
		zap.String("victim", string(ev.EntityID)),
		zap.Float64("isk", ev.Bounty),
	)

	if sess := g.byPlayerID[player.PlayerID]; sess != nil {
		sess.Send(protocol.Chat("CONCORD",
			fmt.Sprintf("Bounty of %.2f ISK awarded for %s", ev.Bounty, ev.ShipType)))
	}
}

// saveCharacter writes one player's state to the database, when enabled.
// First save provisions the account and character rows; the account name is
// the client's player id, with a throwaway password until real auth exists.
func (g *Game) saveCharacter(id ecs.EntityID, player *component.Player) {
	if g.characters == nil {
		return
	}
	row := g.characterRow(id, player)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := g.ensureCharacter(ctx, player, row); err != nil {
		g.log.Error("character provisioning failed",
			zap.String("character", player.CharacterName),
			zap.Error(err),
		)
		return
	}
	if err := g.characters.SaveCharacter(ctx, row); err != nil {
		g.log.Error("character save failed",
			zap.String("character", player.CharacterName),
			zap.Error(err),
		)
		return
	}
	if inv, ok := g.stores.Inventory.Get(id); ok {
		if err := g.characters.SaveInventory(ctx, player.CharacterName, inv.Items); err != nil {
			g.log.Error("inventory save failed",
				zap.String("character", player.CharacterName),
				zap.Error(err),
			)
		}
	}
}

// markOnline flips the account's online flag, provisioning the account row
// on first sight of the player id.
func (g *Game) markOnline(playerID, ip string, online bool) {
	if g.accounts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	acct, err := g.accounts.Load(ctx, playerID)
	if err != nil {
		g.log.Error("account lookup failed", zap.String("account", playerID), zap.Error(err))
		return
	}
	if acct == nil {
		if !online {
			return
		}
		if _, err := g.accounts.Create(ctx, playerID, uuid.NewString(), ip); err != nil {
			g.log.Error("account create failed", zap.String("account", playerID), zap.Error(err))
			return
		}
	}
	if err := g.accounts.SetOnline(ctx, playerID, online); err != nil {
		g.log.Error("account online flag update failed", zap.String("account", playerID), zap.Error(err))
	}
	if online {
		if err := g.accounts.UpdateLastActive(ctx, playerID, ip); err != nil {
			g.log.Error("account last-active update failed", zap.String("account", playerID), zap.Error(err))
		}
	}
}

// ensureCharacter creates the account and character rows on first save.
func (g *Game) ensureCharacter(ctx context.Context, player *component.Player, row *persist.CharacterRow) error {
	existing, err := g.characters.LoadByName(ctx, player.CharacterName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if g.accounts != nil {
		acct, err := g.accounts.Load(ctx, player.PlayerID)
		if err != nil {
			return err
		}
		if acct == nil {
			if _, err := g.accounts.Create(ctx, player.PlayerID, uuid.NewString(), ""); err != nil {
				return err
			}
		}
	}

	row.AccountName = player.PlayerID
	return g.characters.Create(ctx, row)
}

// SaveCharacters flushes every connected player to the database. Registered
// with PersistenceSystem so it runs on the autosave cadence.
func (g *Game) SaveCharacters() error {
	if g.characters == nil {
		return nil
	}
	g.server.Sessions().ForEach(func(sess *net.Session) {
		if sess.EntityID == "" {
			return
		}
		id := ecs.EntityID(sess.EntityID)
		if player, ok := g.stores.Player.Get(id); ok {
			g.saveCharacter(id, player)
		}
	})
	return nil
}

func (g *Game) characterRow(id ecs.EntityID, player *component.Player) *persist.CharacterRow {
	row := &persist.CharacterRow{
		Name:        player.CharacterName,
		Corporation: player.Corporation,
		ISK:         player.ISK,
		SolarSystem: g.cfg.Server.SystemName,
	}
	if ship, ok := g.stores.Ship.Get(id); ok {
		row.ShipType = ship.Type
	}
	if pos, ok := g.stores.Position.Get(id); ok {
		row.X, row.Y, row.Z = pos.X, pos.Y, pos.Z
	}
	return row
}
