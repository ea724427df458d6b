package game

import (
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/config"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	"github.com/eveoffline/server/internal/data"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/persist"
	"github.com/eveoffline/server/internal/protocol"
	"github.com/eveoffline/server/internal/scripting"
	"github.com/eveoffline/server/internal/system"
)

// Game is the session layer between the wire protocol and the world. All of
// its methods run on the tick goroutine; InputSystem feeds it messages and
// OutputSystem asks it for the end-of-tick broadcast.
type Game struct {
	world  *ecs.World
	stores *component.Stores
	cfg    *config.Config
	ships  *data.ShipTable
	bus    *event.Bus
	lua    *scripting.Engine
	server *net.Server
	log    *zap.Logger

	movement *system.MovementSystem

	// Optional, nil when the database is disabled.
	accounts   *persist.AccountRepo
	characters *persist.CharacterRepo

	// Connected player sessions by client-supplied player id, for the
	// duplicate-connect guard.
	byPlayerID map[string]*net.Session
}

func NewGame(
	world *ecs.World,
	stores *component.Stores,
	cfg *config.Config,
	ships *data.ShipTable,
	bus *event.Bus,
	lua *scripting.Engine,
	server *net.Server,
	movement *system.MovementSystem,
	log *zap.Logger,
) *Game {
	g := &Game{
		world:      world,
		stores:     stores,
		cfg:        cfg,
		ships:      ships,
		bus:        bus,
		lua:        lua,
		server:     server,
		movement:   movement,
		log:        log,
		byPlayerID: make(map[string]*net.Session),
	}
	g.subscribeEvents()
	return g
}

// SetRepos enables database-backed account and character persistence.
func (g *Game) SetRepos(accounts *persist.AccountRepo, characters *persist.CharacterRepo) {
	g.accounts = accounts
	g.characters = characters
}

// HandleMessage dispatches one raw client line. Malformed envelopes get an
// error reply; unknown message types are ignored so older clients keep
// working against newer servers.
func (g *Game) HandleMessage(sess *net.Session, raw []byte) {
	msg, err := protocol.ParseMessage(raw)
	if err != nil {
		g.log.Debug("malformed message",
			zap.Uint64("session", sess.ID),
			zap.Error(err),
		)
		sess.Send(protocol.Error("malformed message"))
		return
	}

	switch msg.Type {
	case protocol.MsgConnect:
		g.handleConnect(sess, msg.Data)
	case protocol.MsgDisconnect:
		sess.Close()
	case protocol.MsgInputMove:
		g.handleInputMove(sess, msg.Data)
	case protocol.MsgChat:
		g.handleChat(sess, msg.Data)
	default:
		g.log.Debug("unknown message type",
			zap.Uint64("session", sess.ID),
			zap.String("type", msg.Type),
		)
	}
}

// HandleDisconnect tears down a dropped session: save the character if the
// database is on, remove the ship from the world, tell everyone else.
func (g *Game) HandleDisconnect(sess *net.Session) {
	if sess.EntityID == "" {
		return
	}
	id := ecs.EntityID(sess.EntityID)

	if player, ok := g.stores.Player.Get(id); ok {
		delete(g.byPlayerID, player.PlayerID)
		g.saveCharacter(id, player)
		g.markOnline(player.PlayerID, sess.IP, false)
	}

	g.log.Info("player disconnected",
		zap.Uint64("session", sess.ID),
		zap.String("entity", sess.EntityID),
		zap.String("character", sess.CharName),
	)

	// CleanupSystem destroys the entity at tick end and broadcasts it.
	g.world.MarkForDestruction(id)
	sess.EntityID = ""
	sess.CharName = ""
}
