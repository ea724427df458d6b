package system

import (
	"time"

	coresys "github.com/eveoffline/server/internal/core/system"
	"github.com/eveoffline/server/internal/net"
)

// StateBroadcaster produces the end-of-tick state broadcast.
type StateBroadcaster interface {
	BroadcastState()
}

// OutputSystem runs after all simulation systems: it asks the game layer to
// queue the state snapshot for every connected client, then flushes each
// session's buffered output to its writer goroutine in one batch.
type OutputSystem struct {
	server *net.Server
	game   StateBroadcaster
}

func NewOutputSystem(server *net.Server, game StateBroadcaster) *OutputSystem {
	return &OutputSystem{server: server, game: game}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.game.BroadcastState()
	s.server.Sessions().ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
