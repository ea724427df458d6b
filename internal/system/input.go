package system

import (
	"time"

	coresys "github.com/eveoffline/server/internal/core/system"
	"github.com/eveoffline/server/internal/net"
)

// MessageHandler is the game-layer surface InputSystem drives. All calls
// happen on the tick goroutine.
type MessageHandler interface {
	HandleMessage(sess *net.Session, raw []byte)
	HandleDisconnect(sess *net.Session)
}

// InputSystem drains client input queues at the start of every tick. It is
// the only place session input crosses into game state, which keeps the
// world single-threaded: network goroutines enqueue, this system applies.
type InputSystem struct {
	server  *net.Server
	handler MessageHandler

	// Per-session fairness cap so one chatty client cannot monopolize a tick.
	maxPerTick int
}

func NewInputSystem(server *net.Server, handler MessageHandler, maxPerTick int) *InputSystem {
	if maxPerTick <= 0 {
		maxPerTick = 32
	}
	return &InputSystem{
		server:     server,
		handler:    handler,
		maxPerTick: maxPerTick,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Drain the accept handoff. Nothing to do until the client sends CONNECT,
	// but draining keeps the accept loop from refusing clients.
accepted:
	for {
		select {
		case <-s.server.NewSessions():
		default:
			break accepted
		}
	}

	s.server.Sessions().ForEach(func(sess *net.Session) {
		if sess.IsClosed() {
			// Apply whatever the client managed to send before dropping, then
			// tear the session down.
			s.drainAll(sess)
			s.handler.HandleDisconnect(sess)
			s.server.Sessions().Remove(sess.ID)
			return
		}
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case raw := <-sess.InQueue:
				s.handler.HandleMessage(sess, raw)
			default:
				return
			}
		}
	})
}

func (s *InputSystem) drainAll(sess *net.Session) {
	for {
		select {
		case raw := <-sess.InQueue:
			s.handler.HandleMessage(sess, raw)
		default:
			return
		}
	}
}
