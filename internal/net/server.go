package net

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Server accepts TCP connections and creates Sessions. New sessions are
// handed to the tick goroutine over a channel; the tick side discovers dead
// sessions by their closed flag while draining input.
type Server struct {
	listener net.Listener
	store    *SessionStore
	nextID   atomic.Uint64
	newConns chan *Session

	maxConns     int
	inSize       int
	outSize      int
	maxLine      int
	writeTimeout time.Duration

	closeCh chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewServer binds the listening socket. A bind failure is the one fatal
// startup error in the networking layer.
func NewServer(bindAddr string, maxConns, inSize, outSize, maxLine int, writeTimeout time.Duration, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", bindAddr, err)
	}
	return &Server{
		listener:     ln,
		store:        NewSessionStore(),
		newConns:     make(chan *Session, 64),
		maxConns:     maxConns,
		inSize:       inSize,
		outSize:      outSize,
		maxLine:      maxLine,
		writeTimeout: writeTimeout,
		closeCh:      make(chan struct{}),
		log:          log,
	}, nil
}

// Start launches the accept loop on its own goroutine.
func (s *Server) Start() {
	s.wg.Add(1)
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return // server shutting down
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		if s.maxConns > 0 && s.store.Count() >= s.maxConns {
			s.log.Warn("connection limit reached, refusing client",
				zap.String("ip", conn.RemoteAddr().String()),
			)
			conn.Close()
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.inSize, s.outSize, s.maxLine, s.writeTimeout, s.log)
		sess.Start()
		s.store.Add(sess)

		s.log.Info("client connected",
			zap.Uint64("session", id),
			zap.String("ip", sess.IP),
		)

		select {
		case s.newConns <- sess:
		default:
			s.log.Warn("new connection queue full, refusing client")
			s.store.Remove(id)
			sess.Close()
		}
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Sessions returns the shared client table.
func (s *Server) Sessions() *SessionStore {
	return s.store
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop closes the listening socket (unblocking accept), joins the accept
// goroutine, then closes every client socket and joins their loops. The
// accept join comes first: once it returns no new session can be added, so
// the store sweep cannot miss a connection accepted mid-shutdown.
func (s *Server) Stop() {
	close(s.closeCh)
	s.listener.Close()
	s.wg.Wait()
	s.store.ForEach(func(sess *Session) {
		sess.Close()
	})
	s.store.ForEach(func(sess *Session) {
		sess.Wait()
	})
}
