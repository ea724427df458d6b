package net

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Session represents a single client connection. Network I/O runs in the
// session's own reader and writer goroutines; game state is accessed only
// from the tick goroutine. The reader never touches the world, it only
// pushes raw lines onto InQueue for InputSystem to drain.
type Session struct {
	ID   uint64
	conn net.Conn

	InQueue  chan []byte // tick goroutine reads raw lines from here
	OutQueue chan []byte // writer goroutine reads from here

	IP string

	// Set by GameSession on the tick goroutine after a successful CONNECT.
	EntityID string
	CharName string

	outBuf [][]byte // buffered messages, flushed by OutputSystem (tick goroutine only)

	maxLine      int
	writeTimeout time.Duration

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	wg        sync.WaitGroup

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, inSize, outSize, maxLine int, writeTimeout time.Duration, log *zap.Logger) *Session {
	return &Session{
		ID:           id,
		conn:         conn,
		InQueue:      make(chan []byte, inSize),
		OutQueue:     make(chan []byte, outSize),
		IP:           conn.RemoteAddr().String(),
		maxLine:      maxLine,
		writeTimeout: writeTimeout,
		closeCh:      make(chan struct{}),
		log:          log.With(zap.Uint64("session", id)),
	}
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	s.wg.Add(2)
	go s.readLoop()
	go s.writeLoop()
}

// Send buffers a message for sending. Nothing is written to TCP until
// FlushOutput is called by OutputSystem. Tick goroutine only.
func (s *Session) Send(data []byte) {
	if s.closed.Load() {
		return
	}
	s.outBuf = append(s.outBuf, data)
}

// FlushOutput drains the output buffer to OutQueue for the writer goroutine.
// Non-blocking: if OutQueue is full the session is disconnected rather than
// stalling the tick (backpressure on slow clients).
func (s *Session) FlushOutput() {
	for _, data := range s.outBuf {
		select {
		case s.OutQueue <- data:
		default:
			s.log.Warn("output queue full, dropping slow client")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

// Close shuts the session down. Closing the socket unblocks the reader's
// pending Read, which is the only cancellation the loops need.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Wait blocks until both I/O goroutines have exited. Call after Close.
func (s *Session) Wait() {
	s.wg.Wait()
}

// readLoop reads newline-delimited messages and pushes them onto InQueue.
// A malformed or disconnecting client only ever terminates its own loop.
func (s *Session) readLoop() {
	defer s.wg.Done()
	defer s.Close()

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 4096), s.maxLine)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		// Scanner reuses its buffer; the queue needs a stable copy.
		msg := make([]byte, len(line))
		copy(msg, line)

		// Block until InQueue has space or the session closes. The reader
		// goroutine is per-session, so this only ever stalls this client.
		select {
		case s.InQueue <- msg:
		case <-s.closeCh:
			return
		}
	}
	if err := scanner.Err(); err != nil && !s.closed.Load() {
		s.log.Debug("read error", zap.Error(err))
	}
}

// writeLoop drains OutQueue and writes framed messages to the socket.
func (s *Session) writeLoop() {
	defer s.wg.Done()
	defer s.Close()

	for {
		select {
		case data := <-s.OutQueue:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := WriteLine(s.conn, data); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
