package system

import (
	"time"

	"github.com/eveoffline/server/internal/core/ecs"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// CleanupSystem flushes the deferred destroy queue at the very end of the
// tick, after every system has finished reading the doomed entities, and
// tells connected clients about each removal.
type CleanupSystem struct {
	world       *ecs.World
	broadcaster Broadcaster
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	destroyed := s.world.FlushDestroyQueue()
	if s.broadcaster == nil {
		return
	}
	for _, id := range destroyed {
		s.broadcaster.BroadcastDestroy(id)
	}
}
