package system

import (
	"time"

	"github.com/eveoffline/server/internal/core/event"
	coresys "github.com/eveoffline/server/internal/core/system"
)

// EventDispatchSystem delivers last tick's events at the start of this one.
// Events emitted during tick N are therefore always handled in tick N+1.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
