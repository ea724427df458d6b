package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain session queues, apply client intents
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: simulation (capacitor, shield, ai, targeting, movement, weapon, combat)
	PhasePostUpdate              // 3: derived state
	PhaseOutput                  // 4: build + send state broadcasts
	PhasePersist                 // 5: autosave
	PhaseCleanup                 // 6: destroy queued entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
