package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/eveoffline/server/internal/core/system"
)

// PersistenceSystem autosaves the world every N ticks. Saves run on the tick
// goroutine, so a snapshot is always internally consistent; a failed save is
// logged and retried at the next interval, never fatal.
type PersistenceSystem struct {
	interval int
	counter  int
	save     func() error
	log      *zap.Logger

	// Optional extra hook, used to flush player characters to the database
	// alongside the world snapshot.
	saveCharacters func() error
}

func NewPersistenceSystem(interval int, save func() error, log *zap.Logger) *PersistenceSystem {
	return &PersistenceSystem{
		interval: interval,
		save:     save,
		log:      log,
	}
}

func (s *PersistenceSystem) SetCharacterSaver(fn func() error) {
	s.saveCharacters = fn
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.counter++
	if s.counter < s.interval {
		return
	}
	s.counter = 0

	start := time.Now()
	if err := s.save(); err != nil {
		s.log.Error("autosave failed", zap.Error(err))
		return
	}
	if s.saveCharacters != nil {
		if err := s.saveCharacters(); err != nil {
			s.log.Error("character save failed", zap.Error(err))
		}
	}
	s.log.Info("world autosaved", zap.Duration("took", time.Since(start)))
}
