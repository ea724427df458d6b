package system

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAutosaveCadence(t *testing.T) {
	saves := 0
	sys := NewPersistenceSystem(3, func() error { saves++; return nil }, zap.NewNop())

	for i := 0; i < 9; i++ {
		sys.Update(100 * time.Millisecond)
	}
	assert.Equal(t, 3, saves)
}

func TestAutosaveDisabledByZeroInterval(t *testing.T) {
	saves := 0
	sys := NewPersistenceSystem(0, func() error { saves++; return nil }, zap.NewNop())

	for i := 0; i < 100; i++ {
		sys.Update(100 * time.Millisecond)
	}
	assert.Zero(t, saves)
}

func TestFailedSaveSkipsCharacterFlushAndRetries(t *testing.T) {
	fail := true
	chars := 0
	sys := NewPersistenceSystem(1, func() error {
		if fail {
			return errors.New("disk full")
		}
		return nil
	}, zap.NewNop())
	sys.SetCharacterSaver(func() error { chars++; return nil })

	sys.Update(100 * time.Millisecond)
	assert.Zero(t, chars, "characters only flush after a good snapshot")

	fail = false
	sys.Update(100 * time.Millisecond)
	assert.Equal(t, 1, chars)
}
