package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eveoffline/server/internal/core/system"
)

type probe struct {
	X int `json:"x"`
}

type tag struct{}

func TestCreateAndDestroyEntity(t *testing.T) {
	w := NewWorld()
	probes := NewStore[probe](w, "probe")

	assert.NoError(t, w.CreateEntity("ship-1"))
	assert.True(t, w.HasEntity("ship-1"))
	assert.Equal(t, 1, w.Count())

	// Duplicate ids are refused.
	assert.ErrorIs(t, w.CreateEntity("ship-1"), ErrEntityExists)

	probes.Set("ship-1", &probe{X: 7})
	w.DestroyEntity("ship-1")

	assert.False(t, w.HasEntity("ship-1"))
	assert.False(t, probes.Has("ship-1"), "destroy must clear component stores")
	assert.Equal(t, 0, w.Count())
}

func TestDestroyedIDCannotBeReused(t *testing.T) {
	w := NewWorld()

	assert.NoError(t, w.CreateEntity("ship-1"))
	w.DestroyEntity("ship-1")

	assert.ErrorIs(t, w.CreateEntity("ship-1"), ErrEntityDestroyed)
	assert.False(t, w.HasEntity("ship-1"))
}

func TestDestroyUnknownEntityIsNoop(t *testing.T) {
	w := NewWorld()
	w.DestroyEntity("never-existed")

	// The id was never live, so it is not tombstoned either.
	assert.NoError(t, w.CreateEntity("never-existed"))
}

func TestEntitiesWithMatchesAllOf(t *testing.T) {
	w := NewWorld()
	probes := NewStore[probe](w, "probe")
	tags := NewStore[tag](w, "tag")

	assert.NoError(t, w.CreateEntity("a"))
	assert.NoError(t, w.CreateEntity("b"))
	assert.NoError(t, w.CreateEntity("c"))

	probes.Set("a", &probe{})
	probes.Set("b", &probe{})
	tags.Set("b", &tag{})
	tags.Set("c", &tag{})

	assert.Equal(t, []EntityID{"a", "b"}, w.EntitiesWith("probe"))
	assert.Equal(t, []EntityID{"b"}, w.EntitiesWith("probe", "tag"))
	assert.Empty(t, w.EntitiesWith("probe", "tag", "missing"))
}

func TestEntitiesPreservesCreationOrder(t *testing.T) {
	w := NewWorld()
	assert.NoError(t, w.CreateEntity("c"))
	assert.NoError(t, w.CreateEntity("a"))
	assert.NoError(t, w.CreateEntity("b"))

	assert.Equal(t, []EntityID{"c", "a", "b"}, w.Entities())

	w.DestroyEntity("a")
	assert.Equal(t, []EntityID{"c", "b"}, w.Entities())
}

func TestDeferredDestroyQueue(t *testing.T) {
	w := NewWorld()
	assert.NoError(t, w.CreateEntity("victim"))

	w.MarkForDestruction("victim")
	assert.True(t, w.HasEntity("victim"), "destruction is deferred to the flush")

	w.MarkForDestruction("victim") // double-mark is fine
	w.MarkForDestruction("ghost")  // never existed

	destroyed := w.FlushDestroyQueue()
	assert.Equal(t, []EntityID{"victim"}, destroyed)
	assert.False(t, w.HasEntity("victim"))

	assert.Empty(t, w.FlushDestroyQueue(), "queue is drained by the flush")
}

type phaseRecorder struct {
	phase system.Phase
	name  string
	seen  *[]string
}

func (p *phaseRecorder) Phase() system.Phase { return p.phase }
func (p *phaseRecorder) Update(time.Duration) {
	*p.seen = append(*p.seen, p.name)
}

func TestSystemsRunInPhaseOrder(t *testing.T) {
	w := NewWorld()
	var seen []string

	// Registration order is deliberately scrambled.
	w.AddSystem(&phaseRecorder{phase: system.PhaseCleanup, name: "cleanup", seen: &seen})
	w.AddSystem(&phaseRecorder{phase: system.PhaseInput, name: "input", seen: &seen})
	w.AddSystem(&phaseRecorder{phase: system.PhaseUpdate, name: "update-a", seen: &seen})
	w.AddSystem(&phaseRecorder{phase: system.PhaseUpdate, name: "update-b", seen: &seen})
	w.AddSystem(&phaseRecorder{phase: system.PhaseOutput, name: "output", seen: &seen})

	w.Update(100 * time.Millisecond)

	assert.Equal(t, []string{"input", "update-a", "update-b", "output", "cleanup"}, seen)
}
