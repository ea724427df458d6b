package ecs

import (
	"errors"
	"time"

	"github.com/eveoffline/server/internal/core/system"
)

// EntityID is a caller-chosen unique string identifier. Capability is
// determined solely by which components are attached, never by subtype.
type EntityID string

var (
	// ErrEntityExists is returned when creating an id that is already live.
	ErrEntityExists = errors.New("entity id already exists")
	// ErrEntityDestroyed is returned when creating an id that was destroyed
	// in this world's lifetime. Destroyed ids are tombstoned so a stale
	// snapshot cannot silently resurrect them.
	ErrEntityDestroyed = errors.New("entity id was destroyed")
)

// World is the top-level ECS container. It owns the entity table, every
// registered component store, the ordered system list, and a deferred
// destruction queue flushed by CleanupSystem at tick end.
//
// The World is not internally synchronized: all access happens on the tick
// goroutine. Network goroutines hand intents over through session queues.
type World struct {
	entities     map[EntityID]struct{}
	order        []EntityID
	tombstones   map[EntityID]struct{}
	stores       []Removable
	byKey        map[Key]Removable
	runner       *system.Runner
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		entities:   make(map[EntityID]struct{}, 256),
		order:      make([]EntityID, 0, 256),
		tombstones: make(map[EntityID]struct{}),
		byKey:      make(map[Key]Removable, 48),
		runner:     system.NewRunner(),
	}
}

func (w *World) register(s Removable) {
	w.stores = append(w.stores, s)
	w.byKey[s.ComponentKey()] = s
}

// CreateEntity adds a new empty entity under id.
func (w *World) CreateEntity(id EntityID) error {
	if _, ok := w.entities[id]; ok {
		return ErrEntityExists
	}
	if _, ok := w.tombstones[id]; ok {
		return ErrEntityDestroyed
	}
	w.entities[id] = struct{}{}
	w.order = append(w.order, id)
	return nil
}

// DestroyEntity removes the entity and all its components. No-op if absent.
// The id is tombstoned and can never be re-created in this World.
func (w *World) DestroyEntity(id EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	delete(w.entities, id)
	w.tombstones[id] = struct{}{}
	for i, e := range w.order {
		if e == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

func (w *World) HasEntity(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Entities returns all live entity ids in creation order. The order is
// stable within a tick.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, len(w.order))
	copy(out, w.order)
	return out
}

// EntitiesWith returns, in creation order, the ids of entities that own
// every listed component type.
func (w *World) EntitiesWith(keys ...Key) []EntityID {
	out := make([]EntityID, 0, len(w.order))
next:
	for _, id := range w.order {
		for _, k := range keys {
			s, ok := w.byKey[k]
			if !ok || !s.Has(id) {
				continue next
			}
		}
		out = append(out, id)
	}
	return out
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.entities)
}

// AddSystem registers a system. Systems run in phase order; within a phase,
// in registration order.
func (w *World) AddSystem(s system.System) {
	w.runner.Register(s)
}

// Update runs every registered system once, synchronously.
func (w *World) Update(dt time.Duration) {
	w.runner.Tick(dt)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Systems use
// this instead of DestroyEntity so stores are never mutated mid-iteration.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities, returning the ids that
// were actually live. Called by CleanupSystem at the end of each tick.
func (w *World) FlushDestroyQueue() []EntityID {
	destroyed := make([]EntityID, 0, len(w.destroyQueue))
	for _, id := range w.destroyQueue {
		if w.HasEntity(id) {
			w.DestroyEntity(id)
			destroyed = append(destroyed, id)
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
