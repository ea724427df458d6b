package event

import "github.com/eveoffline/server/internal/core/ecs"

// EntityDestroyed is emitted by CombatSystem when an entity's hull reaches
// zero. Dispatched the following tick; by then the victim entity is gone and
// only its wreck remains.
type EntityDestroyed struct {
	EntityID ecs.EntityID
	KillerID ecs.EntityID
	ShipType string
	WreckID  ecs.EntityID
	Bounty   float64
}

// PlayerJoined is emitted by GameSession after a successful CONNECT.
type PlayerJoined struct {
	EntityID      ecs.EntityID
	PlayerID      string
	CharacterName string
}
