package component

// Behavior is an NPC's fixed disposition, set at spawn.
type Behavior string

const (
	BehaviorIdle       Behavior = "idle"
	BehaviorPatrol     Behavior = "patrol"
	BehaviorAggressive Behavior = "aggressive"
	BehaviorDefensive  Behavior = "defensive"
	BehaviorMining     Behavior = "mining"
)

// AIState is the NPC's current activity within its behavior.
type AIState string

const (
	AIStateIdle        AIState = "idle"
	AIStateApproaching AIState = "approaching"
	AIStateOrbiting    AIState = "orbiting"
	AIStateAttacking   AIState = "attacking"
	AIStateFleeing     AIState = "fleeing"
)

// AI is the NPC behavior state machine's component-resident state.
type AI struct {
	Behavior       Behavior `json:"behavior"`
	State          AIState  `json:"state"`
	TargetEntityID string   `json:"target_entity_id"`
	OrbitDistance  float64  `json:"orbit_distance"`
	AwarenessRange float64  `json:"awareness_range"`
}

func DefaultAI() AI {
	return AI{
		Behavior:       BehaviorIdle,
		State:          AIStateIdle,
		OrbitDistance:  5000,
		AwarenessRange: 50000,
	}
}
