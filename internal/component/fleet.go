package component

// FleetMembership attaches an entity to a fleet.
type FleetMembership struct {
	FleetID string `json:"fleet_id"`
	Role    string `json:"role"`
}

// FleetFormation is carried by the fleet leader.
type FleetFormation struct {
	Shape    string  `json:"shape"`
	Spacing  float64 `json:"spacing"`
	LeaderID string  `json:"leader_id"`
}

// FleetCargoPool is a shared hold distributed across fleet members.
type FleetCargoPool struct {
	Capacity float64         `json:"capacity"`
	Items    []InventoryItem `json:"items"`
}

// FleetMorale tracks the fleet's willingness to fight.
type FleetMorale struct {
	Morale       float64 `json:"morale"`
	RecentLosses int     `json:"recent_losses"`
}

// FleetRelationship maps member entity ids to trust values.
type FleetRelationship struct {
	Trust map[string]float64 `json:"trust"`
}

// FleetMemory records what the fleet has learned about its enemies.
type FleetMemory struct {
	KnownEnemies   []string `json:"known_enemies"`
	LastEngagement string   `json:"last_engagement"`
}
