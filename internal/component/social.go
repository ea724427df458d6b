package component

// Faction is an entity's allegiance, used for hostility checks.
type Faction struct {
	FactionName string `json:"faction_name"`
}

// Standings maps names to a standing value in [-10, 10].
type Standings struct {
	Personal    map[string]float64 `json:"personal"`
	Corporation map[string]float64 `json:"corporation"`
	Faction     map[string]float64 `json:"faction"`
}

func DefaultStandings() Standings {
	return Standings{
		Personal:    map[string]float64{},
		Corporation: map[string]float64{},
		Faction:     map[string]float64{},
	}
}

// Player links an entity to a connected client.
type Player struct {
	PlayerID      string  `json:"player_id"`
	CharacterName string  `json:"character_name"`
	ISK           float64 `json:"isk"`
	Corporation   string  `json:"corporation"`
}

// Corporation describes a player or NPC corp entity.
type Corporation struct {
	Name        string  `json:"name"`
	Ticker      string  `json:"ticker"`
	MemberCount int     `json:"member_count"`
	TaxRate     float64 `json:"tax_rate"`
}

// EmotionalState drives NPC captain reactions.
type EmotionalState struct {
	Aggression float64 `json:"aggression"`
	Fear       float64 `json:"fear"`
	Confidence float64 `json:"confidence"`
}

// CaptainPersonality is an NPC captain's fixed disposition.
type CaptainPersonality struct {
	Archetype     string  `json:"archetype"`
	RiskTolerance float64 `json:"risk_tolerance"`
	Loyalty       float64 `json:"loyalty"`
}

// FactionCulture colors NPC faction behavior and dialogue.
type FactionCulture struct {
	Ethos     string  `json:"ethos"`
	Hostility float64 `json:"hostility"`
}
