package component

import "github.com/eveoffline/server/internal/core/ecs"

// Component keys. These are also the component field names in the world
// snapshot document, so renaming one is a save-format change.
const (
	KeyPosition           ecs.Key = "position"
	KeyVelocity           ecs.Key = "velocity"
	KeyHealth             ecs.Key = "health"
	KeyCapacitor          ecs.Key = "capacitor"
	KeyShip               ecs.Key = "ship"
	KeyFaction            ecs.Key = "faction"
	KeyStandings          ecs.Key = "standings"
	KeyAI                 ecs.Key = "ai"
	KeyWeapon             ecs.Key = "weapon"
	KeyTarget             ecs.Key = "target"
	KeyPlayer             ecs.Key = "player"
	KeyInventory          ecs.Key = "inventory"
	KeyLootTable          ecs.Key = "loot_table"
	KeyDroneBay           ecs.Key = "drone_bay"
	KeyCorporation        ecs.Key = "corporation"
	KeyContractBoard      ecs.Key = "contract_board"
	KeyMarketHub          ecs.Key = "market_hub"
	KeyStation            ecs.Key = "station"
	KeyDocked             ecs.Key = "docked"
	KeyWreck              ecs.Key = "wreck"
	KeyWormholeConnection ecs.Key = "wormhole_connection"
	KeySolarSystem        ecs.Key = "solar_system"
	KeyFleetMembership    ecs.Key = "fleet_membership"
	KeyFleetFormation     ecs.Key = "fleet_formation"
	KeyFleetCargoPool     ecs.Key = "fleet_cargo_pool"
	KeyFleetMorale        ecs.Key = "fleet_morale"
	KeyFleetRelationship  ecs.Key = "fleet_relationship"
	KeyFleetMemory        ecs.Key = "fleet_memory"
	KeyEmotionalState     ecs.Key = "emotional_state"
	KeyCaptainPersonality ecs.Key = "captain_personality"
	KeyMineralDeposit     ecs.Key = "mineral_deposit"
	KeySystemResources    ecs.Key = "system_resources"
	KeyAnomalyVisualCue   ecs.Key = "anomaly_visual_cue"
	KeyLODPriority        ecs.Key = "lod_priority"
	KeyWarpProfile        ecs.Key = "warp_profile"
	KeyWarpVisual         ecs.Key = "warp_visual"
	KeyWarpEvent          ecs.Key = "warp_event"
	KeyTacticalProjection ecs.Key = "tactical_projection"
	KeyPlayerPresence     ecs.Key = "player_presence"
	KeyFactionCulture     ecs.Key = "faction_culture"
)

// Stores bundles every typed component store attached to a World. One Stores
// per World; systems and handlers reach components through it.
type Stores struct {
	Position           *ecs.Store[Position]
	Velocity           *ecs.Store[Velocity]
	Health             *ecs.Store[Health]
	Capacitor          *ecs.Store[Capacitor]
	Ship               *ecs.Store[Ship]
	Faction            *ecs.Store[Faction]
	Standings          *ecs.Store[Standings]
	AI                 *ecs.Store[AI]
	Weapon             *ecs.Store[Weapon]
	Target             *ecs.Store[Target]
	Player             *ecs.Store[Player]
	Inventory          *ecs.Store[Inventory]
	LootTable          *ecs.Store[LootTable]
	DroneBay           *ecs.Store[DroneBay]
	Corporation        *ecs.Store[Corporation]
	ContractBoard      *ecs.Store[ContractBoard]
	MarketHub          *ecs.Store[MarketHub]
	Station            *ecs.Store[Station]
	Docked             *ecs.Store[Docked]
	Wreck              *ecs.Store[Wreck]
	WormholeConnection *ecs.Store[WormholeConnection]
	SolarSystem        *ecs.Store[SolarSystem]
	FleetMembership    *ecs.Store[FleetMembership]
	FleetFormation     *ecs.Store[FleetFormation]
	FleetCargoPool     *ecs.Store[FleetCargoPool]
	FleetMorale        *ecs.Store[FleetMorale]
	FleetRelationship  *ecs.Store[FleetRelationship]
	FleetMemory        *ecs.Store[FleetMemory]
	EmotionalState     *ecs.Store[EmotionalState]
	CaptainPersonality *ecs.Store[CaptainPersonality]
	MineralDeposit     *ecs.Store[MineralDeposit]
	SystemResources    *ecs.Store[SystemResources]
	AnomalyVisualCue   *ecs.Store[AnomalyVisualCue]
	LODPriority        *ecs.Store[LODPriority]
	WarpProfile        *ecs.Store[WarpProfile]
	WarpVisual         *ecs.Store[WarpVisual]
	WarpEvent          *ecs.Store[WarpEvent]
	TacticalProjection *ecs.Store[TacticalProjection]
	PlayerPresence     *ecs.Store[PlayerPresence]
	FactionCulture     *ecs.Store[FactionCulture]
}

// NewStores registers one store per component type with the world.
func NewStores(w *ecs.World) *Stores {
	return &Stores{
		Position:           ecs.NewStore[Position](w, KeyPosition),
		Velocity:           ecs.NewStore[Velocity](w, KeyVelocity),
		Health:             ecs.NewStore[Health](w, KeyHealth),
		Capacitor:          ecs.NewStore[Capacitor](w, KeyCapacitor),
		Ship:               ecs.NewStore[Ship](w, KeyShip),
		Faction:            ecs.NewStore[Faction](w, KeyFaction),
		Standings:          ecs.NewStore[Standings](w, KeyStandings),
		AI:                 ecs.NewStore[AI](w, KeyAI),
		Weapon:             ecs.NewStore[Weapon](w, KeyWeapon),
		Target:             ecs.NewStore[Target](w, KeyTarget),
		Player:             ecs.NewStore[Player](w, KeyPlayer),
		Inventory:          ecs.NewStore[Inventory](w, KeyInventory),
		LootTable:          ecs.NewStore[LootTable](w, KeyLootTable),
		DroneBay:           ecs.NewStore[DroneBay](w, KeyDroneBay),
		Corporation:        ecs.NewStore[Corporation](w, KeyCorporation),
		ContractBoard:      ecs.NewStore[ContractBoard](w, KeyContractBoard),
		MarketHub:          ecs.NewStore[MarketHub](w, KeyMarketHub),
		Station:            ecs.NewStore[Station](w, KeyStation),
		Docked:             ecs.NewStore[Docked](w, KeyDocked),
		Wreck:              ecs.NewStore[Wreck](w, KeyWreck),
		WormholeConnection: ecs.NewStore[WormholeConnection](w, KeyWormholeConnection),
		SolarSystem:        ecs.NewStore[SolarSystem](w, KeySolarSystem),
		FleetMembership:    ecs.NewStore[FleetMembership](w, KeyFleetMembership),
		FleetFormation:     ecs.NewStore[FleetFormation](w, KeyFleetFormation),
		FleetCargoPool:     ecs.NewStore[FleetCargoPool](w, KeyFleetCargoPool),
		FleetMorale:        ecs.NewStore[FleetMorale](w, KeyFleetMorale),
		FleetRelationship:  ecs.NewStore[FleetRelationship](w, KeyFleetRelationship),
		FleetMemory:        ecs.NewStore[FleetMemory](w, KeyFleetMemory),
		EmotionalState:     ecs.NewStore[EmotionalState](w, KeyEmotionalState),
		CaptainPersonality: ecs.NewStore[CaptainPersonality](w, KeyCaptainPersonality),
		MineralDeposit:     ecs.NewStore[MineralDeposit](w, KeyMineralDeposit),
		SystemResources:    ecs.NewStore[SystemResources](w, KeySystemResources),
		AnomalyVisualCue:   ecs.NewStore[AnomalyVisualCue](w, KeyAnomalyVisualCue),
		LODPriority:        ecs.NewStore[LODPriority](w, KeyLODPriority),
		WarpProfile:        ecs.NewStore[WarpProfile](w, KeyWarpProfile),
		WarpVisual:         ecs.NewStore[WarpVisual](w, KeyWarpVisual),
		WarpEvent:          ecs.NewStore[WarpEvent](w, KeyWarpEvent),
		TacticalProjection: ecs.NewStore[TacticalProjection](w, KeyTacticalProjection),
		PlayerPresence:     ecs.NewStore[PlayerPresence](w, KeyPlayerPresence),
		FactionCulture:     ecs.NewStore[FactionCulture](w, KeyFactionCulture),
	}
}
