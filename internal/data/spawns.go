package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LootEntryDef is one drop roll for an NPC spawn.
type LootEntryDef struct {
	ItemID   string  `yaml:"item_id"`
	Quantity int     `yaml:"quantity"`
	Chance   float64 `yaml:"chance"`
}

// SpawnEntry defines one NPC to seed at boot. Ids are fixed so the world is
// deterministic across restarts without a snapshot.
type SpawnEntry struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	ShipType       string         `yaml:"ship_type"`
	Faction        string         `yaml:"faction"`
	Behavior       string         `yaml:"behavior"`
	X              float64        `yaml:"x"`
	Y              float64        `yaml:"y"`
	Z              float64        `yaml:"z"`
	OrbitDistance  float64        `yaml:"orbit_distance"`
	AwarenessRange float64        `yaml:"awareness_range"`
	ISKDrop        float64        `yaml:"isk_drop"`
	Loot           []LootEntryDef `yaml:"loot"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadSpawnList loads the boot spawn roster from YAML, falling back to the
// builtin roster when the file does not exist.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinSpawnList(), nil
		}
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}

// BuiltinSpawnList is the fixed three-pirate seed roster.
func BuiltinSpawnList() []SpawnEntry {
	return []SpawnEntry{
		{
			ID: "npc-gurista-1", Name: "Gurista Despoiler", ShipType: "merlin",
			Faction: "guristas", Behavior: "aggressive",
			X: 12000, Y: 0, Z: 8000,
			OrbitDistance: 6500, AwarenessRange: 45000,
			ISKDrop: 12500,
			Loot: []LootEntryDef{
				{ItemID: "antimatter_s", Quantity: 50, Chance: 0.8},
				{ItemID: "metal_scraps", Quantity: 3, Chance: 1.0},
			},
		},
		{
			ID: "npc-gurista-2", Name: "Gurista Infiltrator", ShipType: "breacher",
			Faction: "guristas", Behavior: "aggressive",
			X: -9000, Y: 1500, Z: 14000,
			OrbitDistance: 7000, AwarenessRange: 45000,
			ISKDrop: 10000,
			Loot: []LootEntryDef{
				{ItemID: "mjolnir_rocket", Quantity: 40, Chance: 0.75},
				{ItemID: "metal_scraps", Quantity: 2, Chance: 1.0},
			},
		},
		{
			ID: "npc-drifter-1", Name: "Drifter Scout", ShipType: "shuttle",
			Faction: "drifters", Behavior: "patrol",
			X: 0, Y: -4000, Z: -20000,
			OrbitDistance: 10000, AwarenessRange: 60000,
			ISKDrop: 2000,
		},
	}
}
