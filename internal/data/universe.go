package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CelestialEntry is one fixed body in a solar system. Radius is the keep-out
// sphere MovementSystem pushes entities out of.
type CelestialEntry struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"` // star, planet, moon, station, belt
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// DepositEntry seeds a minable asteroid entity.
type DepositEntry struct {
	ID        string  `yaml:"id"`
	OreType   string  `yaml:"ore_type"`
	Remaining float64 `yaml:"remaining"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
}

// SystemEntry is one solar system's static catalog.
type SystemEntry struct {
	Name       string           `yaml:"name"`
	Region     string           `yaml:"region"`
	Security   float64          `yaml:"security"`
	Celestials []CelestialEntry `yaml:"celestials"`
	Deposits   []DepositEntry   `yaml:"deposits"`
}

type universeFile struct {
	Systems []SystemEntry `yaml:"systems"`
}

// UniverseTable holds the systems indexed by name.
type UniverseTable struct {
	systems map[string]*SystemEntry
}

func (t *UniverseTable) Get(name string) *SystemEntry {
	return t.systems[name]
}

func (t *UniverseTable) Count() int {
	return len(t.systems)
}

// LoadUniverse loads the system catalog from YAML, falling back to the
// builtin single-system universe when the file does not exist.
func LoadUniverse(path string) (*UniverseTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinUniverse(), nil
		}
		return nil, fmt.Errorf("read universe: %w", err)
	}
	var f universeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse universe: %w", err)
	}
	t := &UniverseTable{systems: make(map[string]*SystemEntry, len(f.Systems))}
	for i := range f.Systems {
		sys := &f.Systems[i]
		t.systems[sys.Name] = sys
	}
	return t, nil
}

// BuiltinUniverse is the fallback catalog: one low-sec system.
func BuiltinUniverse() *UniverseTable {
	sys := &SystemEntry{
		Name:     "Oruze",
		Region:   "The Forge",
		Security: 0.4,
		Celestials: []CelestialEntry{
			{Name: "Oruze - Star", Kind: "star", X: 0, Y: 0, Z: 0, Radius: 120000},
			{Name: "Oruze I", Kind: "planet", X: 800000, Y: 0, Z: 250000, Radius: 24000},
			{Name: "Oruze II", Kind: "planet", X: -1400000, Y: 12000, Z: 600000, Radius: 31000},
			{Name: "Oruze II - Trade Hub", Kind: "station", X: -1360000, Y: 12000, Z: 590000, Radius: 5000},
		},
		Deposits: []DepositEntry{
			{ID: "belt-veldspar-1", OreType: "ore_veldspar", Remaining: 80000, X: 400000, Y: -3000, Z: -180000},
			{ID: "belt-scordite-1", OreType: "ore_scordite", Remaining: 45000, X: 415000, Y: -2500, Z: -176000},
		},
	}
	return &UniverseTable{systems: map[string]*SystemEntry{sys.Name: sys}}
}
