package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
)

// snapshotDoc is the on-disk world format: one object per entity, its "id"
// field plus one field per attached component, keyed by component key.
type snapshotDoc struct {
	Entities []json.RawMessage `json:"entities"`
}

// componentCodec binds one component key to its store's encode and decode.
type componentCodec struct {
	key    ecs.Key
	encode func(id ecs.EntityID) (any, bool)
	decode func(id ecs.EntityID, raw json.RawMessage) error
}

// codecFor builds a codec over a typed store. Decoding starts from defaults
// so a snapshot written by an older build fills missing fields with sane
// values instead of zeroes.
func codecFor[T any](store *ecs.Store[T], key ecs.Key, defaults func() T) componentCodec {
	return componentCodec{
		key: key,
		encode: func(id ecs.EntityID) (any, bool) {
			c, ok := store.Get(id)
			return c, ok
		},
		decode: func(id ecs.EntityID, raw json.RawMessage) error {
			c := defaults()
			if err := json.Unmarshal(raw, &c); err != nil {
				return err
			}
			store.Set(id, &c)
			return nil
		},
	}
}

func zero[T any]() T {
	var v T
	return v
}

// Codec serializes a World to the snapshot document and back. All methods
// run on the tick goroutine; the codec never locks anything.
type Codec struct {
	world  *ecs.World
	codecs []componentCodec
	log    *zap.Logger
}

func NewCodec(world *ecs.World, stores *component.Stores, log *zap.Logger) *Codec {
	return &Codec{
		world: world,
		codecs: []componentCodec{
			codecFor(stores.Position, component.KeyPosition, zero[component.Position]),
			codecFor(stores.Velocity, component.KeyVelocity, zero[component.Velocity]),
			codecFor(stores.Health, component.KeyHealth, component.DefaultHealth),
			codecFor(stores.Capacitor, component.KeyCapacitor, component.DefaultCapacitor),
			codecFor(stores.Ship, component.KeyShip, component.DefaultShip),
			codecFor(stores.Faction, component.KeyFaction, zero[component.Faction]),
			codecFor(stores.Standings, component.KeyStandings, component.DefaultStandings),
			codecFor(stores.AI, component.KeyAI, component.DefaultAI),
			codecFor(stores.Weapon, component.KeyWeapon, zero[component.Weapon]),
			codecFor(stores.Target, component.KeyTarget, component.DefaultTarget),
			codecFor(stores.Player, component.KeyPlayer, zero[component.Player]),
			codecFor(stores.Inventory, component.KeyInventory, component.DefaultInventory),
			codecFor(stores.LootTable, component.KeyLootTable, zero[component.LootTable]),
			codecFor(stores.DroneBay, component.KeyDroneBay, zero[component.DroneBay]),
			codecFor(stores.Corporation, component.KeyCorporation, zero[component.Corporation]),
			codecFor(stores.ContractBoard, component.KeyContractBoard, zero[component.ContractBoard]),
			codecFor(stores.MarketHub, component.KeyMarketHub, zero[component.MarketHub]),
			codecFor(stores.Station, component.KeyStation, zero[component.Station]),
			codecFor(stores.Docked, component.KeyDocked, zero[component.Docked]),
			codecFor(stores.Wreck, component.KeyWreck, zero[component.Wreck]),
			codecFor(stores.WormholeConnection, component.KeyWormholeConnection, zero[component.WormholeConnection]),
			codecFor(stores.SolarSystem, component.KeySolarSystem, zero[component.SolarSystem]),
			codecFor(stores.FleetMembership, component.KeyFleetMembership, zero[component.FleetMembership]),
			codecFor(stores.FleetFormation, component.KeyFleetFormation, zero[component.FleetFormation]),
			codecFor(stores.FleetCargoPool, component.KeyFleetCargoPool, zero[component.FleetCargoPool]),
			codecFor(stores.FleetMorale, component.KeyFleetMorale, zero[component.FleetMorale]),
			codecFor(stores.FleetRelationship, component.KeyFleetRelationship, zero[component.FleetRelationship]),
			codecFor(stores.FleetMemory, component.KeyFleetMemory, zero[component.FleetMemory]),
			codecFor(stores.EmotionalState, component.KeyEmotionalState, zero[component.EmotionalState]),
			codecFor(stores.CaptainPersonality, component.KeyCaptainPersonality, zero[component.CaptainPersonality]),
			codecFor(stores.MineralDeposit, component.KeyMineralDeposit, zero[component.MineralDeposit]),
			codecFor(stores.SystemResources, component.KeySystemResources, zero[component.SystemResources]),
			codecFor(stores.AnomalyVisualCue, component.KeyAnomalyVisualCue, zero[component.AnomalyVisualCue]),
			codecFor(stores.LODPriority, component.KeyLODPriority, zero[component.LODPriority]),
			codecFor(stores.WarpProfile, component.KeyWarpProfile, zero[component.WarpProfile]),
			codecFor(stores.WarpVisual, component.KeyWarpVisual, zero[component.WarpVisual]),
			codecFor(stores.WarpEvent, component.KeyWarpEvent, zero[component.WarpEvent]),
			codecFor(stores.TacticalProjection, component.KeyTacticalProjection, zero[component.TacticalProjection]),
			codecFor(stores.PlayerPresence, component.KeyPlayerPresence, zero[component.PlayerPresence]),
			codecFor(stores.FactionCulture, component.KeyFactionCulture, zero[component.FactionCulture]),
		},
		log: log,
	}
}

// Serialize writes every live entity and all of its components to the
// snapshot document.
func (c *Codec) Serialize() ([]byte, error) {
	doc := snapshotDoc{Entities: make([]json.RawMessage, 0, c.world.Count())}

	for _, id := range c.world.Entities() {
		entity := make(map[string]any, 8)
		entity["id"] = string(id)
		for _, cc := range c.codecs {
			if v, ok := cc.encode(id); ok {
				entity[string(cc.key)] = v
			}
		}
		raw, err := json.Marshal(entity)
		if err != nil {
			return nil, fmt.Errorf("serialize entity %s: %w", id, err)
		}
		doc.Entities = append(doc.Entities, raw)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Deserialize loads a snapshot document into the world. A bad record skips
// only itself, never the whole load:
//
//   - an entity record that is not an object, or has no usable "id", is
//     skipped whole;
//   - a component that fails to parse is skipped, the rest of the entity
//     still loads;
//   - unknown component keys are ignored for forward compatibility;
//   - ids that collide with live or tombstoned entities are skipped.
//
// Every skip is logged with enough context to find the record by hand.
func (c *Codec) Deserialize(data []byte) error {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	known := make(map[string]componentCodec, len(c.codecs))
	for _, cc := range c.codecs {
		known[string(cc.key)] = cc
	}

	loaded := 0
	for i, raw := range doc.Entities {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			c.log.Warn("skipping malformed entity record",
				zap.Int("index", i), zap.Error(err))
			continue
		}

		var id string
		if idRaw, ok := fields["id"]; ok {
			if err := json.Unmarshal(idRaw, &id); err != nil {
				id = ""
			}
		}
		if id == "" {
			c.log.Warn("skipping entity record without id", zap.Int("index", i))
			continue
		}

		if err := c.world.CreateEntity(ecs.EntityID(id)); err != nil {
			if errors.Is(err, ecs.ErrEntityDestroyed) {
				c.log.Warn("skipping destroyed entity in snapshot", zap.String("entity", id))
			} else {
				c.log.Warn("skipping duplicate entity in snapshot", zap.String("entity", id))
			}
			continue
		}
		loaded++

		for key, compRaw := range fields {
			if key == "id" {
				continue
			}
			cc, ok := known[key]
			if !ok {
				continue // unknown component, likely from a newer build
			}
			if err := cc.decode(ecs.EntityID(id), compRaw); err != nil {
				c.log.Warn("skipping unparseable component",
					zap.String("entity", id),
					zap.String("component", key),
					zap.Error(err),
				)
			}
		}
	}

	c.log.Info("world snapshot loaded",
		zap.Int("entities", loaded),
		zap.Int("records", len(doc.Entities)),
	)
	return nil
}

// SaveWorld serializes the world and writes it to path atomically: write to
// a temp file in the same directory, then rename over the target, so a crash
// mid-save never leaves behind a truncated snapshot.
func (c *Codec) SaveWorld(path string) error {
	data, err := c.Serialize()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadWorld reads path and loads it into the world. A missing file is not an
// error; the server just starts with a fresh world.
func (c *Codec) LoadWorld(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.Info("no world snapshot found, starting fresh", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	return c.Deserialize(data)
}
