package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/core/ecs"
)

func newCodecFixture() (*ecs.World, *component.Stores, *Codec) {
	w := ecs.NewWorld()
	stores := component.NewStores(w)
	return w, stores, NewCodec(w, stores, zap.NewNop())
}

func TestSnapshotRoundTrip(t *testing.T) {
	w, stores, codec := newCodecFixture()

	assert.NoError(t, w.CreateEntity("player-1"))
	stores.Position.Set("player-1", &component.Position{X: 100, Y: -50, Z: 200000})
	h := component.DefaultHealth()
	h.HullHP = 50
	stores.Health.Set("player-1", &h)
	stores.Inventory.Set("player-1", &component.Inventory{
		MaxCapacity: 100,
		Items:       []component.InventoryItem{{ItemID: "ore_veldspar", Quantity: 500}},
	})

	assert.NoError(t, w.CreateEntity("npc-1"))
	stores.Position.Set("npc-1", &component.Position{X: 5000})
	stores.Faction.Set("npc-1", &component.Faction{FactionName: "guristas"})

	data, err := codec.Serialize()
	assert.NoError(t, err)

	w2, stores2, codec2 := newCodecFixture()
	assert.NoError(t, codec2.Deserialize(data))

	assert.Equal(t, []ecs.EntityID{"player-1", "npc-1"}, w2.Entities())

	pos, ok := stores2.Position.Get("player-1")
	assert.True(t, ok)
	assert.Equal(t, 200000.0, pos.Z)

	h2, ok := stores2.Health.Get("player-1")
	assert.True(t, ok)
	assert.Equal(t, 50.0, h2.HullHP)
	assert.Equal(t, 100.0, h2.HullMax)

	inv, ok := stores2.Inventory.Get("player-1")
	assert.True(t, ok)
	assert.Equal(t, []component.InventoryItem{{ItemID: "ore_veldspar", Quantity: 500}}, inv.Items)

	fac, ok := stores2.Faction.Get("npc-1")
	assert.True(t, ok)
	assert.Equal(t, "guristas", fac.FactionName)
	assert.False(t, stores2.Health.Has("npc-1"))
}

func TestDeserializeSkipsRecordWithoutID(t *testing.T) {
	w, stores, codec := newCodecFixture()

	doc := `{"entities":[
		{"position":{"x":1}},
		{"id":"","position":{"x":2}},
		{"id":"kept","position":{"x":3}}
	]}`
	assert.NoError(t, codec.Deserialize([]byte(doc)))

	assert.Equal(t, 1, w.Count())
	pos, ok := stores.Position.Get("kept")
	assert.True(t, ok)
	assert.Equal(t, 3.0, pos.X)
}

func TestDeserializeSkipsUnparseableComponentOnly(t *testing.T) {
	w, stores, codec := newCodecFixture()

	doc := `{"entities":[
		{"id":"ship-1","position":{"x":"not a number"},"health":{"hull_hp":42}}
	]}`
	assert.NoError(t, codec.Deserialize([]byte(doc)))

	assert.True(t, w.HasEntity("ship-1"))
	assert.False(t, stores.Position.Has("ship-1"))
	h, ok := stores.Health.Get("ship-1")
	assert.True(t, ok)
	assert.Equal(t, 42.0, h.HullHP)
	assert.Equal(t, 100.0, h.HullMax, "missing fields filled from defaults")
}

func TestDeserializeIgnoresUnknownKeys(t *testing.T) {
	w, stores, codec := newCodecFixture()

	doc := `{"entities":[
		{"id":"ship-1","position":{"x":7},"quantum_drive":{"charge":9000}}
	]}`
	assert.NoError(t, codec.Deserialize([]byte(doc)))

	assert.True(t, w.HasEntity("ship-1"))
	pos, ok := stores.Position.Get("ship-1")
	assert.True(t, ok)
	assert.Equal(t, 7.0, pos.X)
}

func TestDeserializeSkipsTombstonedAndDuplicateIDs(t *testing.T) {
	w, stores, codec := newCodecFixture()

	assert.NoError(t, w.CreateEntity("dead-npc"))
	w.DestroyEntity("dead-npc")
	assert.NoError(t, w.CreateEntity("live-npc"))

	doc := `{"entities":[
		{"id":"dead-npc","position":{"x":1}},
		{"id":"live-npc","position":{"x":2}}
	]}`
	assert.NoError(t, codec.Deserialize([]byte(doc)))

	assert.False(t, w.HasEntity("dead-npc"))
	assert.True(t, w.HasEntity("live-npc"))
	assert.False(t, stores.Position.Has("live-npc"), "existing entity left untouched")
}

func TestDeserializeSkipsMalformedRecord(t *testing.T) {
	w, _, codec := newCodecFixture()

	doc := `{"entities":[
		"just a string",
		{"id":"kept"}
	]}`
	assert.NoError(t, codec.Deserialize([]byte(doc)))
	assert.Equal(t, 1, w.Count())

	assert.Error(t, codec.Deserialize([]byte("not json at all")))
}

func TestSaveAndLoadWorld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saves", "world.json")

	w, stores, codec := newCodecFixture()
	assert.NoError(t, w.CreateEntity("station-jita"))
	stores.Station.Set("station-jita", &component.Station{})

	assert.NoError(t, codec.SaveWorld(path))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file renamed away")

	w2, stores2, codec2 := newCodecFixture()
	assert.NoError(t, codec2.LoadWorld(path))
	assert.True(t, w2.HasEntity("station-jita"))
	assert.True(t, stores2.Station.Has("station-jita"))
}

func TestLoadWorldMissingFileStartsFresh(t *testing.T) {
	w, _, codec := newCodecFixture()
	assert.NoError(t, codec.LoadWorld(filepath.Join(t.TempDir(), "absent.json")))
	assert.Equal(t, 0, w.Count())
}
