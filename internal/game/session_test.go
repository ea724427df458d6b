package game

import (
	"encoding/json"
	"fmt"
	stdnet "net"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/config"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	"github.com/eveoffline/server/internal/data"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/protocol"
	"github.com/eveoffline/server/internal/system"
)

type gameFixture struct {
	world  *ecs.World
	stores *component.Stores
	server *net.Server
	game   *Game
	nextID uint64
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	log := zap.NewNop()
	w := ecs.NewWorld()
	stores := component.NewStores(w)
	cfg := config.Defaults()

	srv, err := net.NewServer("127.0.0.1:0", 8, 16, 64, 4096, time.Second, log)
	assert.NoError(t, err)
	t.Cleanup(srv.Stop)

	movement := system.NewMovementSystem(w, stores, log)
	g := NewGame(w, stores, cfg, data.BuiltinShipTable(), event.NewBus(), nil, srv, movement, log)
	return &gameFixture{world: w, stores: stores, server: srv, game: g}
}

// newClient builds a session over an in-process pipe without starting its
// I/O goroutines, so buffered output can be inspected synchronously.
func (f *gameFixture) newClient(t *testing.T) *net.Session {
	t.Helper()
	client, server := stdnet.Pipe()
	t.Cleanup(func() { client.Close() })

	f.nextID++
	sess := net.NewSession(server, f.nextID, 16, 64, 4096, time.Second, zap.NewNop())
	f.server.Sessions().Add(sess)
	return sess
}

func (f *gameFixture) connect(t *testing.T, sess *net.Session, playerID, name string) {
	t.Helper()
	raw := fmt.Sprintf(`{"type":"CONNECT","data":{"player_id":%q,"character_name":%q}}`, playerID, name)
	f.game.HandleMessage(sess, []byte(raw))
}

type testEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// drain flushes the session's buffered output and decodes every queued
// envelope.
func drain(t *testing.T, sess *net.Session) []testEnvelope {
	t.Helper()
	sess.FlushOutput()
	var out []testEnvelope
	for {
		select {
		case raw := <-sess.OutQueue:
			var env testEnvelope
			assert.NoError(t, json.Unmarshal(raw, &env))
			out = append(out, env)
		default:
			return out
		}
	}
}

func TestConnectAckPrecedesRosterReplay(t *testing.T) {
	f := newGameFixture(t)
	f.game.SpawnNPCs(data.BuiltinSpawnList())
	assert.Equal(t, 3, f.world.Count())

	sess := f.newClient(t)
	f.connect(t, sess, "p1", "Alice")

	msgs := drain(t, sess)
	assert.Len(t, msgs, 4, "ack plus one spawn per NPC")
	assert.Equal(t, protocol.MsgConnectAck, msgs[0].Type)

	var ack protocol.ConnectAckData
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &ack))
	assert.True(t, ack.Success)
	assert.Equal(t, sess.EntityID, ack.PlayerEntityID)
	assert.Equal(t, "Fly safe.", ack.Message)

	seen := map[string]bool{}
	for _, env := range msgs[1:] {
		assert.Equal(t, protocol.MsgSpawnEntity, env.Type)
		var spawn protocol.SpawnEntityData
		assert.NoError(t, json.Unmarshal(env.Data, &spawn))
		seen[spawn.EntityID] = true
		assert.NotEqual(t, sess.EntityID, spawn.EntityID, "replay never includes the new player")
	}
	assert.True(t, seen["npc-gurista-1"])
	assert.True(t, seen["npc-gurista-2"])
	assert.True(t, seen["npc-drifter-1"])

	// The player entity got a full starter loadout.
	id := ecs.EntityID(sess.EntityID)
	assert.True(t, f.stores.Ship.Has(id))
	assert.True(t, f.stores.Health.Has(id))
	assert.True(t, f.stores.Capacitor.Has(id))
	player, ok := f.stores.Player.Get(id)
	assert.True(t, ok)
	assert.Equal(t, "p1", player.PlayerID)
	assert.Equal(t, 5000.0, player.ISK)
	assert.Equal(t, "Alice", sess.CharName)
}

func TestSecondPlayerIsBroadcastExactlyOnce(t *testing.T) {
	f := newGameFixture(t)

	first := f.newClient(t)
	f.connect(t, first, "p1", "Alice")
	drain(t, first)

	second := f.newClient(t)
	f.connect(t, second, "p2", "Bob")

	msgs := drain(t, second)
	assert.Len(t, msgs, 2, "ack plus the replay of the first player")
	assert.Equal(t, protocol.MsgConnectAck, msgs[0].Type)
	var spawn protocol.SpawnEntityData
	assert.NoError(t, json.Unmarshal(msgs[1].Data, &spawn))
	assert.Equal(t, first.EntityID, spawn.EntityID)

	msgs = drain(t, first)
	assert.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgSpawnEntity, msgs[0].Type)
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &spawn))
	assert.Equal(t, second.EntityID, spawn.EntityID)
}

func TestConnectRefusals(t *testing.T) {
	f := newGameFixture(t)

	sess := f.newClient(t)
	f.game.HandleMessage(sess, []byte(`{"type":"CONNECT","data":{}}`))
	msgs := drain(t, sess)
	assert.Len(t, msgs, 1)
	var ack protocol.ConnectAckData
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &ack))
	assert.False(t, ack.Success)
	assert.Equal(t, "player_id is required", ack.Message)

	f.connect(t, sess, "p1", "Alice")
	drain(t, sess)

	// Connecting twice on one session is refused outright.
	f.connect(t, sess, "p1b", "Alice2")
	msgs = drain(t, sess)
	assert.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgError, msgs[0].Type)

	// A second session reusing a live player id is refused too.
	other := f.newClient(t)
	f.connect(t, other, "p1", "Impostor")
	msgs = drain(t, other)
	assert.Len(t, msgs, 1)
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &ack))
	assert.False(t, ack.Success)
	assert.Equal(t, "player already connected", ack.Message)
	assert.Equal(t, 1, f.world.Count())
}

func TestMalformedMessageGetsErrorReply(t *testing.T) {
	f := newGameFixture(t)
	sess := f.newClient(t)

	f.game.HandleMessage(sess, []byte(`{{{`))
	msgs := drain(t, sess)
	assert.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgError, msgs[0].Type)

	// Unknown types are ignored without a reply.
	f.game.HandleMessage(sess, []byte(`{"type":"WARP_TO_ZERO"}`))
	assert.Empty(t, drain(t, sess))
}

func TestInputMoveOverwritesVelocity(t *testing.T) {
	f := newGameFixture(t)
	sess := f.newClient(t)

	f.game.HandleMessage(sess, []byte(`{"type":"INPUT_MOVE","data":{"x":100,"y":0,"z":-50}}`))
	msgs := drain(t, sess)
	assert.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgError, msgs[0].Type, "movement before connect")

	f.connect(t, sess, "p1", "Alice")
	drain(t, sess)

	f.game.HandleMessage(sess, []byte(`{"type":"INPUT_MOVE","data":{"x":100,"y":0,"z":-50}}`))
	vel, ok := f.stores.Velocity.Get(ecs.EntityID(sess.EntityID))
	assert.True(t, ok)
	assert.Equal(t, 100.0, vel.VX)
	assert.Equal(t, -50.0, vel.VZ)
}

func TestChatBroadcastAndLengthCap(t *testing.T) {
	f := newGameFixture(t)

	alice := f.newClient(t)
	f.connect(t, alice, "p1", "Alice")
	bob := f.newClient(t)
	f.connect(t, bob, "p2", "Bob")
	drain(t, alice)
	drain(t, bob)

	f.game.HandleMessage(alice, []byte(`{"type":"CHAT","data":{"message":"o7"}}`))

	for _, sess := range []*net.Session{alice, bob} {
		msgs := drain(t, sess)
		assert.Len(t, msgs, 1)
		assert.Equal(t, protocol.MsgChatOut, msgs[0].Type)
		var chat protocol.ChatData
		assert.NoError(t, json.Unmarshal(msgs[0].Data, &chat))
		assert.Equal(t, "Alice", chat.Sender)
		assert.Equal(t, "o7", chat.Message)
	}

	long := strings.Repeat("a", 400)
	raw, _ := json.Marshal(map[string]any{"type": "CHAT", "data": map[string]string{"message": long}})
	f.game.HandleMessage(alice, raw)
	msgs := drain(t, bob)
	assert.Len(t, msgs, 1)
	var chat protocol.ChatData
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &chat))
	assert.Len(t, chat.Message, 256)

	// A multibyte message is cut on a rune boundary, never mid-rune.
	wide := strings.Repeat("✓", 100)
	raw, _ = json.Marshal(map[string]any{"type": "CHAT", "data": map[string]string{"message": wide}})
	f.game.HandleMessage(alice, raw)
	msgs = drain(t, bob)
	assert.Len(t, msgs, 1)
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &chat))
	assert.True(t, utf8.ValidString(chat.Message))
	assert.Len(t, chat.Message, 255)

	// Empty chat lines are dropped silently.
	f.game.HandleMessage(alice, []byte(`{"type":"CHAT","data":{"message":""}}`))
	assert.Empty(t, drain(t, bob))
}

func TestConnectNameCapKeepsRunesWhole(t *testing.T) {
	f := newGameFixture(t)
	sess := f.newClient(t)

	// 25 bytes against a 24-byte cap, with the cut landing inside the
	// final two-byte rune.
	f.connect(t, sess, "p1", "a"+strings.Repeat("é", 12))

	assert.True(t, utf8.ValidString(sess.CharName))
	assert.Len(t, sess.CharName, 23)
}

func TestStateUpdateCoversPositionlessEntities(t *testing.T) {
	f := newGameFixture(t)

	// A structure with hit points but no position, and a bookkeeping-only
	// marker with neither.
	structID := ecs.EntityID("structure-1")
	assert.NoError(t, f.world.CreateEntity(structID))
	health := component.DefaultHealth()
	f.stores.Health.Set(structID, &health)

	markID := ecs.EntityID("system-Test")
	assert.NoError(t, f.world.CreateEntity(markID))
	f.stores.SolarSystem.Set(markID, &component.SolarSystem{Name: "Test"})

	sess := f.newClient(t)
	f.connect(t, sess, "p1", "Alice")
	replay := drain(t, sess)
	var replayed []string
	for _, env := range replay {
		if env.Type != protocol.MsgSpawnEntity {
			continue
		}
		var sp protocol.SpawnEntityData
		assert.NoError(t, json.Unmarshal(env.Data, &sp))
		replayed = append(replayed, sp.EntityID)
	}
	assert.Contains(t, replayed, "structure-1")
	assert.NotContains(t, replayed, "system-Test")

	f.game.BroadcastState()
	msgs := drain(t, sess)
	assert.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgStateUpdate, msgs[0].Type)
	var update protocol.StateUpdateData
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &update))

	byID := make(map[string]protocol.EntityState, len(update.Entities))
	for _, st := range update.Entities {
		byID[st.ID] = st
	}
	st, ok := byID["structure-1"]
	assert.True(t, ok, "health-only entity belongs in the snapshot")
	assert.Nil(t, st.Pos)
	assert.NotNil(t, st.Health)
	assert.NotContains(t, byID, "system-Test")
	assert.NotNil(t, byID[sess.EntityID].Pos)
}

func TestDisconnectMarksEntityForDestruction(t *testing.T) {
	f := newGameFixture(t)
	sess := f.newClient(t)
	f.connect(t, sess, "p1", "Alice")
	id := ecs.EntityID(sess.EntityID)

	f.game.HandleDisconnect(sess)
	assert.Empty(t, sess.EntityID)
	assert.Empty(t, sess.CharName)
	assert.True(t, f.world.HasEntity(id), "destruction is deferred to tick end")

	flushed := f.world.FlushDestroyQueue()
	assert.Equal(t, []ecs.EntityID{id}, flushed)
	assert.False(t, f.world.HasEntity(id))

	// The player id is free again for a reconnect.
	again := f.newClient(t)
	f.connect(t, again, "p1", "Alice")
	msgs := drain(t, again)
	var ack protocol.ConnectAckData
	assert.NoError(t, json.Unmarshal(msgs[0].Data, &ack))
	assert.True(t, ack.Success)
}
