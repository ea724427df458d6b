package game

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/protocol"
)

// handleInputMove overwrites the ship's velocity with the client's raw
// vector. The speed clamp happens in MovementSystem on the next integration,
// so an over-speed request degrades gracefully instead of erroring.
func (g *Game) handleInputMove(sess *net.Session, rawData string) {
	if sess.EntityID == "" {
		sess.Send(protocol.Error("not connected"))
		return
	}
	var req protocol.InputMoveData
	if err := json.Unmarshal([]byte(rawData), &req); err != nil {
		sess.Send(protocol.Error("malformed input_move payload"))
		return
	}

	id := ecs.EntityID(sess.EntityID)
	vel, ok := g.stores.Velocity.Get(id)
	if !ok {
		return
	}
	// Manual flight cancels any orbit, approach or warp in progress.
	g.movement.CommandStop(id)
	vel.VX, vel.VY, vel.VZ = req.X, req.Y, req.Z
}

func (g *Game) handleChat(sess *net.Session, rawData string) {
	if sess.EntityID == "" {
		sess.Send(protocol.Error("not connected"))
		return
	}
	var req protocol.ChatInData
	if err := json.Unmarshal([]byte(rawData), &req); err != nil {
		sess.Send(protocol.Error("malformed chat payload"))
		return
	}
	if req.Message == "" {
		return
	}
	if max := g.cfg.Game.ChatMaxLen; max > 0 {
		req.Message = truncateUTF8(req.Message, max)
	}

	g.broadcast(protocol.Chat(sess.CharName, req.Message))
}

// truncateUTF8 caps s at max bytes, stepping back to the nearest rune
// boundary so a multibyte character is never split.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
