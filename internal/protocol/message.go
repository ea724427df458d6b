package protocol

import (
	"encoding/json"
	"fmt"
)

// Message types consumed from clients. Matching is case-sensitive; unknown
// types are ignored upstream for forward compatibility.
const (
	MsgConnect    = "CONNECT"
	MsgDisconnect = "DISCONNECT"
	MsgInputMove  = "INPUT_MOVE"
	MsgChat       = "CHAT"
)

// Message types produced for clients.
const (
	MsgConnectAck    = "connect_ack"
	MsgStateUpdate   = "state_update"
	MsgSpawnEntity   = "spawn_entity"
	MsgDestroyEntity = "destroy_entity"
	MsgChatOut       = "chat"
	MsgError         = "error"
)

// Message is one parsed client envelope. Data is the re-serialized payload
// so callers stay decoupled from the parse tree; empty when absent.
type Message struct {
	Type string
	Data string
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ParseMessage parses a single line into (type, data). The line must be one
// JSON object with a required string "type" field; "data" is optional.
func ParseMessage(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, fmt.Errorf("malformed envelope: %w", err)
	}
	if env.Type == "" {
		return Message{}, fmt.Errorf("envelope missing type field")
	}
	return Message{Type: env.Type, Data: string(env.Data)}, nil
}

func marshalEnvelope(msgType string, data any) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		// Payloads are plain structs of scalars/slices; this cannot fail
		// with valid component data.
		raw = []byte("{}")
	}
	out, _ := json.Marshal(envelope{Type: msgType, Data: raw})
	return out
}
