package protocol

// Canonical outbound envelope builders. Every builder returns one JSON
// object without trailing newline; framing is added at the socket.

type ConnectAckData struct {
	Success        bool   `json:"success"`
	PlayerEntityID string `json:"player_entity_id"`
	Message        string `json:"message"`
}

func ConnectAck(success bool, entityID, message string) []byte {
	return marshalEnvelope(MsgConnectAck, ConnectAckData{
		Success:        success,
		PlayerEntityID: entityID,
		Message:        message,
	})
}

// EntityState is one entity's slice of a state_update. Optional sections are
// omitted when the entity lacks the component.
type EntityState struct {
	ID     string       `json:"id"`
	Pos    *PosState    `json:"pos,omitempty"`
	Vel    *VelState    `json:"vel,omitempty"`
	Health *HealthState `json:"health,omitempty"`
}

type PosState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

type VelState struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	VZ float64 `json:"vz"`
}

type HealthState struct {
	ShieldHP  float64 `json:"shield_hp"`
	ShieldMax float64 `json:"shield_max"`
	ArmorHP   float64 `json:"armor_hp"`
	ArmorMax  float64 `json:"armor_max"`
	HullHP    float64 `json:"hull_hp"`
	HullMax   float64 `json:"hull_max"`
}

type StateUpdateData struct {
	Entities []EntityState `json:"entities"`
}

func StateUpdate(entities []EntityState) []byte {
	return marshalEnvelope(MsgStateUpdate, StateUpdateData{Entities: entities})
}

type SpawnEntityData struct {
	EntityID string       `json:"entity_id"`
	Position *PosState    `json:"position,omitempty"`
	Health   *HealthState `json:"health,omitempty"`
	ShipType string       `json:"ship_type,omitempty"`
	ShipName string       `json:"ship_name,omitempty"`
	Faction  string       `json:"faction,omitempty"`
}

func SpawnEntity(data SpawnEntityData) []byte {
	return marshalEnvelope(MsgSpawnEntity, data)
}

type DestroyEntityData struct {
	EntityID string `json:"entity_id"`
}

func DestroyEntity(entityID string) []byte {
	return marshalEnvelope(MsgDestroyEntity, DestroyEntityData{EntityID: entityID})
}

type ChatData struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

func Chat(sender, message string) []byte {
	return marshalEnvelope(MsgChatOut, ChatData{Sender: sender, Message: message})
}

type ErrorData struct {
	Message string `json:"message"`
}

func Error(message string) []byte {
	return marshalEnvelope(MsgError, ErrorData{Message: message})
}
