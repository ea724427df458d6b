package protocol

// Client payload shapes. Despite its name, INPUT_MOVE carries raw velocity
// components, not a destination; MovementSystem clamps the result to the
// ship's max speed on the next tick.

type ConnectData struct {
	PlayerID      string `json:"player_id"`
	CharacterName string `json:"character_name"`
}

type InputMoveData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type ChatInData struct {
	Message string `json:"message"`
}
