package websocket

import "encoding/json"

// Message is the wire envelope in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	Name string `json:"name"`
}

type TurnPayload struct {
	RoomID string `json:"room_id"`
	Cell   int    `json:"cell"`
}

type ChatPayload struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}
