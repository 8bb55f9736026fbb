package usecase

// Outbound actions. Wire encoding is a JSON envelope of
// {"action": ..., "payload": ...}, written by the transport.
const (
	ActionWaiting      = "game:waiting"
	ActionStart        = "game:start"
	ActionUpdate       = "game:update"
	ActionGameOver     = "game:over"
	ActionDraw         = "game:draw"
	ActionOpponentLeft = "game:opponent-left"
	ActionChatMessage  = "chat:message"
)

type WaitingPayload struct {
	Message string `json:"message"`
}

// StartPayload is perspective-specific: each participant learns its own
// mark and whether it moves first.
type StartPayload struct {
	RoomID   string         `json:"room_id"`
	Mark     string         `json:"mark"`
	YourTurn bool           `json:"your_turn"`
	Opponent string         `json:"opponent"`
	Scores   map[string]int `json:"scores"`
	Board    [9]string      `json:"board"`
}

type UpdatePayload struct {
	Board  [9]string      `json:"board"`
	Turn   string         `json:"turn"`
	Scores map[string]int `json:"scores"`
}

type GameOverPayload struct {
	Winner string         `json:"winner"`
	Loser  string         `json:"loser"`
	Scores map[string]int `json:"scores"`
	Board  [9]string      `json:"board"`
}

type DrawPayload struct {
	Board  [9]string      `json:"board"`
	Scores map[string]int `json:"scores"`
}

type ChatPayload struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type OpponentLeftPayload struct{}
