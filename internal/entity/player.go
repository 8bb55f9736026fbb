package entity

const (
	// BotPlayerID is the process-wide identity of the AI opponent.
	BotPlayerID   = "bot"
	BotPlayerName = "Computer"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Mark string `json:"mark,omitempty"`
}

func NewBotPlayer() *Player {
	return &Player{
		ID:   BotPlayerID,
		Name: BotPlayerName,
	}
}

func (that *Player) IsBot() bool {
	return that.ID == BotPlayerID
}
