package usecase

import (
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Session is one active pairing: a room with exactly two participants,
// the authoritative round state and the win tally for this pairing.
// The tally starts at zero when the room is formed and is never
// persisted; the room survives finished rounds and dies only when a
// participant disconnects.
type Session struct {
	ID      string
	Players [2]*entity.Player
	Game    *entity.Game

	// Tally is index-aligned with Players.
	Tally [2]int
}

func (that *Session) PlayerByID(id string) (*entity.Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return nil, false
}

func (that *Session) PlayerByMark(mark string) (*entity.Player, int) {
	for i, player := range that.Players {
		if player.Mark == mark {
			return player, i
		}
	}

	return nil, -1
}

func (that *Session) Opponent(id string) *entity.Player {
	for _, player := range that.Players {
		if player.ID != id {
			return player
		}
	}

	return nil
}

func (that *Session) BotPlayer() *entity.Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// TallyByName renders the session score the way clients display it.
func (that *Session) TallyByName() map[string]int {
	scores := make(map[string]int, len(that.Players))
	for i, player := range that.Players {
		scores[player.Name] = that.Tally[i]
	}

	return scores
}
