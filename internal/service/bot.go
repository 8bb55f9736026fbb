package service

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type BotService interface {
	ChooseMove(game *entity.Game) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// ChooseMove picks one of the empty cells uniformly at random. No
// search, no heuristic - an intentionally weak opponent.
func (that *botService) ChooseMove(game *entity.Game) (int, error) {
	availableCells := game.AvailableCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}
