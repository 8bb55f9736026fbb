package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

func TestBotService_ChooseMove(t *testing.T) {
	t.Run("Chooses an empty cell", func(t *testing.T) {
		// Given: a board with two empty cells
		game := &entity.Game{
			Board: [9]string{
				entity.PlayerX, entity.PlayerO, entity.PlayerX,
				entity.PlayerO, entity.EmptyCell, entity.PlayerO,
				entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			},
		}

		bot := NewBotService()

		// When: the bot chooses a move
		cell, err := bot.ChooseMove(game)

		// Then: it picks one of the empty cells
		require.NoError(t, err)
		assert.Contains(t, []int{4, 8}, cell)
	})

	t.Run("Only option is taken when one cell remains", func(t *testing.T) {
		// Given: a board with a single empty cell
		game := &entity.Game{
			Board: [9]string{
				entity.PlayerX, entity.PlayerO, entity.PlayerX,
				entity.PlayerO, entity.PlayerX, entity.PlayerO,
				entity.PlayerO, entity.PlayerX, entity.EmptyCell,
			},
		}

		bot := NewBotService()

		// When: the bot chooses a move
		cell, err := bot.ChooseMove(game)

		// Then: the last cell is chosen
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("Error when the board is full", func(t *testing.T) {
		// Given: a fully occupied board
		game := &entity.Game{
			Board: [9]string{
				entity.PlayerX, entity.PlayerO, entity.PlayerX,
				entity.PlayerO, entity.PlayerX, entity.PlayerO,
				entity.PlayerO, entity.PlayerX, entity.PlayerO,
			},
		}

		bot := NewBotService()

		// When: the bot is asked to move
		_, err := bot.ChooseMove(game)

		// Then: an ErrNoAvailableMoves error should be returned
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}
