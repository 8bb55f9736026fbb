package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
)

const waitingMessage = "Waiting for an opponent or AI to join..."

type botService interface {
	ChooseMove(game *entity.Game) (int, error)
}

type scoreService interface {
	RecordWin(name string)
	Summary(ctx context.Context) (map[string]int, error)
}

// notifier delivers one outbound event to one connected participant.
// Implementations must not block: the manager calls it while holding
// its lock.
type notifier interface {
	Send(playerID, action string, payload any)
}

// waitingSlot holds the single participant awaiting a match. The
// generation counter lets a fired bot-join timer detect that the slot
// it captured has since been claimed or vacated.
type waitingSlot struct {
	player     *entity.Player
	timer      *time.Timer
	generation uint64
}

// GameManager owns all matchmaking and session state. Every inbound
// event (join, move, chat, disconnect) and every timer callback
// serializes on one mutex, so two simultaneous joiners can never both
// observe an empty waiting slot.
type GameManager struct {
	logger   *slog.Logger
	scores   scoreService
	bot      botService
	notifier notifier

	botJoinTimeout time.Duration
	botMoveDelay   time.Duration

	mu         sync.Mutex
	waiting    *waitingSlot
	generation uint64
	sessions   map[string]*Session
	byPlayer   map[string]string
}

func NewGameManager(logger *slog.Logger, scores scoreService, bot botService, notifier notifier, botJoinTimeout, botMoveDelay time.Duration) *GameManager {
	return &GameManager{
		logger:   logger,
		scores:   scores,
		bot:      bot,
		notifier: notifier,

		botJoinTimeout: botJoinTimeout,
		botMoveDelay:   botMoveDelay,

		sessions: make(map[string]*Session),
		byPlayer: make(map[string]string),
	}
}

// Join enters a participant into matchmaking. With an empty waiting
// slot the caller becomes the sole waiter and a bot-join fallback is
// armed; otherwise the caller is paired with whoever is waiting.
func (that *GameManager) Join(ctx context.Context, playerID, name string) {
	log := that.logger.With("method", "Join", "playerID", playerID)

	that.mu.Lock()

	if _, inGame := that.byPlayer[playerID]; inGame {
		that.mu.Unlock()
		log.Debug("join ignored, player already in a game")
		return
	}

	if that.waiting != nil && that.waiting.player.ID != playerID {
		waiter := that.claimWaitingLocked()
		session := that.createSessionLocked(waiter, &entity.Player{ID: playerID, Name: name})
		that.mu.Unlock()

		log.Info("paired with waiting player", "roomID", session.ID)
		that.announceStart(ctx, session)
		return
	}

	// Become (or refresh) the sole waiter.
	if that.waiting != nil {
		that.waiting.timer.Stop()
	}

	that.generation++
	slot := &waitingSlot{
		player:     &entity.Player{ID: playerID, Name: name},
		generation: that.generation,
	}
	generation := slot.generation
	slot.timer = time.AfterFunc(that.botJoinTimeout, func() {
		that.startBotGame(generation)
	})
	that.waiting = slot
	that.mu.Unlock()

	log.Info("waiting for an opponent")
	that.notifier.Send(playerID, ActionWaiting, WaitingPayload{Message: waitingMessage})
}

// startBotGame fires when the bot-join timer expires. The generation
// check makes a stale timer a no-op: the slot may have been claimed by
// a second human or vacated by a disconnect in the meantime.
func (that *GameManager) startBotGame(generation uint64) {
	log := that.logger.With("method", "startBotGame")

	that.mu.Lock()
	if that.waiting == nil || that.waiting.generation != generation {
		that.mu.Unlock()
		return
	}

	waiter := that.claimWaitingLocked()
	session := that.createSessionLocked(waiter, entity.NewBotPlayer())
	that.mu.Unlock()

	log.Info("no opponent arrived, starting bot game", "roomID", session.ID, "playerID", waiter.ID)
	that.announceStart(context.Background(), session)
}

// SubmitMove validates and applies one move. Unknown rooms, moves out
// of turn and occupied or out-of-range cells change nothing and emit
// nothing.
func (that *GameManager) SubmitMove(playerID, roomID string, cell int) {
	log := that.logger.With("method", "SubmitMove", "playerID", playerID, "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[roomID]
	if !ok {
		log.Debug("move for unknown room dropped")
		return
	}

	player, ok := session.PlayerByID(playerID)
	if !ok {
		log.Debug("move from player outside the room dropped")
		return
	}

	if err := session.Game.MakeTurn(player.Mark, cell); err != nil {
		log.Debug("move rejected", "cell", cell, "error", err)
		return
	}

	that.afterMoveLocked(session)
}

// makeBotMove fires after the bot-move delay. It re-validates the
// session under the lock: the room may be gone, or the turn may no
// longer belong to the bot.
func (that *GameManager) makeBotMove(roomID string) {
	log := that.logger.With("method", "makeBotMove", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[roomID]
	if !ok {
		return
	}

	botPlayer := session.BotPlayer()
	if botPlayer == nil || session.Game.Turn != botPlayer.Mark {
		return
	}

	cell, err := that.bot.ChooseMove(session.Game)
	if err != nil {
		// Unreachable while win/draw detection runs before the bot is
		// asked to move.
		log.Error("bot has no available moves", "error", err)
		return
	}

	if err = session.Game.MakeTurn(botPlayer.Mark, cell); err != nil {
		log.Error("bot failed to make turn", "cell", cell, "error", err)
		return
	}

	that.afterMoveLocked(session)
}

// SendChat relays a chat line verbatim to every human in the room. No
// game state is touched.
func (that *GameManager) SendChat(roomID, name, text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[roomID]
	if !ok {
		that.logger.Debug("chat for unknown room dropped", "roomID", roomID)
		return
	}

	that.broadcastLocked(session, ActionChatMessage, ChatPayload{Name: name, Text: text})
}

// Disconnect removes a participant. A waiter vacates the slot and the
// fallback timer; a session participant tears the room down and the
// remaining human is told the opponent left. Repeated disconnects for
// the same identity are no-ops.
func (that *GameManager) Disconnect(playerID string) {
	log := that.logger.With("method", "Disconnect", "playerID", playerID)

	that.mu.Lock()

	if that.waiting != nil && that.waiting.player.ID == playerID {
		that.waiting.timer.Stop()
		that.waiting = nil
		that.mu.Unlock()

		log.Info("waiting player left")
		return
	}

	roomID, ok := that.byPlayer[playerID]
	if !ok {
		that.mu.Unlock()
		return
	}

	session := that.sessions[roomID]
	delete(that.sessions, roomID)
	for _, player := range session.Players {
		if !player.IsBot() {
			delete(that.byPlayer, player.ID)
		}
	}

	opponent := session.Opponent(playerID)
	that.mu.Unlock()

	log.Info("player left mid-session", "roomID", roomID)

	if opponent != nil && !opponent.IsBot() {
		that.notifier.Send(opponent.ID, ActionOpponentLeft, OpponentLeftPayload{})
	}
}

// claimWaitingLocked empties the waiting slot and cancels its timer.
func (that *GameManager) claimWaitingLocked() *entity.Player {
	slot := that.waiting
	slot.timer.Stop()
	that.waiting = nil

	return slot.player
}

func (that *GameManager) createSessionLocked(first, second *entity.Player) *Session {
	// Tallies and outcome payloads key on display names, so two
	// same-named participants must not collapse into one entry.
	if second.Name == first.Name {
		second.Name += " (2)"
	}

	first.Mark, second.Mark = entity.GetRandomMarks()

	session := &Session{
		ID:      pkg.GenerateRoomID(),
		Players: [2]*entity.Player{first, second},
		Game:    entity.NewGame(),
	}

	that.sessions[session.ID] = session
	for _, player := range session.Players {
		if !player.IsBot() {
			that.byPlayer[player.ID] = session.ID
		}
	}

	return session
}

func (that *GameManager) announceStart(ctx context.Context, session *Session) {
	log := that.logger.With("method", "announceStart", "roomID", session.ID)

	summary, err := that.scores.Summary(ctx)
	if err != nil {
		// The ledger is informational here; the game starts regardless.
		log.Error("failed to load scores summary", "error", err)
		summary = map[string]int{}
	}

	type startEvent struct {
		playerID string
		payload  StartPayload
	}

	// Both payloads are composed under the lock: the first recipient
	// can submit a move the moment it learns the room ID, and that
	// move must not bleed into the second payload.
	that.mu.Lock()
	events := make([]startEvent, 0, len(session.Players))
	for _, player := range session.Players {
		if player.IsBot() {
			continue
		}

		events = append(events, startEvent{
			playerID: player.ID,
			payload: StartPayload{
				RoomID:   session.ID,
				Mark:     player.Mark,
				YourTurn: session.Game.Turn == player.Mark,
				Opponent: session.Opponent(player.ID).Name,
				Scores:   summary,
				Board:    session.Game.Board,
			},
		})
	}
	that.scheduleBotMoveLocked(session)
	that.mu.Unlock()

	for _, event := range events {
		that.notifier.Send(event.playerID, ActionStart, event.payload)
	}
}

// afterMoveLocked runs once a move has been applied: it attributes
// wins, broadcasts the outcome, resets the board on terminal states and
// hands the turn to the bot when it is next.
func (that *GameManager) afterMoveLocked(session *Session) {
	game := session.Game

	if !game.IsFinished() {
		that.broadcastLocked(session, ActionUpdate, UpdatePayload{
			Board:  game.Board,
			Turn:   game.Turn,
			Scores: session.TallyByName(),
		})
		that.scheduleBotMoveLocked(session)
		return
	}

	finalBoard := game.Board

	if game.IsTie() {
		game.ResetRound()
		that.broadcastLocked(session, ActionDraw, DrawPayload{
			Board:  finalBoard,
			Scores: session.TallyByName(),
		})
	} else {
		winner, idx := session.PlayerByMark(game.Winner)
		session.Tally[idx]++

		// Only human wins reach the durable ledger; the bot's wins live
		// in the session tally under its display name.
		if !winner.IsBot() {
			that.scores.RecordWin(winner.Name)
		}

		game.ResetRound()
		that.broadcastLocked(session, ActionGameOver, GameOverPayload{
			Winner: winner.Name,
			Loser:  session.Opponent(winner.ID).Name,
			Scores: session.TallyByName(),
			Board:  finalBoard,
		})
	}

	// Same players, fresh board, re-randomized first move.
	that.broadcastLocked(session, ActionUpdate, UpdatePayload{
		Board:  game.Board,
		Turn:   game.Turn,
		Scores: session.TallyByName(),
	})
	that.scheduleBotMoveLocked(session)
}

func (that *GameManager) scheduleBotMoveLocked(session *Session) {
	botPlayer := session.BotPlayer()
	if botPlayer == nil || session.Game.Turn != botPlayer.Mark {
		return
	}

	roomID := session.ID
	time.AfterFunc(that.botMoveDelay, func() {
		that.makeBotMove(roomID)
	})
}

func (that *GameManager) broadcastLocked(session *Session, action string, payload any) {
	for _, player := range session.Players {
		if player.IsBot() {
			continue
		}

		that.notifier.Send(player.ID, action, payload)
	}
}
