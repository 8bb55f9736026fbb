package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedJoin struct {
	playerID string
	name     string
}

type recordedMove struct {
	playerID string
	roomID   string
	cell     int
}

type recordedChat struct {
	roomID string
	name   string
	text   string
}

type fakeManager struct {
	joins       []recordedJoin
	moves       []recordedMove
	chats       []recordedChat
	disconnects []string
}

func (that *fakeManager) Join(_ context.Context, playerID, name string) {
	that.joins = append(that.joins, recordedJoin{playerID: playerID, name: name})
}

func (that *fakeManager) SubmitMove(playerID, roomID string, cell int) {
	that.moves = append(that.moves, recordedMove{playerID: playerID, roomID: roomID, cell: cell})
}

func (that *fakeManager) SendChat(roomID, name, text string) {
	that.chats = append(that.chats, recordedChat{roomID: roomID, name: name, text: text})
}

func (that *fakeManager) Disconnect(playerID string) {
	that.disconnects = append(that.disconnects, playerID)
}

func newTestServer() (*Server, *fakeManager) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	server := New(logger)

	manager := &fakeManager{}
	server.SetManager(manager)

	return server, manager
}

func message(t *testing.T, action string, payload any) *Message {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	return &Message{Action: action, Payload: raw}
}

func TestServer_HandleJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Join passes the display name through", func(t *testing.T) {
		server, manager := newTestServer()

		msg := message(t, "game:join", JoinPayload{Name: "Alice"})

		err := server.handleJoin(ctx, "player-1", msg)

		require.NoError(t, err)
		assert.Equal(t, []recordedJoin{{playerID: "player-1", name: "Alice"}}, manager.joins)
	})

	t.Run("Missing name falls back to Anonymous", func(t *testing.T) {
		server, manager := newTestServer()

		msg := message(t, "game:join", JoinPayload{})

		err := server.handleJoin(ctx, "player-1", msg)

		require.NoError(t, err)
		assert.Equal(t, "Anonymous", manager.joins[0].name)
	})

	t.Run("Malformed payload is rejected", func(t *testing.T) {
		server, manager := newTestServer()

		msg := &Message{Action: "game:join", Payload: json.RawMessage(`"not an object"`)}

		err := server.handleJoin(ctx, "player-1", msg)

		require.Error(t, err)
		assert.Empty(t, manager.joins)
	})
}

func TestServer_HandleTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Turn forwards room and cell", func(t *testing.T) {
		server, manager := newTestServer()

		msg := message(t, "game:turn", TurnPayload{RoomID: "room-1", Cell: 4})

		err := server.handleTurn(ctx, "player-1", msg)

		require.NoError(t, err)
		assert.Equal(t, []recordedMove{{playerID: "player-1", roomID: "room-1", cell: 4}}, manager.moves)
	})
}

func TestServer_HandleChat(t *testing.T) {
	ctx := context.Background()

	t.Run("Chat forwards room, name and text", func(t *testing.T) {
		server, manager := newTestServer()

		msg := message(t, "chat:message", ChatPayload{RoomID: "room-1", Name: "Alice", Text: "hello"})

		err := server.handleChat(ctx, "player-1", msg)

		require.NoError(t, err)
		assert.Equal(t, []recordedChat{{roomID: "room-1", name: "Alice", text: "hello"}}, manager.chats)
	})
}
