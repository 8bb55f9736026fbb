package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
)

type gameManager interface {
	Join(ctx context.Context, playerID, name string)
	SubmitMove(playerID, roomID string, cell int)
	SendChat(roomID, name, text string)
	Disconnect(playerID string)
}

type Server struct {
	logger  *slog.Logger
	manager gameManager

	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*Client

	handlers map[string]func(ctx context.Context, playerID string, message *Message) error
}

func New(logger *slog.Logger) *Server {
	server := &Server{
		logger: logger,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		connections: make(map[string]*Client),
		handlers:    make(map[string]func(context.Context, string, *Message) error),
	}

	server.handlers["game:join"] = server.handleJoin
	server.handlers["game:turn"] = server.handleTurn
	server.handlers["chat:message"] = server.handleChat

	return server
}

// SetManager wires the game manager in. The manager needs this server
// as its notifier, so the two are connected after construction and
// before Start.
func (that *Server) SetManager(manager gameManager) {
	that.manager = manager
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and runs the connection until
// the client goes away. Each connection gets a fresh opaque identity.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	playerID := pkg.GenerateNewSessionID()
	client := newClient(conn, playerID)

	that.connectionsMutex.Lock()
	that.connections[playerID] = client
	that.connectionsMutex.Unlock()

	log.Info("websocket connection established", "playerID", playerID)

	go client.writePump(that.logger)

	that.readLoop(ctx, client)

	// Closing the send channel under the write lock keeps Send from
	// pushing into a closed channel.
	that.connectionsMutex.Lock()
	delete(that.connections, playerID)
	close(client.send)
	that.connectionsMutex.Unlock()

	that.manager.Disconnect(playerID)

	log.Info("websocket connection closed", "playerID", playerID)
}

// readLoop - processes messages from the client until the connection
// drops. Malformed or out-of-protocol messages are dropped.
func (that *Server) readLoop(ctx context.Context, client *Client) {
	log := that.logger.With("method", "readLoop", "playerID", client.playerID)

	client.setupReadDeadlines()

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action dropped", "action", message.Action)
			continue
		}

		if err = handler(ctx, client.playerID, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// Send delivers one event to one connected participant. It never
// blocks: if the client's buffer is full the event is dropped.
func (that *Server) Send(playerID, action string, payload any) {
	log := that.logger.With("method", "Send", "playerID", playerID, "action", action)

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	data, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	// The read lock is held across the push so the channel cannot be
	// closed mid-send.
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	client, ok := that.connections[playerID]
	if !ok {
		log.Debug("connection not found")
		return
	}

	select {
	case client.send <- data:
	default:
		log.Warn("send buffer full, dropping event")
	}
}
