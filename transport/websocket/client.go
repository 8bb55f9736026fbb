package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	sendBufferSize = 256
)

// Client is one connected participant: the raw connection plus a
// buffered outbound queue drained by its write pump.
type Client struct {
	conn     *websocket.Conn
	playerID string
	send     chan []byte
}

func newClient(conn *websocket.Conn, playerID string) *Client {
	return &Client{
		conn:     conn,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
	}
}

func (that *Client) setupReadDeadlines() {
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// writePump drains the send queue and keeps the connection alive with
// periodic pings. It exits when the send channel is closed.
func (that *Client) writePump(logger *slog.Logger) {
	log := logger.With("method", "writePump", "playerID", that.playerID)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		}
	}
}
