package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleJoin(ctx context.Context, playerID string, msg *Message) error {
	var payload JoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Name == "" {
		payload.Name = "Anonymous"
	}

	that.manager.Join(ctx, playerID, payload.Name)

	return nil
}

func (that *Server) handleTurn(_ context.Context, playerID string, msg *Message) error {
	var payload TurnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.SubmitMove(playerID, payload.RoomID, payload.Cell)

	return nil
}

func (that *Server) handleChat(_ context.Context, _ string, msg *Message) error {
	var payload ChatPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.SendChat(payload.RoomID, payload.Name, payload.Text)

	return nil
}
