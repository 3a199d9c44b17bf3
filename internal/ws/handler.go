package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/flippy/referee/internal/models"
	"github.com/lk16/flippy/referee/internal/repository"
	"github.com/lk16/flippy/referee/internal/services"
)

const (
	requestTimeout = 2 * time.Second
)

// Conn is the part of a websocket connection used by Handler.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	repo      *repository.MoveRepository
	ws        Conn
	sessionID string
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, services *services.Services, sessionID string) *Handler {
	return &Handler{
		repo:      repository.NewMoveRepositoryFromServices(services),
		ws:        ws,
		sessionID: sessionID,
	}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "session", h.sessionID, "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "session", h.sessionID, "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (any, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch req.Event {
	case EventLegalMovesRequest:
		return h.handleLegalMovesRequest(ctx, req)
	case EventApplyMoveRequest:
		return h.handleApplyMoveRequest(ctx, req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until reading or writing fails.
// Requests that cannot be served get a reply with an error, the connection stays open.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		outgoing := &Outgoing{ID: req.ID}

		data, err := h.handleMessage(req)
		if err != nil {
			slog.Info("ws request failed", "session", h.sessionID, "event", req.Event, "error", err)
			outgoing.Error = err.Error()
		} else {
			outgoing.Data = data
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleLegalMovesRequest(ctx context.Context, req *Incoming) (any, error) {
	var reqData LegalMovesRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws legal moves request unmarshal error: %w", err)
	}

	board, player, err := reqData.Parse()
	if err != nil {
		return nil, err
	}

	moves, err := h.repo.LookupLegalMoves(ctx, board, player)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup legal moves: %w", err)
	}

	return models.LegalMovesResponse{Moves: moves.Sorted()}, nil
}

func (h *Handler) handleApplyMoveRequest(ctx context.Context, req *Incoming) (any, error) {
	var reqData ApplyMoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws apply move request unmarshal error: %w", err)
	}

	board, player, move, err := reqData.Parse()
	if err != nil {
		return nil, err
	}

	response, err := h.repo.ApplyLegalMove(ctx, board, player, move)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	return response, nil
}
