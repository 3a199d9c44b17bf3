package ws

import (
	"encoding/json"

	"github.com/lk16/flippy/referee/internal/models"
)

const (
	EventLegalMovesRequest = "legal_moves_request"
	EventApplyMoveRequest  = "apply_move_request"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is the reply to an Incoming message with the same ID.
// Either Data or Error is set.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type LegalMovesRequest = models.LegalMovesPayload

type ApplyMoveRequest = models.ApplyMovePayload
