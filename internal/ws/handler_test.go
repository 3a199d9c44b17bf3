package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/flippy/referee/internal/models"
	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/services"
	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

type fakeConn struct {
	incoming []string
	outgoing [][]byte
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	if len(f.incoming) == 0 {
		return 0, nil, errClosed
	}

	msg := f.incoming[0]
	f.incoming = f.incoming[1:]
	return websocket.TextMessage, []byte(msg), nil
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.outgoing = append(f.outgoing, data)
	return nil
}

type rawOutgoing struct {
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func runHandler(t *testing.T, messages ...string) []rawOutgoing {
	t.Helper()

	s := services.NewEngineOnly()
	t.Cleanup(func() {
		_ = s.Close()
	})

	conn := &fakeConn{incoming: messages}
	err := NewHandler(conn, s, "test-session").Handle()
	require.ErrorIs(t, err, errClosed)

	replies := make([]rawOutgoing, len(conn.outgoing))
	for i, msg := range conn.outgoing {
		require.NoError(t, json.Unmarshal(msg, &replies[i]))
	}
	return replies
}

func TestHandleLegalMovesRequest(t *testing.T) {
	board := othello.NewBoardStartMust(8).String()

	replies := runHandler(t,
		`{"event":"legal_moves_request","id":7,"data":{"board":"`+board+`","player":"white"}}`,
	)
	require.Len(t, replies, 1)
	require.Equal(t, 7, replies[0].ID)
	require.Empty(t, replies[0].Error)

	var response struct {
		Moves []string `json:"moves"`
	}
	require.NoError(t, json.Unmarshal(replies[0].Data, &response))
	require.Equal(t, []string{"e3", "f4", "c5", "d6"}, response.Moves)
}

func TestHandleApplyMoveRequest(t *testing.T) {
	board := othello.NewBoardStartMust(8).String()

	replies := runHandler(t,
		`{"event":"apply_move_request","id":1,"data":{"board":"`+board+`","player":"black","move":"c4"}}`,
		`{"event":"apply_move_request","id":2,"data":{"board":"`+board+`","player":"black","move":"a1"}}`,
	)
	require.Len(t, replies, 2)

	require.Equal(t, 1, replies[0].ID)
	require.Empty(t, replies[0].Error)

	var response models.ApplyMoveResponse
	require.NoError(t, json.Unmarshal(replies[0].Data, &response))
	require.Equal(t, 1, response.Flipped)
	require.Equal(t, othello.PlayerWhite, response.NextPlayer)

	next, err := othello.NewBoardFromString(response.Board)
	require.NoError(t, err)
	require.Equal(t, othello.Black, next.Get(othello.MustParseCoordinate("c4")))
	require.Equal(t, othello.Black, next.Get(othello.MustParseCoordinate("d4")))

	require.Equal(t, 2, replies[1].ID)
	require.Contains(t, replies[1].Error, "illegal move")
	require.Empty(t, replies[1].Data)
}

func TestHandleInvalidRequests(t *testing.T) {
	replies := runHandler(t,
		`{"id":1}`,
		`{"event":"unknown","id":2}`,
		`{"event":"legal_moves_request","id":3,"data":{"player":"black"}}`,
	)
	require.Len(t, replies, 3)

	require.Equal(t, "event field is either empty or missing", replies[0].Error)
	require.Equal(t, "unknown event: unknown", replies[1].Error)
	require.Equal(t, "board field is either empty or missing", replies[2].Error)
}

func TestHandleMalformedMessage(t *testing.T) {
	s := services.NewEngineOnly()
	defer s.Close()

	conn := &fakeConn{incoming: []string{"not json"}}
	err := NewHandler(conn, s, "test-session").Handle()

	require.ErrorContains(t, err, "unmarshal error")
	require.Empty(t, conn.outgoing)
}
