package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/referee/internal"
	"github.com/lk16/flippy/referee/internal/config"
	"github.com/lk16/flippy/referee/internal/models"
	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/referee"
	"github.com/lk16/flippy/referee/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

var startBoard = othello.NewBoardStartMust(8).String()

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.ServerConfig{
		BoardSize: othello.DefaultBoardSize,
		Token:     testToken,
	}

	s := services.NewEngineOnly()
	t.Cleanup(func() {
		_ = s.Close()
	})

	return internal.BuildApp(cfg, s)
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-token", testToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		resp.Body.Close()
	})

	return resp
}

func TestMovesNoAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/moves/start", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetStart(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantStatusCode int
		wantBoard      string
	}{
		{
			name:           "default size",
			query:          "",
			wantStatusCode: http.StatusOK,
			wantBoard:      startBoard,
		},
		{
			name:           "size 4",
			query:          "?size=4",
			wantStatusCode: http.StatusOK,
			wantBoard:      "-----wb--bw-----",
		},
		{
			name:           "odd size",
			query:          "?size=5",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "too large",
			query:          "?size=28",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			resp := doRequest(t, app, http.MethodGet, "/api/moves/start"+tt.query, nil)

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode == http.StatusOK {
				var response models.StartResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

				assert.Equal(t, tt.wantBoard, response.Board)
				assert.Equal(t, othello.PlayerBlack, response.Player)
			}
		})
	}
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name           string
		payload        any
		wantStatusCode int
		wantMoves      []string
	}{
		{
			name:           "black at start",
			payload:        models.LegalMovesPayload{Board: startBoard, Player: "black"},
			wantStatusCode: http.StatusOK,
			wantMoves:      []string{"d3", "c4", "f5", "e6"},
		},
		{
			name:           "white at start",
			payload:        models.LegalMovesPayload{Board: startBoard, Player: "white"},
			wantStatusCode: http.StatusOK,
			wantMoves:      []string{"e3", "f4", "c5", "d6"},
		},
		{
			name:           "no discs",
			payload:        models.LegalMovesPayload{Board: "----------------", Player: "black"},
			wantStatusCode: http.StatusOK,
			wantMoves:      []string{},
		},
		{
			name:           "missing board",
			payload:        models.LegalMovesPayload{Player: "black"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid player",
			payload:        models.LegalMovesPayload{Board: startBoard, Player: "red"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid board",
			payload:        models.LegalMovesPayload{Board: "bw", Player: "black"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			payload:        "not an object",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			resp := doRequest(t, app, http.MethodPost, "/api/moves/legal", tt.payload)

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode == http.StatusOK {
				var response struct {
					Moves []string `json:"moves"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

				assert.Equal(t, tt.wantMoves, response.Moves)
			}
		})
	}
}

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name           string
		payload        models.ApplyMovePayload
		wantStatusCode int
		wantFlipped    int
		wantNext       othello.Player
		wantScore      referee.Score
	}{
		{
			name:           "black plays d3",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "black", Move: "d3"},
			wantStatusCode: http.StatusOK,
			wantFlipped:    1,
			wantNext:       othello.PlayerWhite,
			wantScore:      referee.Score{Black: 4, White: 1},
		},
		{
			name:           "white plays e3",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "white", Move: "e3"},
			wantStatusCode: http.StatusOK,
			wantFlipped:    1,
			wantNext:       othello.PlayerBlack,
			wantScore:      referee.Score{Black: 1, White: 4},
		},
		{
			name:           "illegal move",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "black", Move: "a1"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "occupied square",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "black", Move: "d4"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "off the board",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "black", Move: "j9"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing move",
			payload:        models.ApplyMovePayload{Board: startBoard, Player: "black"},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			resp := doRequest(t, app, http.MethodPost, "/api/moves/apply", tt.payload)

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode == http.StatusOK {
				var response models.ApplyMoveResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

				assert.Equal(t, tt.wantFlipped, response.Flipped)
				assert.Equal(t, tt.wantNext, response.NextPlayer)
				assert.False(t, response.GameOver)
				assert.Equal(t, tt.wantScore, response.Score)
			}
		})
	}
}

func TestApplyMoveGameOver(t *testing.T) {
	app := newTestApp(t)

	// Black takes the last white disc.
	payload := models.ApplyMovePayload{Board: "bw--------------", Player: "black", Move: "c1"}
	resp := doRequest(t, app, http.MethodPost, "/api/moves/apply", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response models.ApplyMoveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

	assert.Equal(t, "bbb-------------", response.Board)
	assert.True(t, response.GameOver)
	assert.Equal(t, referee.Score{Black: 3, White: 0}, response.Score)
}

func TestMovesEngineShutdown(t *testing.T) {
	cfg := &config.ServerConfig{BoardSize: othello.DefaultBoardSize, Token: testToken}
	s := services.NewEngineOnly()
	require.NoError(t, s.Close())

	app := internal.BuildApp(cfg, s)

	payload := models.LegalMovesPayload{Board: startBoard, Player: "black"}
	resp := doRequest(t, app, http.MethodPost, "/api/moves/legal", payload)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetMoveStats(t *testing.T) {
	app := newTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/moves/stats", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response []models.MoveStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Empty(t, response)
}
