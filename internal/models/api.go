package models

import (
	"errors"
	"fmt"

	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/referee"
)

// LegalMovesPayload represents the payload for a legal moves request.
type LegalMovesPayload struct {
	Board  string `json:"board"`
	Player string `json:"player"`
}

// Parse validates the payload and returns the board and player.
func (p *LegalMovesPayload) Parse() (*othello.Board, othello.Player, error) {
	return parseBoardAndPlayer(p.Board, p.Player)
}

// LegalMovesResponse represents the response for a legal moves request.
type LegalMovesResponse struct {
	Moves []referee.Move `json:"moves"`
}

// ApplyMovePayload represents the payload for an apply move request.
type ApplyMovePayload struct {
	Board  string `json:"board"`
	Player string `json:"player"`
	Move   string `json:"move"`
}

// Parse validates the payload and returns the board, player and move.
func (p *ApplyMovePayload) Parse() (*othello.Board, othello.Player, referee.Move, error) {
	board, player, err := parseBoardAndPlayer(p.Board, p.Player)
	if err != nil {
		return nil, 0, referee.Move{}, err
	}

	if p.Move == "" {
		return nil, 0, referee.Move{}, errors.New("move field is either empty or missing")
	}

	move, err := referee.NewMoveFromString(p.Move)
	if err != nil {
		return nil, 0, referee.Move{}, fmt.Errorf("invalid move: %w", err)
	}

	if !move.Destination.InBounds(board.Size()) {
		return nil, 0, referee.Move{}, fmt.Errorf("move %s is not on the board", move)
	}

	return board, player, move, nil
}

// ApplyMoveResponse represents the response for an apply move request.
type ApplyMoveResponse struct {
	Board      string         `json:"board"`
	Flipped    int            `json:"flipped"`
	NextPlayer othello.Player `json:"next_player"`
	GameOver   bool           `json:"game_over"`
	Score      referee.Score  `json:"score"`
}

// StartResponse represents the response with a start position.
type StartResponse struct {
	Board  string         `json:"board"`
	Player othello.Player `json:"player"`
}

// MoveStats represents how many boards with a disc count have stored legal moves.
type MoveStats struct {
	BoardSize int `json:"board_size" db:"board_size"`
	DiscCount int `json:"disc_count" db:"disc_count"`
	Count     int `json:"count"      db:"count"`
}

func parseBoardAndPlayer(boardString, playerString string) (*othello.Board, othello.Player, error) {
	if boardString == "" {
		return nil, 0, errors.New("board field is either empty or missing")
	}

	if playerString == "" {
		return nil, 0, errors.New("player field is either empty or missing")
	}

	board, err := othello.NewBoardFromString(boardString)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid board: %w", err)
	}

	player, err := othello.ParsePlayer(playerString)
	if err != nil {
		return nil, 0, err
	}

	return board, player, nil
}
