package referee

import (
	"github.com/lk16/flippy/referee/internal/othello"
)

// NextPlayer returns who moves after mover has played on board.
// The opponent moves next unless it has no moves, in which case mover plays again.
// If neither player can move, the game is over and gameOver is true.
func (e *Engine) NextPlayer(board *othello.Board, mover othello.Player) (next othello.Player, gameOver bool, err error) {
	opponent := mover.Opponent()

	opponentHasMoves, err := e.HasMoves(board, opponent)
	if err != nil {
		return 0, false, err
	}

	if opponentHasMoves {
		return opponent, false, nil
	}

	// Opponent has to pass.
	moverHasMoves, err := e.HasMoves(board, mover)
	if err != nil {
		return 0, false, err
	}

	if moverHasMoves {
		return mover, false, nil
	}

	return opponent, true, nil
}

// Score holds the number of discs of each player.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// GetScore counts the discs of each player.
func GetScore(board *othello.Board) Score {
	return Score{
		Black: board.Count(othello.Black),
		White: board.Count(othello.White),
	}
}
