package referee

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/lk16/flippy/referee/internal/dispatch"
	"github.com/lk16/flippy/referee/internal/othello"
)

var (
	// ErrIllegalState is returned when a caller breaks a precondition, such as playing on an occupied cell.
	ErrIllegalState = errors.New("illegal state")

	// ErrEngineShutdown is returned for any call after Shutdown.
	ErrEngineShutdown = errors.New("engine is shut down")
)

// Engine computes legal moves and applies moves. It owns a worker pool with one worker per direction.
// Engine is safe for concurrent use.
type Engine struct {
	pool     *dispatch.Pool
	shutdown atomic.Bool
}

// New creates an Engine. Call Shutdown to release its workers.
func New() *Engine {
	return &Engine{
		pool: dispatch.NewPool(len(othello.Directions)),
	}
}

// Shutdown releases the worker pool. It must be called exactly once.
func (e *Engine) Shutdown() error {
	if !e.shutdown.CompareAndSwap(false, true) {
		return ErrEngineShutdown
	}

	if err := e.pool.Close(); err != nil {
		return fmt.Errorf("failed to close worker pool: %w", err)
	}

	return nil
}

// Closed reports whether Shutdown has been called.
func (e *Engine) Closed() bool {
	return e.shutdown.Load()
}

// check validates the arguments shared by all engine operations.
func (e *Engine) check(board *othello.Board, player othello.Player) error {
	if e.shutdown.Load() {
		return ErrEngineShutdown
	}

	if board == nil {
		return fmt.Errorf("%w: board is nil", ErrIllegalState)
	}

	if !player.Valid() {
		return fmt.Errorf("%w: invalid player %s", ErrIllegalState, player)
	}

	return nil
}

// wrapPoolError converts a closed pool into ErrEngineShutdown.
func wrapPoolError(err error) error {
	if errors.Is(err, dispatch.ErrPoolClosed) {
		return fmt.Errorf("%w: %w", ErrEngineShutdown, err)
	}
	return err
}

// LegalMoves returns all moves player can make on board. The board is not modified.
// An empty set means player has to pass.
func (e *Engine) LegalMoves(board *othello.Board, player othello.Player) (MoveSet, error) {
	if err := e.check(board, player); err != nil {
		return nil, err
	}

	playerDisc := player.Disc()
	rivalDisc := player.Opponent().Disc()

	moves := make(MoveSet)

	for origin, disc := range board.Cells() {
		if disc != playerDisc {
			continue
		}

		// Check in every direction where we can put our disc.
		tasks := make([]dispatch.ScanTask, len(othello.Directions))
		for i, dir := range othello.Directions {
			tasks[i] = func() (othello.Coordinate, bool) {
				return othello.ScanLegality(board, origin, dir, playerDisc, rivalDisc)
			}
		}

		found, err := e.pool.CollectLegalMoves(tasks)
		if err != nil {
			return nil, fmt.Errorf("error computing legal moves from %s: %w", origin, wrapPoolError(err))
		}

		for c := range found {
			moves[Move{Destination: c}] = struct{}{}
		}
	}

	slog.Debug("Computed legal moves", "player", player, "count", moves.Len())
	return moves, nil
}

// HasMoves checks if player has at least one legal move.
func (e *Engine) HasMoves(board *othello.Board, player othello.Player) (bool, error) {
	moves, err := e.LegalMoves(board, player)
	if err != nil {
		return false, err
	}
	return moves.Len() > 0, nil
}

// ApplyMove places a disc of player on the destination of move and flips all captured discs.
// It returns a new board; the input board is never modified. The destination must be empty.
func (e *Engine) ApplyMove(board *othello.Board, move Move, player othello.Player) (*othello.Board, error) {
	result, err := e.apply(board, move, player)
	if err != nil {
		return nil, err
	}
	return result.Board, nil
}

// MoveResult is the outcome of a move.
type MoveResult struct {
	Board   *othello.Board
	Flipped int
}

// ApplyMoveWithResult works like ApplyMove, but also reports how many discs were flipped.
func (e *Engine) ApplyMoveWithResult(board *othello.Board, move Move, player othello.Player) (MoveResult, error) {
	return e.apply(board, move, player)
}

func (e *Engine) apply(board *othello.Board, move Move, player othello.Player) (MoveResult, error) {
	if err := e.check(board, player); err != nil {
		return MoveResult{}, err
	}

	destination := move.Destination

	if !destination.InBounds(board.Size()) {
		return MoveResult{}, fmt.Errorf("%w: move %s is out of bounds", ErrIllegalState, move)
	}

	if board.Get(destination) != othello.Empty {
		return MoveResult{}, fmt.Errorf("%w: already a disc at %s", ErrIllegalState, move)
	}

	playerDisc := player.Disc()
	rivalDisc := player.Opponent().Disc()

	next := board.Clone()
	next.Set(destination, playerDisc)

	// Each direction writes only to cells on its own ray.
	flipped := make([]int, len(othello.Directions))
	tasks := make([]dispatch.MutationTask, len(othello.Directions))
	for i, dir := range othello.Directions {
		tasks[i] = func() {
			flipped[i] = othello.ScanCapture(next, destination, dir, playerDisc, rivalDisc)
		}
	}

	if err := e.pool.ApplyAllCaptures(tasks); err != nil {
		return MoveResult{}, fmt.Errorf("error applying move %s: %w", move, wrapPoolError(err))
	}

	total := 0
	for _, n := range flipped {
		total += n
	}

	slog.Debug("Applied move", "move", move, "player", player, "flipped", total)

	return MoveResult{
		Board:   next,
		Flipped: total,
	}, nil
}
