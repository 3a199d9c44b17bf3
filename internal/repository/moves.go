package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/lk16/flippy/referee/internal/models"
	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/referee"
	"github.com/lk16/flippy/referee/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	legalMovesKeyPrefix = "legal_moves"
	legalMovesTTL       = 5 * time.Minute
)

// MoveRepository looks up legal moves. Results are cached in Redis and stored in Postgres when those are configured.
type MoveRepository struct {
	services *services.Services
}

// NewMoveRepository creates a new MoveRepository.
func NewMoveRepository(c *fiber.Ctx) *MoveRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &MoveRepository{
		services: services,
	}
}

func NewMoveRepositoryFromServices(services *services.Services) *MoveRepository {
	return &MoveRepository{
		services: services,
	}
}

func legalMovesKey(board *othello.Board, player othello.Player) string {
	return fmt.Sprintf("%s:%s:%s", legalMovesKeyPrefix, player, board)
}

// LookupLegalMoves returns the legal moves of player on board.
// Cache and database failures are logged, the moves are then computed by the engine.
// Once the engine is shut down, cached moves are not served either.
func (repo *MoveRepository) LookupLegalMoves(
	ctx context.Context,
	board *othello.Board,
	player othello.Player,
) (referee.MoveSet, error) {
	if repo.services.Engine.Closed() {
		return nil, referee.ErrEngineShutdown
	}

	if moves, ok := repo.lookupRedis(ctx, board, player); ok {
		return moves, nil
	}

	if moves, ok := repo.lookupPostgres(ctx, board, player); ok {
		repo.storeRedis(ctx, board, player, moves)
		return moves, nil
	}

	moves, err := repo.services.Engine.LegalMoves(board, player)
	if err != nil {
		return nil, fmt.Errorf("error computing legal moves: %w", err)
	}

	repo.storePostgres(ctx, board, player, moves)
	repo.storeRedis(ctx, board, player, moves)

	return moves, nil
}

func (repo *MoveRepository) lookupRedis(ctx context.Context, board *othello.Board, player othello.Player) (referee.MoveSet, bool) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil, false
	}

	jsonData, err := redisConn.Get(ctx, legalMovesKey(board, player)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Error reading legal moves from Redis", "error", err)
		}
		return nil, false
	}

	var moves []referee.Move
	if err = json.Unmarshal(jsonData, &moves); err != nil {
		slog.Warn("Error unmarshaling legal moves from Redis", "error", err)
		return nil, false
	}

	return toMoveSet(moves), true
}

func (repo *MoveRepository) storeRedis(ctx context.Context, board *othello.Board, player othello.Player, moves referee.MoveSet) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return
	}

	jsonData, err := json.Marshal(moves.Sorted())
	if err != nil {
		slog.Warn("Error marshaling legal moves", "error", err)
		return
	}

	if err = redisConn.Set(ctx, legalMovesKey(board, player), jsonData, legalMovesTTL).Err(); err != nil {
		slog.Warn("Error storing legal moves in Redis", "error", err)
	}
}

func (repo *MoveRepository) lookupPostgres(ctx context.Context, board *othello.Board, player othello.Player) (referee.MoveSet, bool) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return nil, false
	}

	query := `
		SELECT moves
		FROM legal_moves
		WHERE board = $1 AND player = $2
	`

	var fields []string
	err := pgConn.QueryRowxContext(ctx, query, board.String(), int(player)).Scan(pq.Array(&fields))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Error reading legal moves from Postgres", "error", err)
		}
		return nil, false
	}

	moves := make([]referee.Move, 0, len(fields))
	for _, field := range fields {
		move, err := referee.NewMoveFromString(field)
		if err != nil {
			slog.Warn("Invalid move in Postgres", "board", board.String(), "move", field, "error", err)
			return nil, false
		}
		moves = append(moves, move)
	}

	return toMoveSet(moves), true
}

func (repo *MoveRepository) storePostgres(ctx context.Context, board *othello.Board, player othello.Player, moves referee.MoveSet) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return
	}

	sorted := moves.Sorted()
	fields := make([]string, len(sorted))
	for i, move := range sorted {
		fields[i] = move.String()
	}

	query := `
		INSERT INTO legal_moves (board, player, board_size, disc_count, moves)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (board, player) DO NOTHING
	`

	discCount := board.Size()*board.Size() - board.Count(othello.Empty)

	_, err := pgConn.ExecContext(ctx, query, board.String(), int(player), board.Size(), discCount, pq.Array(fields))
	if err != nil {
		slog.Warn("Error storing legal moves in Postgres", "error", err)
	}
}

// ErrIllegalMove is returned when a move is not among the legal moves of the player.
var ErrIllegalMove = errors.New("illegal move")

// ApplyLegalMove checks that move is legal for player on board and applies it.
func (repo *MoveRepository) ApplyLegalMove(
	ctx context.Context,
	board *othello.Board,
	player othello.Player,
	move referee.Move,
) (models.ApplyMoveResponse, error) {
	legalMoves, err := repo.LookupLegalMoves(ctx, board, player)
	if err != nil {
		return models.ApplyMoveResponse{}, err
	}

	if !legalMoves.Contains(move) {
		return models.ApplyMoveResponse{}, fmt.Errorf("%w: %s cannot play %s", ErrIllegalMove, player, move)
	}

	engine := repo.services.Engine

	result, err := engine.ApplyMoveWithResult(board, move, player)
	if err != nil {
		return models.ApplyMoveResponse{}, fmt.Errorf("error applying move: %w", err)
	}

	nextPlayer, gameOver, err := engine.NextPlayer(result.Board, player)
	if err != nil {
		return models.ApplyMoveResponse{}, fmt.Errorf("error finding next player: %w", err)
	}

	return models.ApplyMoveResponse{
		Board:      result.Board.String(),
		Flipped:    result.Flipped,
		NextPlayer: nextPlayer,
		GameOver:   gameOver,
		Score:      referee.GetScore(result.Board),
	}, nil
}

// GetStats returns the number of stored boards per board size and disc count.
func (repo *MoveRepository) GetStats(ctx context.Context) ([]models.MoveStats, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return []models.MoveStats{}, nil
	}

	query := `
		SELECT board_size, disc_count, count(*) AS count
		FROM legal_moves
		GROUP BY board_size, disc_count
		ORDER BY board_size, disc_count
	`

	stats := make([]models.MoveStats, 0)
	if err := pgConn.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("error loading legal move stats: %w", err)
	}

	return stats, nil
}

func toMoveSet(moves []referee.Move) referee.MoveSet {
	set := make(referee.MoveSet, len(moves))
	for _, move := range moves {
		set[move] = struct{}{}
	}
	return set
}
