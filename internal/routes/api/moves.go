package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/referee/internal/config"
	"github.com/lk16/flippy/referee/internal/models"
	"github.com/lk16/flippy/referee/internal/othello"
	"github.com/lk16/flippy/referee/internal/referee"
	"github.com/lk16/flippy/referee/internal/repository"
)

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func engineErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrIllegalMove), errors.Is(err, referee.ErrIllegalState):
		return fiber.StatusBadRequest
	case errors.Is(err, referee.ErrEngineShutdown):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// GetStart returns the start position of a board size, Black moves first.
func GetStart(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	size := c.QueryInt("size", cfg.BoardSize)

	board, err := othello.NewBoardStart(size)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.StartResponse{
		Board:  board.String(),
		Player: othello.PlayerBlack,
	})
}

// LegalMoves handles legal move lookup requests.
func LegalMoves(c *fiber.Ctx) error {
	var payload models.LegalMovesPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	board, player, err := payload.Parse()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	repo := repository.NewMoveRepository(c)
	moves, err := repo.LookupLegalMoves(c.Context(), board, player)
	if err != nil {
		return errorResponse(c, engineErrorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.LegalMovesResponse{
		Moves: moves.Sorted(),
	})
}

// ApplyMove handles requests that play a move.
func ApplyMove(c *fiber.Ctx) error {
	var payload models.ApplyMovePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	board, player, move, err := payload.Parse()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	repo := repository.NewMoveRepository(c)
	response, err := repo.ApplyLegalMove(c.Context(), board, player, move)
	if err != nil {
		return errorResponse(c, engineErrorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetMoveStats returns statistics about the stored legal moves.
func GetMoveStats(c *fiber.Ctx) error {
	repo := repository.NewMoveRepository(c)
	stats, err := repo.GetStats(c.Context())
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
