package controller

import (
	"errors"

	"github.com/benbeisheim/szachy-backend/internal/chess"
	"github.com/benbeisheim/szachy-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, chess.ErrMalformedPosition),
		errors.Is(err, chess.ErrInvalidSquare),
		errors.Is(err, chess.ErrIllegalMove),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrGameNotActive),
		errors.Is(err, service.ErrAlreadyQueued):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// clientMessage hides internal failures from clients.
func clientMessage(err error) string {
	if statusFor(err) == fiber.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": clientMessage(err),
	})
}
