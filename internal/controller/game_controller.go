package controller

import (
	"fmt"

	"github.com/benbeisheim/szachy-backend/internal/logging"
	"github.com/benbeisheim/szachy-backend/internal/middleware"
	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/benbeisheim/szachy-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	logger = logging.OrNop(logger)
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	FEN   string `json:"fen"`
	Color string `json:"color"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, gc.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		}
	}

	playerID := middleware.PlayerID(c)
	game, err := gc.gameService.CreateGame(c.UserContext(), playerID, service.CreateOptions{FEN: req.FEN, Color: req.Color})
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	color, _ := game.ColorOf(playerID)
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": game.ID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(c.UserContext(), gameID, playerID)
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return respondError(c, gc.logger, fmt.Errorf("%w: %v", errBadRequest, err))
	}

	state, err := gc.gameService.HandleMove(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := c.Query("from")
	moves, err := gc.gameService.LegalMoves(c.UserContext(), c.Params("gameId"), from)
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(state)
}

func (gc *GameController) AbortGame(c *fiber.Ctx) error {
	state, err := gc.gameService.AbortGame(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetMoveHistory(c *fiber.Ctx) error {
	history, err := gc.gameService.GetMoveHistory(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"moves": history,
	})
}

func (gc *GameController) ListActiveGames(c *fiber.Ctx) error {
	ids, err := gc.gameService.ListActiveGames(c.UserContext())
	if err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"games": ids,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(c.UserContext(), middleware.PlayerID(c)); err != nil {
		return respondError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
