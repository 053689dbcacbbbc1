package controller

import (
	"github.com/benbeisheim/szachy-backend/internal/middleware"
	"github.com/benbeisheim/szachy-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the REST API under /api and the websocket endpoints
// under /ws. origins limits which pages may open websockets.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, origins []string, logger *zap.Logger) {
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)

	// WebSocket routes
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/active", gameController.ListActiveGames)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/history", gameController.GetMoveHistory)
	gameRoutes.Get("/:gameId/moves", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)
	gameRoutes.Post("/:gameId/abort", gameController.AbortGame)
}
