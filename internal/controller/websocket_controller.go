package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/szachy-backend/internal/logging"
	"github.com/benbeisheim/szachy-backend/internal/middleware"
	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/benbeisheim/szachy-backend/internal/service"
	"github.com/benbeisheim/szachy-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	logger = logging.OrNop(logger)
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

func connPlayerID(c *websocket.Conn) string {
	id, _ := c.Locals(middleware.PlayerIDLocal).(string)
	return id
}

// HandleConnection serves /ws/game/:gameId until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	ctx := context.Background()
	gameID := c.Params("gameId")
	playerID := connPlayerID(c)
	log := wsc.logger.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	client, err := wsc.gameService.RegisterConnection(ctx, gameID, playerID, c)
	if err != nil {
		log.Warn("failed to register connection", zap.Error(err))
		c.WriteJSON(ws.ErrorMessage(clientMessage(err)))
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("websocket closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			client.Send(ws.ErrorMessage("malformed message"))
			continue
		}
		if err := wsc.handleMessage(ctx, gameID, playerID, msg); err != nil {
			log.Debug("message rejected", zap.String("type", string(msg.Type)), zap.Error(err))
			if sendErr := client.Send(ws.ErrorMessage(clientMessage(err))); sendErr != nil {
				return
			}
		}
	}
}

// handleMessage applies one client message. Successful changes reach the
// client through the game's state broadcast.
func (wsc *WebSocketController) handleMessage(ctx context.Context, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		_, err := wsc.gameService.HandleMove(ctx, gameID, playerID, move)
		return err
	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(ctx, gameID, playerID)
		return err
	case ws.MessageTypeAbort:
		_, err := wsc.gameService.AbortGame(ctx, gameID, playerID)
		return err
	default:
		return fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type)
	}
}

// HandleMatchmaking serves /ws/matchmaking: it waits for the player's match
// and sends a single matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := connPlayerID(c)
	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// a newer connection for the same player took over
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			wsc.logger.Warn("failed to deliver match", zap.String("player_id", playerID), zap.Error(err))
		}
	case <-closed:
	}
}
