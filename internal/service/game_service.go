package service

import (
	"context"

	"github.com/benbeisheim/szachy-backend/internal/chess"
	"github.com/benbeisheim/szachy-backend/internal/model"
)

// GameService is the entry point used by the HTTP and websocket controllers.
// It turns request text into engine values and hands off to the GameManager.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(ctx context.Context, playerID string, opts CreateOptions) (*model.Game, error) {
	return gs.gameManager.CreateGame(ctx, playerID, opts)
}

func (gs *GameService) JoinGame(ctx context.Context, gameID, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.JoinGame(ctx, gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(ctx context.Context, playerID string) error {
	return gs.gameManager.JoinMatchmaking(ctx, playerID)
}

func (gs *GameService) GetGameState(ctx context.Context, gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(ctx, gameID)
}

func (gs *GameService) GetMoveHistory(ctx context.Context, gameID string) ([]model.MoveRecord, error) {
	return gs.gameManager.GetMoveHistory(ctx, gameID)
}

func (gs *GameService) ListActiveGames(ctx context.Context) ([]string, error) {
	return gs.gameManager.ListActiveGames(ctx)
}

// LegalMoves parses from as an algebraic square such as "e2".
func (gs *GameService) LegalMoves(ctx context.Context, gameID, from string) ([]string, error) {
	square, err := chess.ParseSquare(from)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(ctx, gameID, square)
}

func (gs *GameService) HandleMove(ctx context.Context, gameID, playerID string, move model.WSMove) (model.GameState, error) {
	return gs.gameManager.MakeMove(ctx, gameID, playerID, move)
}

func (gs *GameService) ResetGame(ctx context.Context, gameID, playerID string) (model.GameState, error) {
	return gs.gameManager.ResetGame(ctx, gameID, playerID)
}

func (gs *GameService) AbortGame(ctx context.Context, gameID, playerID string) (model.GameState, error) {
	return gs.gameManager.AbortGame(ctx, gameID, playerID)
}

func (gs *GameService) RegisterConnection(ctx context.Context, gameID, playerID string, conn Conn) (*Client, error) {
	return gs.gameManager.RegisterConnection(ctx, gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, client *Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, client)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
