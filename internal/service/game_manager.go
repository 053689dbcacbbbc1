// service/game_manager.go
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/chess"
	"github.com/benbeisheim/szachy-backend/internal/logging"
	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/benbeisheim/szachy-backend/internal/store"
	"github.com/benbeisheim/szachy-backend/internal/ws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GameManager struct {
	store  store.Store
	hub    *Hub
	queue  *model.Queue
	locks  *gameLocks
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	matchingChannels map[string]chan string
	mu               sync.Mutex
}

type CreateOptions struct {
	// FEN of the starting position; empty means the standard start.
	FEN string
	// Color the creator plays; empty means white.
	Color string
}

func NewGameManager(st store.Store, logger *zap.Logger) *GameManager {
	logger = logging.OrNop(logger)
	return &GameManager{
		store:            st,
		hub:              NewHub(logger),
		queue:            model.NewQueue(),
		locks:            newGameLocks(),
		logger:           logger,
		now:              time.Now,
		newID:            func() string { return uuid.New().String() },
		matchingChannels: make(map[string]chan string),
	}
}

func (gm *GameManager) CreateGame(ctx context.Context, playerID string, opts CreateOptions) (*model.Game, error) {
	fen := opts.FEN
	if fen == "" {
		fen = chess.InitialFEN
	}
	pos, err := chess.Decode(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	color, ok := model.ParsePlayerColor(opts.Color)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, opts.Color)
	}

	game := model.NewGame(gm.newID(), pos.String(), gm.now())
	if err := game.Seat(playerID, color); err != nil {
		return nil, err
	}
	if err := gm.store.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	gm.logger.Info("game created",
		zap.String("game_id", game.ID),
		zap.String("player_id", playerID),
		zap.String("color", string(color)),
	)
	return game, nil
}

// JoinGame seats playerID on the free color and starts the game once both
// seats are taken. Joining a game one already plays in returns that color.
func (gm *GameManager) JoinGame(ctx context.Context, gameID, playerID string) (model.PlayerColor, error) {
	unlock := gm.locks.lock(gameID)
	defer unlock()

	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return "", err
	}
	if color, ok := game.ColorOf(playerID); ok {
		return color, nil
	}
	if game.IsFull() {
		return "", ErrGameFull
	}
	if game.Status != model.StatusWaiting {
		return "", ErrGameNotActive
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	if game.IsFull() {
		pos, err := game.Position()
		if err != nil {
			return "", fmt.Errorf("stored position of %s: %w", gameID, err)
		}
		game.Status = model.StatusFromEngine(chess.Classify(pos))
	}
	game.UpdatedAt = gm.now()
	if err := gm.store.Save(ctx, game); err != nil {
		return "", fmt.Errorf("save game: %w", err)
	}

	gm.logger.Info("player joined",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("color", string(color)),
		zap.String("status", string(game.Status)),
	)
	gm.broadcastState(game)
	return color, nil
}

// MakeMove validates and plays a move for playerID. The game is only updated
// once the new record is persisted; a failed save leaves it untouched.
func (gm *GameManager) MakeMove(ctx context.Context, gameID, playerID string, req model.WSMove) (model.GameState, error) {
	unlock := gm.locks.lock(gameID)
	defer unlock()

	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	color, ok := game.ColorOf(playerID)
	if !ok {
		return model.GameState{}, ErrNotParticipant
	}
	if game.Status != model.StatusOngoing {
		return model.GameState{}, ErrGameNotActive
	}
	pos, err := game.Position()
	if err != nil {
		return model.GameState{}, fmt.Errorf("stored position of %s: %w", gameID, err)
	}
	if model.ColorOfSide(pos.SideToMove) != color {
		return model.GameState{}, ErrNotYourTurn
	}

	move, err := req.ToMove()
	if err != nil {
		return model.GameState{}, err
	}
	next, err := chess.ApplyMove(pos, move)
	if err != nil {
		return model.GameState{}, err
	}
	status := chess.Classify(next)

	updated := game.Clone()
	updated.FEN = next.String()
	updated.Status = model.StatusFromEngine(status)
	updated.Moves = append(updated.Moves, model.NewMoveRecord(playerID, pos, move, next, status, gm.now()))
	updated.UpdatedAt = gm.now()
	if err := gm.store.Save(ctx, updated); err != nil {
		gm.logger.Error("failed to persist move",
			zap.String("game_id", gameID),
			zap.String("move", move.String()),
			zap.Error(err),
		)
		return model.GameState{}, fmt.Errorf("save game: %w", err)
	}

	gm.logger.Debug("move played",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("move", move.String()),
		zap.String("status", status.String()),
	)
	gm.broadcastState(updated)
	return gm.stateOf(updated)
}

// LegalMoves lists the squares the piece on from may move to, sorted. A
// finished game has none.
func (gm *GameManager) LegalMoves(ctx context.Context, gameID string, from chess.Square) ([]string, error) {
	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status.IsTerminal() {
		return []string{}, nil
	}
	pos, err := game.Position()
	if err != nil {
		return nil, fmt.Errorf("stored position of %s: %w", gameID, err)
	}
	moves := make([]string, 0)
	for _, to := range chess.LegalMoves(pos, from) {
		moves = append(moves, to.String())
	}
	sort.Strings(moves)
	return moves, nil
}

// ResetGame puts a game back at its starting position with an empty move log.
// An aborted game stays aborted.
func (gm *GameManager) ResetGame(ctx context.Context, gameID, playerID string) (model.GameState, error) {
	unlock := gm.locks.lock(gameID)
	defer unlock()

	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if !game.IsParticipant(playerID) {
		return model.GameState{}, ErrNotParticipant
	}
	if game.Status == model.StatusAborted {
		return model.GameState{}, ErrGameNotActive
	}
	start, err := chess.Decode(game.StartFEN)
	if err != nil {
		return model.GameState{}, fmt.Errorf("start position of %s: %w", gameID, err)
	}

	game.FEN = game.StartFEN
	game.Moves = []model.MoveRecord{}
	if game.IsFull() {
		game.Status = model.StatusFromEngine(chess.Classify(start))
	}
	game.UpdatedAt = gm.now()
	if err := gm.store.Save(ctx, game); err != nil {
		return model.GameState{}, fmt.Errorf("save game: %w", err)
	}

	gm.logger.Info("game reset", zap.String("game_id", gameID), zap.String("player_id", playerID))
	gm.broadcastState(game)
	return gm.stateOf(game)
}

func (gm *GameManager) AbortGame(ctx context.Context, gameID, playerID string) (model.GameState, error) {
	unlock := gm.locks.lock(gameID)
	defer unlock()

	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if !game.IsParticipant(playerID) {
		return model.GameState{}, ErrNotParticipant
	}
	if game.Status.IsTerminal() {
		return model.GameState{}, ErrGameNotActive
	}

	game.Status = model.StatusAborted
	game.UpdatedAt = gm.now()
	if err := gm.store.Save(ctx, game); err != nil {
		return model.GameState{}, fmt.Errorf("save game: %w", err)
	}

	gm.logger.Info("game aborted", zap.String("game_id", gameID), zap.String("player_id", playerID))
	gm.broadcastState(game)
	return gm.stateOf(game)
}

func (gm *GameManager) GetGameState(ctx context.Context, gameID string) (model.GameState, error) {
	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return gm.stateOf(game)
}

func (gm *GameManager) GetMoveHistory(ctx context.Context, gameID string) ([]model.MoveRecord, error) {
	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Moves, nil
}

func (gm *GameManager) ListActiveGames(ctx context.Context) ([]string, error) {
	return gm.store.ListActive(ctx)
}

// RegisterConnection attaches a websocket to a game and pushes the current
// state to everyone watching it.
func (gm *GameManager) RegisterConnection(ctx context.Context, gameID, playerID string, conn Conn) (*Client, error) {
	if _, err := gm.store.Get(ctx, gameID); err != nil {
		return nil, err
	}
	// Reload under the game lock so this state cannot overtake a move broadcast.
	unlock := gm.locks.lock(gameID)
	defer unlock()
	game, err := gm.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	client := gm.hub.Register(gameID, playerID, conn)
	gm.logger.Debug("connection registered",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Bool("participant", game.IsParticipant(playerID)),
	)
	gm.broadcastState(game)
	return client, nil
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, client *Client) {
	gm.hub.Unregister(gameID, playerID, client)
	gm.logger.Debug("connection unregistered", zap.String("game_id", gameID), zap.String("player_id", playerID))
}

func (gm *GameManager) stateOf(game *model.Game) (model.GameState, error) {
	state, err := game.State()
	if err != nil {
		return model.GameState{}, fmt.Errorf("stored position of %s: %w", game.ID, err)
	}
	state.Players.White.Connected = game.WhitePlayerID != "" && gm.hub.Connected(game.ID, game.WhitePlayerID)
	state.Players.Black.Connected = game.BlackPlayerID != "" && gm.hub.Connected(game.ID, game.BlackPlayerID)
	return state, nil
}

func (gm *GameManager) broadcastState(game *model.Game) {
	if gm.hub.Count(game.ID) == 0 {
		return
	}
	state, err := gm.stateOf(game)
	if err != nil {
		gm.logger.Error("cannot build game state", zap.String("game_id", game.ID), zap.Error(err))
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		gm.logger.Error("cannot encode game state", zap.String("game_id", game.ID), zap.Error(err))
		return
	}
	gm.hub.Broadcast(game.ID, msg)
}
