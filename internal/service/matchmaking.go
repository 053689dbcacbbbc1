package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/chess"
	"github.com/benbeisheim/szachy-backend/internal/model"
	"go.uber.org/zap"
)

func (gm *GameManager) JoinMatchmaking(ctx context.Context, playerID string) error {
	if err := gm.queue.AddPlayer(playerID, gm.now()); err != nil {
		return err
	}
	gm.logger.Info("player queued", zap.String("player_id", playerID), zap.Int("queue_size", gm.queue.Size()))
	return nil
}

// RegisterMatchmakingChannel sets the channel that receives playerID's
// matchFound event. A previously registered channel is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets ch and takes the player out of the
// queue, unless ch has already been replaced or used.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[playerID] != ch {
		return
	}
	delete(gm.matchingChannels, playerID)
	if gm.queue.Remove(playerID) {
		gm.logger.Info("player left queue", zap.String("player_id", playerID))
	}
}

// StartMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) StartMatchmaking(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gm.matchPlayers(ctx)
			}
		}
	}()
}

// matchPlayers pairs the queue down to at most one waiting player and
// returns the number of games created.
func (gm *GameManager) matchPlayers(ctx context.Context) int {
	created := 0
	for {
		first, second, ok := gm.queue.GetNextPair()
		if !ok {
			return created
		}

		game := model.NewGame(gm.newID(), chess.InitialFEN, gm.now())
		game.WhitePlayerID = first.PlayerID
		game.BlackPlayerID = second.PlayerID
		game.Status = model.StatusOngoing
		if err := gm.store.Create(ctx, game); err != nil {
			gm.logger.Error("failed to create matched game", zap.Error(err))
			gm.queue.PushFront(first, second)
			return created
		}
		created++

		gm.logger.Info("players matched",
			zap.String("game_id", game.ID),
			zap.String("white", first.PlayerID),
			zap.String("black", second.PlayerID),
		)
		gm.notifyMatch(first.PlayerID, model.MatchFoundEvent{GameID: game.ID, Color: model.PlayerColorWhite})
		gm.notifyMatch(second.PlayerID, model.MatchFoundEvent{GameID: game.ID, Color: model.PlayerColorBlack})
	}
}

// notifyMatch delivers event and retires the player's channel.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		gm.logger.Error("cannot encode match event", zap.Error(err))
		return
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.logger.Warn("matched player has no matchmaking channel", zap.String("player_id", playerID))
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- string(raw):
	default:
		gm.logger.Warn("matchmaking channel full", zap.String("player_id", playerID))
	}
	close(ch)
}
