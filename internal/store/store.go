package store

import (
	"context"
	"errors"

	"github.com/benbeisheim/szachy-backend/internal/model"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrExists   = errors.New("game already exists")
)

// Store persists game records. Implementations hand out copies: changing a
// returned game has no effect until it is passed to Save.
type Store interface {
	Create(ctx context.Context, g *model.Game) error
	Get(ctx context.Context, id string) (*model.Game, error)
	Save(ctx context.Context, g *model.Game) error
	// ListActive returns the ids of games that are not finished, sorted.
	ListActive(ctx context.Context) ([]string, error)
	Close() error
}
