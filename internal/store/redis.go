package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

const activeKey = "szachy:games:active"

func gameKey(id string) string { return "szachy:game:" + strings.TrimSpace(id) }

// RedisStore keeps one JSON document per game and a set of unfinished game ids.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to redisURL (redis:// or rediss://) and pings it.
// A zero ttl keeps games forever.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreFromClient(rdb, ttl), nil
}

func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, gameKey(g.ID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create game %s: %w", g.ID, err)
	}
	if !ok {
		return ErrExists
	}
	if err := s.index(ctx, s.rdb, g); err != nil {
		if delErr := s.rdb.Del(ctx, gameKey(g.ID)).Err(); delErr != nil {
			return errors.Join(err, fmt.Errorf("roll back game %s: %w", g.ID, delErr))
		}
		return err
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.Game, error) {
	raw, err := s.rdb.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	var g model.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if g.Moves == nil {
		g.Moves = []model.MoveRecord{}
	}
	return &g, nil
}

func (s *RedisStore) Save(ctx context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	// The document and its index entry are written in one MULTI/EXEC. An id
	// indexed for a missing document is pruned by ListActive.
	var set *redis.BoolCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		set = pipe.SetXX(ctx, gameKey(g.ID), raw, s.ttl)
		return s.index(ctx, pipe, g)
	})
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	if !set.Val() {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) index(ctx context.Context, c redis.Cmdable, g *model.Game) error {
	var err error
	if g.Status.IsTerminal() {
		err = c.SRem(ctx, activeKey, g.ID).Err()
	} else {
		err = c.SAdd(ctx, activeKey, g.ID).Err()
	}
	if err != nil {
		return fmt.Errorf("index game %s: %w", g.ID, err)
	}
	return nil
}

// ListActive also drops ids whose document has expired.
func (s *RedisStore) ListActive(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, activeKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list active games: %w", err)
	}
	live := make([]string, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		n, err := s.rdb.Exists(ctx, gameKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list active games: %w", err)
		}
		if n == 0 {
			stale = append(stale, id)
			continue
		}
		live = append(live, id)
	}
	if len(stale) > 0 {
		if err := s.rdb.SRem(ctx, activeKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune active games: %w", err)
		}
	}
	sort.Strings(live)
	return live, nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
