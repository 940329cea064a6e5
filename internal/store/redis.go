package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lmcginley620/SeniorProject/internal/game"
)

const (
	gameKeyPrefix = "game:"
	gameTTL       = 2 * time.Hour
)

// Redis persists each game as a JSON document under game:<id>, expiring
// after a couple of hours of inactivity. Timestamps round-trip as RFC 3339
// strings, so whatever startedAt value was written is exactly what scoring
// reads back.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, ttl: gameTTL}
}

func (s *Redis) Get(ctx context.Context, id string) (*game.Game, error) {
	data, err := s.client.Get(ctx, gameKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game %s: %w", id, err)
	}
	var g game.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return &g, nil
}

func (s *Redis) Put(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}
	if err := s.client.Set(ctx, gameKeyPrefix+g.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing game %s: %w", g.ID, err)
	}
	return nil
}

func (s *Redis) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, gameKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), gameKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning games: %w", err)
	}
	return ids, nil
}
