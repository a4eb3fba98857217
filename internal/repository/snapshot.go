package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

// SnapshotRepository keeps the last state of every (game, player) session so a reconnecting
// player resumes where they left.
type SnapshotRepository interface {
	Save(ctx context.Context, game entity.GameKind, playerID string, state any) error
	Load(ctx context.Context, game entity.GameKind, playerID string, state any) error
	Delete(ctx context.Context, game entity.GameKind, playerID string) error
}

type dbSnapshot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotRepository(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		ttl:    ttl,
	}
}

func snapshotKey(game entity.GameKind, playerID string) string {
	return "snapshot:" + game.String() + ":" + playerID
}

func (that *dbSnapshot) Save(ctx context.Context, game entity.GameKind, playerID string, state any) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal %s snapshot: %w", game, err)
	}

	err = that.client.Set(ctx, snapshotKey(game, playerID), stateJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

// Load decodes the stored snapshot into state, or returns apperror.ErrSessionNotFound.
func (that *dbSnapshot) Load(ctx context.Context, game entity.GameKind, playerID string, state any) error {
	response, err := that.client.Get(ctx, snapshotKey(game, playerID)).Bytes()

	if errors.Is(err, redis.Nil) {
		return apperror.ErrSessionNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to get snapshot: %w", err)
	}

	if err = json.Unmarshal(response, state); err != nil {
		return fmt.Errorf("failed to unmarshal %s snapshot: %w", game, err)
	}

	return nil
}

func (that *dbSnapshot) Delete(ctx context.Context, game entity.GameKind, playerID string) error {
	err := that.client.Del(ctx, snapshotKey(game, playerID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
