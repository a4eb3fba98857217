package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type PlayerService interface {
	Register(ctx context.Context, id string) (*entity.Player, error)
	Find(ctx context.Context, id string) (*entity.Player, error)
	Visit(ctx context.Context, id string) (*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
	now        func() time.Time
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Register stores a fresh player under id, replacing whatever was there.
func (that *playerService) Register(ctx context.Context, id string) (*entity.Player, error) {
	now := that.now()

	player := &entity.Player{
		ID:         id,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	return player, nil
}

// Find looks a player up without touching it.
func (that *playerService) Find(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	}

	return player, nil
}

// Visit marks a known player as seen, which also restarts its expiry.
func (that *playerService) Visit(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	player.LastSeenAt = that.now()

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}

	return player, nil
}
