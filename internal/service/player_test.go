package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type playerRepoMock struct {
	mock.Mock
}

func (that *playerRepoMock) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	return that.Called(ctx, player).Error(0)
}

func (that *playerRepoMock) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)

	return player, args.Error(1)
}

func newTestPlayerService(repo *playerRepoMock, now time.Time) *playerService {
	return &playerService{
		playerRepo: repo,
		now: func() time.Time {
			return now
		},
	}
}

func TestPlayerService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Register stamps the player", func(t *testing.T) {
		// Given
		repo := &playerRepoMock{}
		repo.On("CreateOrUpdate", mock.Anything, &entity.Player{ID: "p1", CreatedAt: now, LastSeenAt: now}).
			Return(nil).Once()

		// When
		player, err := newTestPlayerService(repo, now).Register(ctx, "p1")

		// Then
		require.NoError(t, err)
		assert.Equal(t, now, player.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("Register wraps storage errors", func(t *testing.T) {
		// Given
		repo := &playerRepoMock{}
		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		// When
		player, err := newTestPlayerService(repo, now).Register(ctx, "p1")

		// Then
		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, player)
	})

	t.Run("Find keeps the not found sentinel", func(t *testing.T) {
		// Given
		repo := &playerRepoMock{}
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, apperror.ErrPlayerNotFound).Once()

		// When
		_, err := newTestPlayerService(repo, now).Find(ctx, "ghost")

		// Then
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Visit refreshes last seen", func(t *testing.T) {
		// Given
		created := now.Add(-time.Hour)
		repo := &playerRepoMock{}
		repo.On("GetByID", mock.Anything, "p1").Return(&entity.Player{ID: "p1", CreatedAt: created, LastSeenAt: created}, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, &entity.Player{ID: "p1", CreatedAt: created, LastSeenAt: now}).
			Return(nil).Once()

		// When
		player, err := newTestPlayerService(repo, now).Visit(ctx, "p1")

		// Then
		require.NoError(t, err)
		assert.Equal(t, created, player.CreatedAt)
		assert.Equal(t, now, player.LastSeenAt)
		repo.AssertExpectations(t)
	})
}
