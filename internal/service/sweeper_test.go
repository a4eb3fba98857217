package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
	"github.com/rocketscienceinc/pencilgames-backend/internal/words"
)

type evictorFunc func(maxIdle time.Duration) int

func (that evictorFunc) EvictIdle(maxIdle time.Duration) int {
	return that(maxIdle)
}

func TestSweeper_Sweep(t *testing.T) {
	t.Run("Sums every game", func(t *testing.T) {
		// Given
		var seen []time.Duration
		evictor := evictorFunc(func(maxIdle time.Duration) int {
			seen = append(seen, maxIdle)
			return 2
		})

		sweeper := NewSweeper(discardLogger, time.Minute, time.Hour, evictor, evictor)

		// When
		evicted := sweeper.Sweep()

		// Then
		assert.Equal(t, 4, evicted)
		assert.Equal(t, []time.Duration{time.Hour, time.Hour}, seen)
	})

	t.Run("Evicted hangman game resumes", func(t *testing.T) {
		ctx := context.Background()

		// Given: a hangman round with one guess in it
		snapshots := newMemorySnapshots()
		supply := words.NewMemory(random.New(1), []entity.Word{{Word: "cat", Hint: "Pet"}})
		service := NewHangmanService(discardLogger, supply, snapshots)

		_, err := service.NewGame(ctx, "p1")
		require.NoError(t, err)
		_, err = service.Guess(ctx, "p1", "c")
		require.NoError(t, err)

		// When: everything is swept right away
		evicted := NewSweeper(discardLogger, time.Minute, -time.Second, service).Sweep()
		require.Equal(t, 1, evicted)

		state, err := service.Guess(ctx, "p1", "a")

		// Then: the round went on where it stopped
		require.NoError(t, err)
		assert.Equal(t, "C A _", state.Display)
		assert.Equal(t, uint64(1), state.Round)
		assert.Equal(t, 0, state.Mistakes)
	})
}
