package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
	"github.com/rocketscienceinc/pencilgames-backend/internal/wordsearch"
)

const ActionWordSearchHighlight = "wordsearch:highlight"

type WordSearchService interface {
	State(ctx context.Context, playerID string) (wordsearch.State, error)
	NewGame(ctx context.Context, playerID string) (wordsearch.State, error)
	CheckPath(ctx context.Context, playerID string, path []entity.Coord) (wordsearch.State, error)
	Peek(ctx context.Context, playerID string) (wordsearch.State, error)
	EvictIdle(maxIdle time.Duration) int
}

type WordSearchConfig struct {
	HighlightDuration time.Duration
}

type wordSearchService struct {
	logger    *slog.Logger
	conf      WordSearchConfig
	scheduler Scheduler
	notifier  Notifier

	sessions *sessions[*wordsearch.Engine, wordsearch.State]
}

func NewWordSearchService(
	logger *slog.Logger,
	conf WordSearchConfig,
	rnd *random.Factory,
	supply wordSupply,
	snapshots snapshotRepo,
	scheduler Scheduler,
	notifier Notifier,
) WordSearchService {
	newEngine := func() *wordsearch.Engine {
		return wordsearch.New(supply, wordsearch.WithRandom(rnd.Source()))
	}

	return &wordSearchService{
		logger:    logger.With("service", "wordsearch"),
		conf:      conf,
		scheduler: scheduler,
		notifier:  notifier,
		sessions:  newSessions[*wordsearch.Engine, wordsearch.State](logger, entity.WordSearch, snapshots, newEngine),
	}
}

// State builds a first puzzle for a player who has none.
func (that *wordSearchService) State(ctx context.Context, playerID string) (wordsearch.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *wordsearch.Engine) error {
		if engine.State().Round > 0 {
			return nil
		}

		return that.newGame(ctx, playerID, engine)
	})
	if err != nil {
		return state.View(), fmt.Errorf("failed to get word search state: %w", err)
	}

	return state.View(), nil
}

func (that *wordSearchService) NewGame(ctx context.Context, playerID string) (wordsearch.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *wordsearch.Engine) error {
		return that.newGame(ctx, playerID, engine)
	})
	if err != nil {
		return state.View(), fmt.Errorf("failed to start word search: %w", err)
	}

	return state.View(), nil
}

// newGame keeps the puzzle playable when the word supply fails, so the failure is only logged.
func (that *wordSearchService) newGame(ctx context.Context, playerID string, engine *wordsearch.Engine) error {
	if _, err := engine.NewGame(ctx); err != nil {
		that.logger.Warn("word search started without words", "playerID", playerID, "error", err)
	}

	return nil
}

// CheckPath only accepts straight lines; any other selection leaves the puzzle untouched.
func (that *wordSearchService) CheckPath(ctx context.Context, playerID string, path []entity.Coord) (wordsearch.State, error) {
	var before uint64

	linear := wordsearch.IsLinearPath(path)

	state, err := that.sessions.update(ctx, playerID, func(engine *wordsearch.Engine) error {
		before = engine.State().Token
		if linear {
			engine.CheckPath(path)
		}

		return nil
	})
	if err != nil {
		return state.View(), fmt.Errorf("failed to check path: %w", err)
	}

	if state.Token != before {
		that.scheduleClear(playerID, state.Token)
	}

	return state.View(), nil
}

func (that *wordSearchService) Peek(ctx context.Context, playerID string) (wordsearch.State, error) {
	state, err := that.sessions.peek(ctx, playerID)
	if err != nil {
		return state.View(), fmt.Errorf("failed to peek word search state: %w", err)
	}

	return state.View(), nil
}

func (that *wordSearchService) EvictIdle(maxIdle time.Duration) int {
	return that.sessions.evictIdle(maxIdle)
}

func (that *wordSearchService) scheduleClear(playerID string, token uint64) {
	that.scheduler.AfterFunc(that.conf.HighlightDuration, func() {
		next, ok := that.sessions.deferred(playerID, func(engine *wordsearch.Engine) bool {
			current := engine.State()
			if current.Token != token || len(current.Highlight) == 0 {
				return false
			}

			engine.ClearHighlight(token)

			return true
		})
		if !ok {
			return
		}

		that.notifier.Notify(playerID, ActionWordSearchHighlight, next.View())
	})
}
