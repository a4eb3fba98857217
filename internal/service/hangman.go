package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/hangman"
)

type HangmanService interface {
	State(ctx context.Context, playerID string) (hangman.State, error)
	NewGame(ctx context.Context, playerID string) (hangman.State, error)
	Guess(ctx context.Context, playerID, letter string) (hangman.State, error)
	Peek(ctx context.Context, playerID string) (hangman.State, error)
	EvictIdle(maxIdle time.Duration) int
}

type wordSupply interface {
	RandomWord(ctx context.Context) (entity.Word, error)
	RandomWords(ctx context.Context, n int) ([]entity.Word, error)
}

type hangmanService struct {
	logger   *slog.Logger
	sessions *sessions[*hangman.Engine, hangman.State]
}

func NewHangmanService(logger *slog.Logger, supply wordSupply, snapshots snapshotRepo) HangmanService {
	newEngine := func() *hangman.Engine {
		return hangman.New(supply)
	}

	return &hangmanService{
		logger:   logger.With("service", "hangman"),
		sessions: newSessions[*hangman.Engine, hangman.State](logger, entity.Hangman, snapshots, newEngine),
	}
}

// State starts a first game for a player who has none.
func (that *hangmanService) State(ctx context.Context, playerID string) (hangman.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *hangman.Engine) error {
		if engine.State().Round > 0 {
			return nil
		}

		_, err := engine.StartNewGame(ctx)
		return err
	})
	if err != nil {
		return state.View(), fmt.Errorf("failed to get hangman state: %w", err)
	}

	return state.View(), nil
}

func (that *hangmanService) NewGame(ctx context.Context, playerID string) (hangman.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *hangman.Engine) error {
		_, err := engine.StartNewGame(ctx)
		return err
	})
	if err != nil {
		that.logger.Warn("failed to start hangman game", "playerID", playerID, "error", err)
		return state.View(), fmt.Errorf("failed to start hangman game: %w", err)
	}

	return state.View(), nil
}

// Guess takes a single letter; anything else leaves the game untouched.
func (that *hangmanService) Guess(ctx context.Context, playerID, letter string) (hangman.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *hangman.Engine) error {
		if utf8.RuneCountInString(letter) != 1 {
			return nil
		}

		r, _ := utf8.DecodeRuneInString(letter)
		engine.GuessLetter(r)

		return nil
	})
	if err != nil {
		return state.View(), fmt.Errorf("failed to guess letter: %w", err)
	}

	return state.View(), nil
}

// Peek never starts a game, unlike State.
func (that *hangmanService) Peek(ctx context.Context, playerID string) (hangman.State, error) {
	state, err := that.sessions.peek(ctx, playerID)
	if err != nil {
		return state.View(), fmt.Errorf("failed to peek hangman state: %w", err)
	}

	return state.View(), nil
}

func (that *hangmanService) EvictIdle(maxIdle time.Duration) int {
	return that.sessions.evictIdle(maxIdle)
}
