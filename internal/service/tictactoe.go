package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
	"github.com/rocketscienceinc/pencilgames-backend/internal/tictactoe"
)

const ActionTicTacToeAI = "tictactoe:ai"

type TicTacToeService interface {
	State(ctx context.Context, playerID string) (tictactoe.State, error)
	Move(ctx context.Context, playerID string, row, col int) (tictactoe.State, error)
	SetMode(ctx context.Context, playerID string, vsAI bool) (tictactoe.State, error)
	Reset(ctx context.Context, playerID string) (tictactoe.State, error)
	Peek(ctx context.Context, playerID string) (tictactoe.State, error)
	EvictIdle(maxIdle time.Duration) int
}

type TicTacToeConfig struct {
	BestMoveChance float64
	ThinkMin       time.Duration
	ThinkMax       time.Duration
}

type ticTacToeService struct {
	logger    *slog.Logger
	conf      TicTacToeConfig
	random    *random.Factory
	scheduler Scheduler
	notifier  Notifier

	sessions *sessions[*tictactoe.Engine, tictactoe.State]
}

func NewTicTacToeService(
	logger *slog.Logger,
	conf TicTacToeConfig,
	rnd *random.Factory,
	snapshots snapshotRepo,
	scheduler Scheduler,
	notifier Notifier,
) TicTacToeService {
	newEngine := func() *tictactoe.Engine {
		return tictactoe.New(
			tictactoe.WithRandom(rnd.Source()),
			tictactoe.WithBestMoveChance(conf.BestMoveChance),
		)
	}

	return &ticTacToeService{
		logger:    logger.With("service", "tictactoe"),
		conf:      conf,
		random:    rnd,
		scheduler: scheduler,
		notifier:  notifier,
		sessions:  newSessions[*tictactoe.Engine, tictactoe.State](logger, entity.TicTacToe, snapshots, newEngine),
	}
}

// State also re-arms the AI for a game resumed on the AI's turn.
func (that *ticTacToeService) State(ctx context.Context, playerID string) (tictactoe.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(*tictactoe.Engine) error { return nil })
	if err != nil {
		return state, fmt.Errorf("failed to get tictactoe state: %w", err)
	}

	that.scheduleAI(playerID, state)

	return state, nil
}

func (that *ticTacToeService) Move(ctx context.Context, playerID string, row, col int) (tictactoe.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *tictactoe.Engine) error {
		engine.PlayMove(row, col)
		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to play move: %w", err)
	}

	that.scheduleAI(playerID, state)

	return state, nil
}

func (that *ticTacToeService) SetMode(ctx context.Context, playerID string, vsAI bool) (tictactoe.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *tictactoe.Engine) error {
		engine.SetVsAI(vsAI)
		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to set mode: %w", err)
	}

	return state, nil
}

func (that *ticTacToeService) Reset(ctx context.Context, playerID string) (tictactoe.State, error) {
	state, err := that.sessions.update(ctx, playerID, func(engine *tictactoe.Engine) error {
		engine.Reset()
		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to reset tictactoe: %w", err)
	}

	return state, nil
}

// Peek returns the last known state without arming the AI.
func (that *ticTacToeService) Peek(ctx context.Context, playerID string) (tictactoe.State, error) {
	state, err := that.sessions.peek(ctx, playerID)
	if err != nil {
		return state, fmt.Errorf("failed to peek tictactoe state: %w", err)
	}

	return state, nil
}

func (that *ticTacToeService) EvictIdle(maxIdle time.Duration) int {
	return that.sessions.evictIdle(maxIdle)
}

// scheduleAI lets the AI "think" for a moment before replying. The reply is dropped when
// the board changed in the meantime.
func (that *ticTacToeService) scheduleAI(playerID string, state tictactoe.State) {
	if !state.AITurn {
		return
	}

	round, moves := state.Round, marks(state.Board)

	that.scheduler.AfterFunc(that.thinkingTime(), func() {
		next, ok := that.sessions.deferred(playerID, func(engine *tictactoe.Engine) bool {
			current := engine.State()
			if current.Round != round || marks(current.Board) != moves || !engine.IsAITurn() {
				return false
			}

			engine.PlayAIMove()

			return true
		})
		if !ok {
			that.logger.Debug("stale AI move dropped", "playerID", playerID, "round", round)
			return
		}

		that.notifier.Notify(playerID, ActionTicTacToeAI, next)
	})
}

func (that *ticTacToeService) thinkingTime() time.Duration {
	spread := that.conf.ThinkMax - that.conf.ThinkMin
	if spread <= 0 {
		return that.conf.ThinkMin
	}

	return that.conf.ThinkMin + time.Duration(that.random.Source().Intn(int(spread/time.Millisecond)+1))*time.Millisecond
}

func marks(board tictactoe.Board) int {
	var count int
	for _, mark := range board {
		if mark != tictactoe.Empty {
			count++
		}
	}

	return count
}
