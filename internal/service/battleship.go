package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/battleship"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

const ActionBattleshipAI = "battleship:ai"

// BattleshipService plays battleship against the AI. Every method returns the player's view.
type BattleshipService interface {
	State(ctx context.Context, playerID string) (battleship.State, error)
	SelectShip(ctx context.Context, playerID string, index int) (battleship.State, error)
	RotateSelected(ctx context.Context, playerID string) (battleship.State, error)
	PlaceShip(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	ToggleOrientation(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	RemoveShip(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	StartBattle(ctx context.Context, playerID string) (battleship.State, error)
	Attack(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	Reset(ctx context.Context, playerID string) (battleship.State, error)
	Peek(ctx context.Context, playerID string) (battleship.State, error)
	EvictIdle(maxIdle time.Duration) int
}

type BattleshipConfig struct {
	// ReplyDelay postpones the AI's shot; zero makes it reply within the same call.
	ReplyDelay time.Duration
}

type battleshipService struct {
	logger    *slog.Logger
	conf      BattleshipConfig
	scheduler Scheduler
	notifier  Notifier

	sessions *sessions[*battleship.Engine, battleship.State]
}

func NewBattleshipService(
	logger *slog.Logger,
	conf BattleshipConfig,
	rnd *random.Factory,
	snapshots snapshotRepo,
	scheduler Scheduler,
	notifier Notifier,
) BattleshipService {
	newEngine := func() *battleship.Engine {
		return battleship.New(battleship.WithRandom(rnd.Source()))
	}

	return &battleshipService{
		logger:    logger.With("service", "battleship"),
		conf:      conf,
		scheduler: scheduler,
		notifier:  notifier,
		sessions:  newSessions[*battleship.Engine, battleship.State](logger, entity.Battleship, snapshots, newEngine),
	}
}

func (that *battleshipService) State(ctx context.Context, playerID string) (battleship.State, error) {
	state, err := that.apply(ctx, playerID, "state", func(*battleship.Engine) error { return nil })
	if err != nil {
		return state, err
	}

	that.scheduleReply(playerID, state)

	return state, nil
}

func (that *battleshipService) SelectShip(ctx context.Context, playerID string, index int) (battleship.State, error) {
	return that.apply(ctx, playerID, "select ship", func(engine *battleship.Engine) error {
		engine.SelectShip(index)
		return nil
	})
}

func (that *battleshipService) RotateSelected(ctx context.Context, playerID string) (battleship.State, error) {
	return that.apply(ctx, playerID, "rotate ship", func(engine *battleship.Engine) error {
		engine.RotateSelected()
		return nil
	})
}

func (that *battleshipService) PlaceShip(ctx context.Context, playerID string, row, col int) (battleship.State, error) {
	return that.apply(ctx, playerID, "place ship", func(engine *battleship.Engine) error {
		engine.PlaceShip(row, col)
		return nil
	})
}

func (that *battleshipService) ToggleOrientation(ctx context.Context, playerID string, row, col int) (battleship.State, error) {
	return that.apply(ctx, playerID, "toggle ship", func(engine *battleship.Engine) error {
		engine.ToggleOrientation(row, col)
		return nil
	})
}

func (that *battleshipService) RemoveShip(ctx context.Context, playerID string, row, col int) (battleship.State, error) {
	return that.apply(ctx, playerID, "remove ship", func(engine *battleship.Engine) error {
		engine.RemoveShip(row, col)
		return nil
	})
}

func (that *battleshipService) StartBattle(ctx context.Context, playerID string) (battleship.State, error) {
	state, err := that.apply(ctx, playerID, "start battle", func(engine *battleship.Engine) error {
		_, err := engine.StartBattle()
		return err
	})
	if err != nil {
		that.logger.Error("failed to start battle", "playerID", playerID, "error", err)
	}

	return state, err
}

func (that *battleshipService) Attack(ctx context.Context, playerID string, row, col int) (battleship.State, error) {
	state, err := that.apply(ctx, playerID, "attack", func(engine *battleship.Engine) error {
		if that.conf.ReplyDelay <= 0 {
			engine.Attack(row, col)
		} else {
			engine.Fire(row, col)
		}

		return nil
	})
	if err != nil {
		return state, err
	}

	that.scheduleReply(playerID, state)

	return state, nil
}

func (that *battleshipService) Reset(ctx context.Context, playerID string) (battleship.State, error) {
	return that.apply(ctx, playerID, "reset", func(engine *battleship.Engine) error {
		engine.Reset()
		return nil
	})
}

func (that *battleshipService) Peek(ctx context.Context, playerID string) (battleship.State, error) {
	state, err := that.sessions.peek(ctx, playerID)
	if err != nil {
		return state.View(), fmt.Errorf("failed to peek battleship state: %w", err)
	}

	return state.View(), nil
}

func (that *battleshipService) EvictIdle(maxIdle time.Duration) int {
	return that.sessions.evictIdle(maxIdle)
}

func (that *battleshipService) apply(ctx context.Context, playerID, op string, fn func(*battleship.Engine) error) (battleship.State, error) {
	state, err := that.sessions.update(ctx, playerID, fn)
	if err != nil {
		return state.View(), fmt.Errorf("failed to %s: %w", op, err)
	}

	return state.View(), nil
}

// scheduleReply plays the AI's pending shot after the configured delay.
func (that *battleshipService) scheduleReply(playerID string, state battleship.State) {
	if state.Phase != battleship.PhaseBattle || state.PlayerTurn {
		return
	}

	round := state.Round

	that.scheduler.AfterFunc(that.conf.ReplyDelay, func() {
		next, ok := that.sessions.deferred(playerID, func(engine *battleship.Engine) bool {
			if engine.State().Round != round || !engine.IsAITurn() {
				return false
			}

			engine.EnemyTurn()

			return true
		})
		if !ok {
			that.logger.Debug("stale AI shot dropped", "playerID", playerID, "round", round)
			return
		}

		that.notifier.Notify(playerID, ActionBattleshipAI, next.View())
	})
}
