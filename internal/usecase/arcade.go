package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/battleship"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/hangman"
	"github.com/rocketscienceinc/pencilgames-backend/internal/tictactoe"
	"github.com/rocketscienceinc/pencilgames-backend/internal/wordsearch"
)

type playerService interface {
	Register(ctx context.Context, id string) (*entity.Player, error)
	Find(ctx context.Context, id string) (*entity.Player, error)
	Visit(ctx context.Context, id string) (*entity.Player, error)
}

type ticTacToeService interface {
	Peek(ctx context.Context, playerID string) (tictactoe.State, error)
}

type battleshipService interface {
	Peek(ctx context.Context, playerID string) (battleship.State, error)
}

type hangmanService interface {
	Peek(ctx context.Context, playerID string) (hangman.State, error)
}

type wordSearchService interface {
	Peek(ctx context.Context, playerID string) (wordsearch.State, error)
}

// Arcade is the player's entry point: it identifies players and shows any of their games.
type Arcade struct {
	logger *slog.Logger

	players    playerService
	ticTacToe  ticTacToeService
	battleship battleshipService
	hangman    hangmanService
	wordSearch wordSearchService
}

func NewArcade(
	logger *slog.Logger,
	players playerService,
	ticTacToe ticTacToeService,
	battleship battleshipService,
	hangman hangmanService,
	wordSearch wordSearchService,
) *Arcade {
	return &Arcade{
		logger:     logger,
		players:    players,
		ticTacToe:  ticTacToe,
		battleship: battleship,
		hangman:    hangman,
		wordSearch: wordSearch,
	}
}

// GetOrCreatePlayer returns the player with id. An empty id gets a new player; an unknown or
// expired one is registered again under the same id so the client can keep it.
func (that *Arcade) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		id = uuid.NewString()
	} else {
		player, err := that.players.Visit(ctx, id)
		if err == nil {
			return player, nil
		}

		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	player, err := that.players.Register(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	that.logger.Info("player registered", "playerID", player.ID)

	return player, nil
}

// GetPlayer returns a known player only.
func (that *Arcade) GetPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.players.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// View returns what the player currently sees of one of their games. It only reads:
// no game is started and no AI move is scheduled. A game never played is apperror.ErrSessionNotFound.
func (that *Arcade) View(ctx context.Context, playerID string, game entity.GameKind) (any, error) {
	var (
		view any
		err  error
	)

	switch game {
	case entity.TicTacToe:
		view, err = that.ticTacToe.Peek(ctx, playerID)
	case entity.Battleship:
		view, err = that.battleship.Peek(ctx, playerID)
	case entity.Hangman:
		view, err = that.hangman.Peek(ctx, playerID)
	case entity.WordSearch:
		view, err = that.wordSearch.Peek(ctx, playerID)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, game)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s view: %w", game, err)
	}

	return view, nil
}
