package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
)

func decode(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: missing", apperror.ErrInvalidPayload)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}

func (that *Server) handleConnect(ctx context.Context, c *client, payload json.RawMessage) {
	log := that.logger.With("method", "handleConnect")

	var request connectPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &request); err != nil {
			that.reply(c, "connect", errorPayload{Error: apperror.ErrInvalidPayload.Error()})
			return
		}
	}

	player, err := that.arcade.GetOrCreatePlayer(ctx, request.PlayerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		that.reply(c, "connect", errorPayload{Error: "failed to connect player"})

		return
	}

	that.hub.register(player.ID, c)

	log.Info("player connected", "player_id", player.ID)
	that.reply(c, "connect", connectResponse{Player: player})
}

func (that *Server) handleTicTacToeState(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.ticTacToe.State(ctx, playerID)
}

func (that *Server) handleTicTacToeMove(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var cell cellPayload
	if err := decode(payload, &cell); err != nil {
		return nil, err
	}

	return that.ticTacToe.Move(ctx, playerID, cell.Row, cell.Col)
}

func (that *Server) handleTicTacToeMode(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var mode modePayload
	if err := decode(payload, &mode); err != nil {
		return nil, err
	}

	return that.ticTacToe.SetMode(ctx, playerID, mode.VsAI)
}

func (that *Server) handleTicTacToeReset(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.ticTacToe.Reset(ctx, playerID)
}

func (that *Server) handleBattleshipState(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.battleship.State(ctx, playerID)
}

func (that *Server) handleBattleshipSelect(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var selection selectPayload
	if err := decode(payload, &selection); err != nil {
		return nil, err
	}

	return that.battleship.SelectShip(ctx, playerID, selection.Index)
}

func (that *Server) handleBattleshipRotate(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.battleship.RotateSelected(ctx, playerID)
}

func (that *Server) handleBattleshipPlace(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var cell cellPayload
	if err := decode(payload, &cell); err != nil {
		return nil, err
	}

	return that.battleship.PlaceShip(ctx, playerID, cell.Row, cell.Col)
}

func (that *Server) handleBattleshipToggle(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var cell cellPayload
	if err := decode(payload, &cell); err != nil {
		return nil, err
	}

	return that.battleship.ToggleOrientation(ctx, playerID, cell.Row, cell.Col)
}

func (that *Server) handleBattleshipRemove(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var cell cellPayload
	if err := decode(payload, &cell); err != nil {
		return nil, err
	}

	return that.battleship.RemoveShip(ctx, playerID, cell.Row, cell.Col)
}

func (that *Server) handleBattleshipStart(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.battleship.StartBattle(ctx, playerID)
}

func (that *Server) handleBattleshipAttack(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var cell cellPayload
	if err := decode(payload, &cell); err != nil {
		return nil, err
	}

	return that.battleship.Attack(ctx, playerID, cell.Row, cell.Col)
}

func (that *Server) handleBattleshipReset(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.battleship.Reset(ctx, playerID)
}

func (that *Server) handleHangmanState(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.hangman.State(ctx, playerID)
}

func (that *Server) handleHangmanNew(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.hangman.NewGame(ctx, playerID)
}

func (that *Server) handleHangmanGuess(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var guess guessPayload
	if err := decode(payload, &guess); err != nil {
		return nil, err
	}

	return that.hangman.Guess(ctx, playerID, guess.Letter)
}

func (that *Server) handleWordSearchState(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.wordSearch.State(ctx, playerID)
}

func (that *Server) handleWordSearchNew(ctx context.Context, playerID string, _ json.RawMessage) (any, error) {
	return that.wordSearch.NewGame(ctx, playerID)
}

func (that *Server) handleWordSearchCheck(ctx context.Context, playerID string, payload json.RawMessage) (any, error) {
	var path pathPayload
	if err := decode(payload, &path); err != nil {
		return nil, err
	}

	return that.wordSearch.CheckPath(ctx, playerID, path.Path)
}
