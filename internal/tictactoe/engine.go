package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

const (
	DefaultBestMoveChance = 0.75

	// AIMark is the mark the computer opponent plays; the human always opens as X.
	AIMark = O
)

var ErrInvalidState = errors.New("invalid tic-tac-toe state")

type Option func(*Engine)

func WithRandom(src random.Source) Option {
	return func(e *Engine) {
		e.rnd = src
	}
}

func WithVsAI(enabled bool) Option {
	return func(e *Engine) {
		e.vsAI = enabled
	}
}

// WithBestMoveChance sets the probability that the AI plays the minimax move instead of a random one.
func WithBestMoveChance(chance float64) Option {
	return func(e *Engine) {
		e.bestMoveChance = chance
	}
}

// State is a snapshot of the game.
type State struct {
	Board       Board          `json:"board"`
	Current     Mark           `json:"current_player"`
	Winner      Mark           `json:"winner,omitempty"`
	Draw        bool           `json:"draw"`
	VsAI        bool           `json:"vs_ai"`
	AITurn      bool           `json:"ai_turn"`
	Round       uint64         `json:"round"`
	WinningLine []entity.Coord `json:"winning_line,omitempty"`
}

func (that State) IsOver() bool {
	return that.Winner != Empty || that.Draw
}

// Engine holds one tic-tac-toe game. It is not safe for concurrent use.
type Engine struct {
	rnd            random.Source
	bestMoveChance float64
	vsAI           bool

	board   Board
	current Mark
	winner  Mark
	draw    bool
	round   uint64
}

func New(opts ...Option) *Engine {
	engine := &Engine{
		bestMoveChance: DefaultBestMoveChance,
		current:        X,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rnd == nil {
		engine.rnd = random.NewTimeSeeded()
	}

	return engine
}

func (that *Engine) State() State {
	return State{
		Board:       that.board,
		Current:     that.current,
		Winner:      that.winner,
		Draw:        that.draw,
		VsAI:        that.vsAI,
		AITurn:      that.IsAITurn(),
		Round:       that.round,
		WinningLine: that.WinningLine(),
	}
}

// Restore replaces the game with a previously taken snapshot. Winner and draw are recomputed from the board.
func (that *Engine) Restore(state State) error {
	for i, mark := range state.Board {
		if mark != Empty && mark != X && mark != O {
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidState, i, mark)
		}
	}

	if state.Current != X && state.Current != O {
		return fmt.Errorf("%w: current player %q", ErrInvalidState, state.Current)
	}

	that.board = state.Board
	that.current = state.Current
	that.vsAI = state.VsAI
	that.round = state.Round
	that.winner, that.draw = Empty, false
	that.evaluate()

	return nil
}

// PlayMove places the current player's mark. Occupied cells, finished games and,
// against the AI, moves made on the AI's turn are ignored.
func (that *Engine) PlayMove(row, col int) State {
	if that.IsAITurn() {
		return that.State()
	}

	that.makeTurn(row, col)

	return that.State()
}

// IsAITurn reports whether the AI is expected to move next.
func (that *Engine) IsAITurn() bool {
	return that.vsAI && !that.isOver() && that.current == AIMark
}

// PlayAIMove lets the AI move: the minimax move with probability bestMoveChance, otherwise a random empty cell.
func (that *Engine) PlayAIMove() State {
	if !that.IsAITurn() {
		return that.State()
	}

	move, ok := that.chooseAIMove()
	if ok {
		that.makeTurn(move.Row, move.Col)
	}

	return that.State()
}

// WinningLine returns the cells of the completed line, or nil.
func (that *Engine) WinningLine() []entity.Coord {
	_, combo, won := that.board.Winner()
	if !won {
		return nil
	}

	line := make([]entity.Coord, 0, len(combo))
	for _, i := range combo {
		line = append(line, coord(i))
	}

	return line
}

func (that *Engine) SetVsAI(enabled bool) State {
	that.vsAI = enabled

	return that.Reset()
}

func (that *Engine) Reset() State {
	that.board = Board{}
	that.current = X
	that.winner = Empty
	that.draw = false
	that.round++

	return that.State()
}

func (that *Engine) chooseAIMove() (entity.Coord, bool) {
	if that.rnd.Float64() < that.bestMoveChance {
		if move, ok := BestMove(that.board, AIMark); ok {
			return move, true
		}
	}

	empty := that.board.EmptyCells()
	if len(empty) == 0 {
		return entity.Coord{}, false
	}

	return random.Pick(that.rnd, empty), true
}

func (that *Engine) makeTurn(row, col int) {
	if that.isOver() || !inBounds(row, col) {
		return
	}

	i := index(row, col)
	if that.board[i] != Empty {
		return
	}

	that.board[i] = that.current
	if that.evaluate() {
		that.current = toggleMark(that.current)
	}
}

// evaluate - checks the game status after a move, reports whether the game goes on.
func (that *Engine) evaluate() bool {
	if winner, _, won := that.board.Winner(); won {
		that.winner = winner
		return false
	}

	if that.board.Full() {
		that.draw = true
		return false
	}

	return true
}

func (that *Engine) isOver() bool {
	return that.winner != Empty || that.draw
}
