package hangman

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

const (
	MaxMistakes   = 6
	HintThreshold = 4
)

var ErrInvalidState = errors.New("invalid hangman state")

type wordSupply interface {
	RandomWord(ctx context.Context) (entity.Word, error)
}

type State struct {
	Word       string   `json:"word,omitempty"`
	Hint       string   `json:"hint,omitempty"`
	Definition string   `json:"definition,omitempty"`
	Guessed    []string `json:"guessed"`
	Mistakes   int      `json:"mistakes"`
	GameOver   bool     `json:"game_over"`
	Won        bool     `json:"won"`
	Round      uint64   `json:"round"`

	Display     string `json:"display"`
	HintVisible bool   `json:"hint_visible"`
}

// View is what the player sees: the answer only once the game is over, the definition only on a loss.
func (that State) View() State {
	view := that

	if !that.GameOver {
		view.Word = ""
		view.Definition = ""
	}

	if that.Won {
		view.Definition = ""
	}

	if !that.HintVisible {
		view.Hint = ""
	}

	return view
}

// Engine is a single hangman game. It is not safe for concurrent use.
type Engine struct {
	supply wordSupply

	word     entity.Word
	guessed  []rune
	mistakes int
	gameOver bool
	won      bool
	round    uint64
}

func New(supply wordSupply) *Engine {
	return &Engine{supply: supply}
}

// StartNewGame draws a new secret word. The current game is kept when the supply fails.
func (that *Engine) StartNewGame(ctx context.Context) (State, error) {
	word, err := that.supply.RandomWord(ctx)
	if err != nil {
		return that.State(), fmt.Errorf("failed to get random word: %w", err)
	}

	word.Word = strings.ToUpper(strings.TrimSpace(word.Word))
	if word.Word == "" {
		return that.State(), fmt.Errorf("%w: empty word", ErrInvalidState)
	}

	if !entity.IsPlainWord(word.Word) {
		return that.State(), fmt.Errorf("%w: word %q is not plain letters", ErrInvalidState, word.Word)
	}

	that.word = word
	that.guessed = nil
	that.mistakes = 0
	that.gameOver = false
	that.won = false
	that.round++

	return that.State(), nil
}

// GuessLetter applies one guess. Non-letters, repeats and guesses outside a running game are ignored.
func (that *Engine) GuessLetter(r rune) State {
	if that.word.Word == "" || that.gameOver || !unicode.IsLetter(r) {
		return that.State()
	}

	r = unicode.ToUpper(r)
	if slices.Contains(that.guessed, r) {
		return that.State()
	}

	that.guessed = append(that.guessed, r)

	if !strings.ContainsRune(that.word.Word, r) {
		that.mistakes++
		if that.mistakes >= MaxMistakes {
			that.gameOver = true
		}

		return that.State()
	}

	if that.allRevealed() {
		that.gameOver = true
		that.won = true
	}

	return that.State()
}

// DisplayWord masks the letters not guessed yet, e.g. "C _ T".
func (that *Engine) DisplayWord() string {
	cells := make([]string, 0, len(that.word.Word))
	for _, r := range that.word.Word {
		if slices.Contains(that.guessed, r) {
			cells = append(cells, string(r))
		} else {
			cells = append(cells, "_")
		}
	}

	return strings.Join(cells, " ")
}

func (that *Engine) HintVisible() bool {
	return that.mistakes >= HintThreshold && !that.gameOver
}

func (that *Engine) State() State {
	guessed := make([]string, 0, len(that.guessed))
	for _, r := range that.guessed {
		guessed = append(guessed, string(r))
	}

	return State{
		Word:        that.word.Word,
		Hint:        that.word.Hint,
		Definition:  that.word.Definition,
		Guessed:     guessed,
		Mistakes:    that.mistakes,
		GameOver:    that.gameOver,
		Won:         that.won,
		Round:       that.round,
		Display:     that.DisplayWord(),
		HintVisible: that.HintVisible(),
	}
}

// Restore loads a snapshot taken by State; the derived fields are recomputed.
func (that *Engine) Restore(state State) error {
	if state.Mistakes < 0 || state.Mistakes > MaxMistakes {
		return fmt.Errorf("%w: %d mistakes", ErrInvalidState, state.Mistakes)
	}

	if state.Word != "" && !entity.IsPlainWord(strings.ToUpper(state.Word)) {
		return fmt.Errorf("%w: word %q is not plain letters", ErrInvalidState, state.Word)
	}

	guessed := make([]rune, 0, len(state.Guessed))
	for _, letter := range state.Guessed {
		runes := []rune(letter)
		if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
			return fmt.Errorf("%w: guess %q", ErrInvalidState, letter)
		}

		guessed = append(guessed, unicode.ToUpper(runes[0]))
	}

	that.word = entity.Word{
		Word:       strings.ToUpper(state.Word),
		Hint:       state.Hint,
		Definition: state.Definition,
	}
	that.guessed = guessed
	that.mistakes = state.Mistakes
	that.gameOver = state.GameOver
	that.won = state.Won
	that.round = state.Round

	return nil
}

func (that *Engine) allRevealed() bool {
	for _, r := range that.word.Word {
		if !slices.Contains(that.guessed, r) {
			return false
		}
	}

	return true
}
