package wordsearch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

const (
	GridSize    = 13
	WordCount   = 6
	MaxAttempts = 1000
)

var ErrInvalidState = errors.New("invalid word search state")

type wordSupply interface {
	RandomWords(ctx context.Context, n int) ([]entity.Word, error)
}

type Option func(*Engine)

func WithRandom(src random.Source) Option {
	return func(e *Engine) {
		e.rnd = src
	}
}

func WithGridSize(size int) Option {
	return func(e *Engine) {
		e.size = size
	}
}

func WithWordCount(n int) Option {
	return func(e *Engine) {
		e.wordCount = n
	}
}

type State struct {
	Grid      []string                  `json:"grid"`
	Targets   []string                  `json:"targets"`
	Found     []string                  `json:"found"`
	Paths     map[string][]entity.Coord `json:"paths,omitempty"`
	Highlight []entity.Coord            `json:"highlight,omitempty"`
	Token     uint64                    `json:"highlight_token"`
	Round     uint64                    `json:"round"`
	Completed bool                      `json:"completed"`
}

// View hides where the words not found yet are placed.
func (that State) View() State {
	view := that
	view.Paths = make(map[string][]entity.Coord, len(that.Found))

	for _, word := range that.Found {
		view.Paths[word] = that.Paths[word]
	}

	return view
}

// Engine is a single word search puzzle. It is not safe for concurrent use.
type Engine struct {
	supply    wordSupply
	rnd       random.Source
	size      int
	wordCount int

	grid      Grid
	targets   []string
	found     []string
	paths     map[string][]entity.Coord
	highlight []entity.Coord
	token     uint64
	round     uint64
}

func New(supply wordSupply, opts ...Option) *Engine {
	engine := &Engine{
		supply:    supply,
		size:      GridSize,
		wordCount: WordCount,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rnd == nil {
		engine.rnd = random.NewTimeSeeded()
	}

	engine.paths = make(map[string][]entity.Coord)

	return engine
}

// NewGame builds a fresh puzzle. When the supply fails the puzzle is a grid of
// random letters without targets and the error is returned along with it.
func (that *Engine) NewGame(ctx context.Context) (State, error) {
	that.round++
	that.grid = newGrid(that.size)
	that.targets = nil
	that.found = nil
	that.paths = make(map[string][]entity.Coord)
	that.highlight = nil

	words, err := that.supply.RandomWords(ctx, that.wordCount)
	if err != nil {
		that.grid.fill(that.rnd)
		return that.State(), fmt.Errorf("failed to get random words: %w", err)
	}

	for _, word := range normalize(words) {
		path, ok := that.grid.place(that.rnd, word, MaxAttempts)
		if !ok {
			continue
		}

		that.targets = append(that.targets, word)
		that.paths[word] = path
	}

	that.grid.fill(that.rnd)

	return that.State(), nil
}

// CheckPath marks the target spelled by path as found and highlights it.
func (that *Engine) CheckPath(path []entity.Coord) State {
	word, ok := that.grid.word(path)
	if !ok || !slices.Contains(that.targets, word) || slices.Contains(that.found, word) {
		return that.State()
	}

	that.found = append(that.found, word)
	that.highlight = slices.Clone(path)
	that.token++

	return that.State()
}

// ClearHighlight drops the highlight set by the CheckPath that returned token, unless a newer one replaced it.
func (that *Engine) ClearHighlight(token uint64) State {
	if token == that.token {
		that.highlight = nil
	}

	return that.State()
}

func (that *Engine) Completed() bool {
	return len(that.targets) > 0 && len(that.found) == len(that.targets)
}

func (that *Engine) State() State {
	paths := make(map[string][]entity.Coord, len(that.paths))
	for word, path := range that.paths {
		paths[word] = slices.Clone(path)
	}

	return State{
		Grid:      that.grid.Rows(),
		Targets:   slices.Clone(that.targets),
		Found:     slices.Clone(that.found),
		Paths:     paths,
		Highlight: slices.Clone(that.highlight),
		Token:     that.token,
		Round:     that.round,
		Completed: that.Completed(),
	}
}

func (that *Engine) Restore(state State) error {
	grid, ok := gridFromRows(state.Grid)
	if !ok {
		return fmt.Errorf("%w: malformed grid", ErrInvalidState)
	}

	for _, word := range state.Found {
		if !slices.Contains(state.Targets, word) {
			return fmt.Errorf("%w: found word %q is not a target", ErrInvalidState, word)
		}
	}

	paths := make(map[string][]entity.Coord, len(state.Paths))
	for word, path := range state.Paths {
		spelled, ok := grid.word(path)
		if !ok || spelled != word {
			return fmt.Errorf("%w: path of %q", ErrInvalidState, word)
		}

		paths[word] = slices.Clone(path)
	}

	if grid.size() > 0 {
		that.size = grid.size()
	}

	that.grid = grid
	that.targets = slices.Clone(state.Targets)
	that.found = slices.Clone(state.Found)
	that.paths = paths
	that.highlight = slices.Clone(state.Highlight)
	that.token = state.Token
	that.round = state.Round

	return nil
}

// normalize uppercases and trims words, dropping duplicates and anything that is not plain A-Z.
func normalize(words []entity.Word) []string {
	normalized := make([]string, 0, len(words))

	for _, word := range words {
		text := strings.ToUpper(strings.TrimSpace(word.Word))
		if !entity.IsPlainWord(text) || slices.Contains(normalized, text) {
			continue
		}

		normalized = append(normalized, text)
	}

	return normalized
}

