package words

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

//go:embed seed.json
var seed []byte

// Seed returns the built-in word list used to fill an empty store.
func Seed() ([]entity.Word, error) {
	return Parse(seed)
}

// Parse decodes a JSON array of words.
func Parse(data []byte) ([]entity.Word, error) {
	var words []entity.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to decode words: %w", err)
	}

	return words, nil
}

// Memory is a word supply kept in memory.
type Memory struct {
	mu    sync.Mutex
	rnd   random.Source
	words []entity.Word
}

func NewMemory(rnd random.Source, words []entity.Word) *Memory {
	return &Memory{
		rnd:   rnd,
		words: append([]entity.Word(nil), words...),
	}
}

func (that *Memory) RandomWord(ctx context.Context) (entity.Word, error) {
	words, err := that.RandomWords(ctx, 1)
	if err != nil {
		return entity.Word{}, err
	}

	return words[0], nil
}

// RandomWords returns up to n distinct entries in random order.
func (that *Memory) RandomWords(_ context.Context, n int) ([]entity.Word, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.words) == 0 {
		return nil, apperror.ErrNoWords
	}

	if n <= 0 {
		return nil, nil
	}

	n = min(n, len(that.words))

	pool := append([]entity.Word(nil), that.words...)
	for i := range n {
		j := i + that.rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n], nil
}

func (that *Memory) Count(_ context.Context) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.words), nil
}
