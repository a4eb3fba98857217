package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

var discardLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// memorySnapshots keeps snapshots as JSON, like the Redis repository does.
type memorySnapshots struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{saved: make(map[string][]byte)}
}

func (that *memorySnapshots) Save(_ context.Context, game entity.GameKind, playerID string, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.saved[game.String()+":"+playerID] = data

	return nil
}

func (that *memorySnapshots) Load(_ context.Context, game entity.GameKind, playerID string, state any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.saved[game.String()+":"+playerID]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	return json.Unmarshal(data, state)
}

// manualScheduler holds callbacks until Run is called.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (that *manualScheduler) AfterFunc(d time.Duration, f func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.pending = append(that.pending, f)
	that.delays = append(that.delays, d)
}

func (that *manualScheduler) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.pending)
}

// Run fires every pending callback in scheduling order.
func (that *manualScheduler) Run() {
	that.mu.Lock()
	pending := that.pending
	that.pending = nil
	that.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

type notification struct {
	playerID string
	action   string
	payload  any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (that *recordingNotifier) Notify(playerID, action string, payload any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sent = append(that.sent, notification{playerID: playerID, action: action, payload: payload})
}

func (that *recordingNotifier) Sent() []notification {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]notification(nil), that.sent...)
}
