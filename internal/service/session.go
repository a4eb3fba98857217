package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type snapshotRepo interface {
	Save(ctx context.Context, game entity.GameKind, playerID string, state any) error
	Load(ctx context.Context, game entity.GameKind, playerID string, state any) error
}

type engine[S any] interface {
	State() S
	Restore(state S) error
}

type session[E any] struct {
	mu       sync.Mutex
	engine   E
	lastUsed time.Time
	// evicted is set once the session left the active map; holders must acquire again.
	evicted bool
}

// sessions owns one engine per player for a single game kind. Engines are not safe for
// concurrent use, every access goes through the session lock.
type sessions[E engine[S], S any] struct {
	logger    *slog.Logger
	kind      entity.GameKind
	snapshots snapshotRepo
	newEngine func() E
	now       func() time.Time

	mu     sync.Mutex
	active map[string]*session[E]
}

func newSessions[E engine[S], S any](logger *slog.Logger, kind entity.GameKind, snapshots snapshotRepo, newEngine func() E) *sessions[E, S] {
	return &sessions[E, S]{
		logger:    logger.With("game", kind.String()),
		kind:      kind,
		snapshots: snapshots,
		newEngine: newEngine,
		now:       time.Now,
		active:    make(map[string]*session[E]),
	}
}

func (that *sessions[E, S]) lookup(playerID string) (*session[E], bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	s, ok := that.active[playerID]

	return s, ok
}

// acquire returns the player's session, resuming it from the last snapshot when it is not in memory.
// The snapshot is read without holding the map lock; a session inserted meanwhile wins.
func (that *sessions[E, S]) acquire(ctx context.Context, playerID string) (*session[E], error) {
	if s, ok := that.lookup(playerID); ok {
		return s, nil
	}

	loaded, err := that.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if s, ok := that.active[playerID]; ok {
		return s, nil
	}

	that.active[playerID] = loaded

	return loaded, nil
}

func (that *sessions[E, S]) load(ctx context.Context, playerID string) (*session[E], error) {
	s := &session[E]{engine: that.newEngine(), lastUsed: that.now()}

	var state S
	err := that.snapshots.Load(ctx, that.kind, playerID, &state)

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load %s session: %w", that.kind, err)
	default:
		if err = s.engine.Restore(state); err != nil {
			that.logger.Warn("discarding broken snapshot", "playerID", playerID, "error", err)
			s.engine = that.newEngine()
		}
	}

	return s, nil
}

// update runs fn under the session lock and persists the resulting state.
// The error of fn is returned along with the state.
func (that *sessions[E, S]) update(ctx context.Context, playerID string, fn func(E) error) (S, error) {
	for {
		s, err := that.acquire(ctx, playerID)
		if err != nil {
			var zero S
			return zero, err
		}

		state, ok, err := that.run(ctx, playerID, s, fn)
		if ok {
			return state, err
		}
	}
}

// run reports false when s was evicted before its lock was taken.
func (that *sessions[E, S]) run(ctx context.Context, playerID string, s *session[E], fn func(E) error) (S, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.evicted {
		var zero S
		return zero, false, nil
	}

	s.lastUsed = that.now()

	fnErr := fn(s.engine)
	state := s.engine.State()

	if err := that.snapshots.Save(ctx, that.kind, playerID, state); err != nil {
		return state, true, fmt.Errorf("failed to save %s session: %w", that.kind, err)
	}

	return state, true, fnErr
}

// deferred applies fn to a session that is still in memory, typically from a timer.
// fn reports whether it changed anything; only then the state is saved and returned.
func (that *sessions[E, S]) deferred(playerID string, fn func(E) bool) (S, bool) {
	var zero S

	s, ok := that.lookup(playerID)
	if !ok {
		return zero, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.evicted || !fn(s.engine) {
		return zero, false
	}

	state := s.engine.State()

	if err := that.snapshots.Save(context.Background(), that.kind, playerID, state); err != nil {
		that.logger.Error("failed to save session", "playerID", playerID, "error", err)
	}

	return state, true
}

// peek reads the player's state without starting, saving or caching anything.
// It fails with apperror.ErrSessionNotFound when the player never played this game.
func (that *sessions[E, S]) peek(ctx context.Context, playerID string) (S, error) {
	if s, ok := that.lookup(playerID); ok {
		if state, live := that.current(s); live {
			return state, nil
		}
	}

	var state S
	if err := that.snapshots.Load(ctx, that.kind, playerID, &state); err != nil {
		return state, fmt.Errorf("failed to load %s session: %w", that.kind, err)
	}

	restored := that.newEngine()
	if err := restored.Restore(state); err != nil {
		var zero S
		return zero, fmt.Errorf("broken %s snapshot: %w: %w", that.kind, apperror.ErrSessionNotFound, err)
	}

	return restored.State(), nil
}

func (that *sessions[E, S]) current(s *session[E]) (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.evicted {
		var zero S
		return zero, false
	}

	return s.engine.State(), true
}

// evictIdle drops sessions unused for longer than maxIdle. Busy sessions are skipped.
// Their last state is already in the snapshot store, so acquire resumes them later.
func (that *sessions[E, S]) evictIdle(maxIdle time.Duration) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	deadline := that.now().Add(-maxIdle)
	evicted := 0

	for playerID, s := range that.active {
		if !s.mu.TryLock() {
			continue
		}

		if s.lastUsed.Before(deadline) {
			s.evicted = true
			delete(that.active, playerID)
			evicted++
		}

		s.mu.Unlock()
	}

	if evicted > 0 {
		that.logger.Debug("idle sessions evicted", "count", evicted)
	}

	return evicted
}
