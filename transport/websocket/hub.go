package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks the connections of every player and pushes deferred updates to them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	players map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		players: make(map[string]map[*client]struct{}),
	}
}

func (that *Hub) register(playerID string, c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if previous := c.player(); previous != "" && previous != playerID {
		that.removeLocked(previous, c)
	}

	conns, ok := that.players[playerID]
	if !ok {
		conns = make(map[*client]struct{})
		that.players[playerID] = conns
	}

	conns[c] = struct{}{}
	c.setPlayer(playerID)
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if playerID := c.player(); playerID != "" {
		that.removeLocked(playerID, c)
	}
}

func (that *Hub) removeLocked(playerID string, c *client) {
	conns := that.players[playerID]
	delete(conns, c)

	if len(conns) == 0 {
		delete(that.players, playerID)
	}
}

// Connections returns how many sockets the player has open.
func (that *Hub) Connections(playerID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.players[playerID])
}

// Notify sends the payload to every connection of the player.
func (that *Hub) Notify(playerID, action string, payload any) {
	log := that.logger.With("method", "Notify", "action", action)

	data, err := encode(action, payload)
	if err != nil {
		log.Error("failed to encode notification", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.players[playerID] {
		if !c.enqueue(data) {
			log.Warn("dropped notification for slow connection", "player_id", playerID)
		}
	}
}

func encode(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}
