package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type connectPayload struct {
	PlayerID string `json:"player_id"`
}

type connectResponse struct {
	Player *entity.Player `json:"player"`
}

type cellPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type selectPayload struct {
	Index int `json:"index"`
}

type modePayload struct {
	VsAI bool `json:"vs_ai"`
}

type guessPayload struct {
	Letter string `json:"letter"`
}

type pathPayload struct {
	Path []entity.Coord `json:"path"`
}
