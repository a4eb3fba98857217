package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/pencilgames-backend/internal/apperror"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// handleGameView returns the current view of one game of a known player. Reading a game never starts one.
func (that *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGameView")

	playerID := chi.URLParam(r, "playerID")

	game, err := entity.ParseGameKind(chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if _, err = that.arcade.GetPlayer(r.Context(), playerID); err != nil {
		if errors.Is(err, apperror.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, apperror.ErrPlayerNotFound)
			return
		}

		log.Error("failed to get player", "player_id", playerID, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))

		return
	}

	view, err := that.arcade.View(r.Context(), playerID, game)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, apperror.ErrSessionNotFound)
			return
		}

		log.Error("failed to get game view", "player_id", playerID, "game", game, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))

		return
	}

	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
