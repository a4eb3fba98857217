package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/pencilgames-backend/internal/battleship"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/hangman"
	"github.com/rocketscienceinc/pencilgames-backend/internal/tictactoe"
	"github.com/rocketscienceinc/pencilgames-backend/internal/wordsearch"
)

var errNotConnected = errors.New("player is not connected")

type arcade interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
}

type ticTacToeService interface {
	State(ctx context.Context, playerID string) (tictactoe.State, error)
	Move(ctx context.Context, playerID string, row, col int) (tictactoe.State, error)
	SetMode(ctx context.Context, playerID string, vsAI bool) (tictactoe.State, error)
	Reset(ctx context.Context, playerID string) (tictactoe.State, error)
}

type battleshipService interface {
	State(ctx context.Context, playerID string) (battleship.State, error)
	SelectShip(ctx context.Context, playerID string, index int) (battleship.State, error)
	RotateSelected(ctx context.Context, playerID string) (battleship.State, error)
	PlaceShip(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	ToggleOrientation(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	RemoveShip(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	StartBattle(ctx context.Context, playerID string) (battleship.State, error)
	Attack(ctx context.Context, playerID string, row, col int) (battleship.State, error)
	Reset(ctx context.Context, playerID string) (battleship.State, error)
}

type hangmanService interface {
	State(ctx context.Context, playerID string) (hangman.State, error)
	NewGame(ctx context.Context, playerID string) (hangman.State, error)
	Guess(ctx context.Context, playerID, letter string) (hangman.State, error)
}

type wordSearchService interface {
	State(ctx context.Context, playerID string) (wordsearch.State, error)
	NewGame(ctx context.Context, playerID string) (wordsearch.State, error)
	CheckPath(ctx context.Context, playerID string, path []entity.Coord) (wordsearch.State, error)
}

// handler serves one action for a connected player and returns the response payload.
type handler func(ctx context.Context, playerID string, payload json.RawMessage) (any, error)

type Server struct {
	logger *slog.Logger
	hub    *Hub

	arcade     arcade
	ticTacToe  ticTacToeService
	battleship battleshipService
	hangman    hangmanService
	wordSearch wordSearchService

	upgrader websocket.Upgrader
	handlers map[string]handler
}

func NewServer(
	logger *slog.Logger,
	hub *Hub,
	arcade arcade,
	ticTacToe ticTacToeService,
	battleship battleshipService,
	hangman hangmanService,
	wordSearch wordSearchService,
) *Server {
	server := &Server{
		logger:     logger,
		hub:        hub,
		arcade:     arcade,
		ticTacToe:  ticTacToe,
		battleship: battleship,
		hangman:    hangman,
		wordSearch: wordSearch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handler),
	}

	server.handlers["tictactoe:state"] = server.handleTicTacToeState
	server.handlers["tictactoe:move"] = server.handleTicTacToeMove
	server.handlers["tictactoe:mode"] = server.handleTicTacToeMode
	server.handlers["tictactoe:reset"] = server.handleTicTacToeReset

	server.handlers["battleship:state"] = server.handleBattleshipState
	server.handlers["battleship:select"] = server.handleBattleshipSelect
	server.handlers["battleship:rotate"] = server.handleBattleshipRotate
	server.handlers["battleship:place"] = server.handleBattleshipPlace
	server.handlers["battleship:toggle"] = server.handleBattleshipToggle
	server.handlers["battleship:remove"] = server.handleBattleshipRemove
	server.handlers["battleship:start"] = server.handleBattleshipStart
	server.handlers["battleship:attack"] = server.handleBattleshipAttack
	server.handlers["battleship:reset"] = server.handleBattleshipReset

	server.handlers["hangman:state"] = server.handleHangmanState
	server.handlers["hangman:new"] = server.handleHangmanNew
	server.handlers["hangman:guess"] = server.handleHangmanGuess

	server.handlers["wordsearch:state"] = server.handleWordSearchState
	server.handlers["wordsearch:new"] = server.handleWordSearchNew
	server.handlers["wordsearch:check"] = server.handleWordSearchCheck

	return server
}

// Handler upgrades requests to WebSocket connections.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	log.Info("websocket server started", "port", port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start websocket server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)

	go c.writePump()

	c.readPump(log, func(data []byte) {
		that.handleMessage(context.Background(), c, data)
	})

	that.hub.unregister(c)
	c.close()
}

func (that *Server) handleMessage(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "handleMessage")

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Warn("failed to decode message", "error", err)
		that.reply(c, "error", errorPayload{Error: "invalid message"})

		return
	}

	if msg.Action == "connect" {
		that.handleConnect(ctx, c, msg.Payload)
		return
	}

	handle, ok := that.handlers[msg.Action]
	if !ok {
		that.reply(c, msg.Action, errorPayload{Error: "unknown action: " + strconv.Quote(msg.Action)})
		return
	}

	playerID := c.player()
	if playerID == "" {
		that.reply(c, msg.Action, errorPayload{Error: errNotConnected.Error()})
		return
	}

	response, err := handle(ctx, playerID, msg.Payload)
	if err != nil {
		log.Error("failed to handle action", "action", msg.Action, "player_id", playerID, "error", err)
		that.reply(c, msg.Action, errorPayload{Error: err.Error()})

		return
	}

	that.reply(c, msg.Action, response)
}

func (that *Server) reply(c *client, action string, payload any) {
	log := that.logger.With("method", "reply")

	data, err := encode(action, payload)
	if err != nil {
		log.Error("failed to encode response", "action", action, "error", err)
		return
	}

	if !c.enqueue(data) {
		log.Warn("dropped response for slow connection", "action", action)
	}
}
