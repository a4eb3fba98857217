package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/pencilgames-backend/internal/config"
	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
	"github.com/rocketscienceinc/pencilgames-backend/internal/repository"
	"github.com/rocketscienceinc/pencilgames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pencilgames-backend/internal/service"
	"github.com/rocketscienceinc/pencilgames-backend/internal/usecase"
	"github.com/rocketscienceinc/pencilgames-backend/internal/words"
	"github.com/rocketscienceinc/pencilgames-backend/transport/rest"
	"github.com/rocketscienceinc/pencilgames-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type wordSupply interface {
	RandomWord(ctx context.Context) (entity.Word, error)
	RandomWords(ctx context.Context, n int) ([]entity.Word, error)
	Count(ctx context.Context) (int, error)
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	rnd := random.NewFactory(conf.Seed)

	supply, closeSupply, err := initWordSupply(ctx, log, conf, rnd)
	if err != nil {
		return err
	}
	defer closeSupply()

	count, err := supply.Count(ctx)
	if err != nil {
		return fmt.Errorf("could not count words: %w", err)
	}

	log.Info("word supply ready", "words", count)

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection, conf.SessionTTL)
	snapshotRepo := repository.NewSnapshotRepository(redisStorage.Connection, conf.SessionTTL)

	hub := websocket.NewHub(logger)
	scheduler := service.NewTimerScheduler()

	playerService := service.NewPlayerService(playerRepo)
	ticTacToeService := service.NewTicTacToeService(logger, service.TicTacToeConfig{
		BestMoveChance: conf.Games.TicTacToe.BestMoveChance,
		ThinkMin:       conf.Games.TicTacToe.ThinkMin,
		ThinkMax:       conf.Games.TicTacToe.ThinkMax,
	}, rnd, snapshotRepo, scheduler, hub)
	battleshipService := service.NewBattleshipService(logger, service.BattleshipConfig{
		ReplyDelay: conf.Games.Battleship.ReplyDelay,
	}, rnd, snapshotRepo, scheduler, hub)
	hangmanService := service.NewHangmanService(logger, supply, snapshotRepo)
	wordSearchService := service.NewWordSearchService(logger, service.WordSearchConfig{
		HighlightDuration: conf.Games.WordSearch.HighlightDuration,
	}, rnd, supply, snapshotRepo, scheduler, hub)

	// in-memory sessions live no longer than their snapshots
	sweeper := service.NewSweeper(logger, conf.SweepInterval, conf.SessionTTL,
		ticTacToeService, battleshipService, hangmanService, wordSearchService)
	go sweeper.Run(ctx)

	arcade := usecase.NewArcade(logger, playerService, ticTacToeService, battleshipService, hangmanService, wordSearchService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		httpServer := rest.NewServer(logger, arcade)
		if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		wsServer := websocket.NewServer(logger, hub, arcade, ticTacToeService, battleshipService, hangmanService, wordSearchService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initWordSupply opens the SQLite word store and fills it from the embedded seed on first run.
// Without a configured path the seed is served from memory.
func initWordSupply(ctx context.Context, log *slog.Logger, conf *config.Config, rnd *random.Factory) (wordSupply, func(), error) {
	seed, err := words.Seed()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read seed words: %w", err)
	}

	if conf.SQLiteStoragePath == "" {
		log.Warn("sqlite storage path is empty, serving seed words from memory")
		return words.NewMemory(rnd.Source(), seed), func() {}, nil
	}

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	closeStorage := func() {
		if err := sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	wordRepo := repository.NewWordRepository(sqliteStorage.Connection)

	added, err := wordRepo.PreloadIfEmpty(ctx, seed)
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("could not preload words: %w", err)
	}

	if added > 0 {
		log.Info("word store seeded", "added", added)
	}

	return wordRepo, closeStorage, nil
}
