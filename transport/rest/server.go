package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type arcade interface {
	GetPlayer(ctx context.Context, id string) (*entity.Player, error)
	View(ctx context.Context, playerID string, game entity.GameKind) (any, error)
}

type Server struct {
	logger *slog.Logger
	arcade arcade
	router *chi.Mux
}

func NewServer(logger *slog.Logger, arcade arcade) *Server {
	server := &Server{
		logger: logger,
		arcade: arcade,
		router: chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.RealIP)
	server.router.Use(chimw.Recoverer)
	server.router.Use(chimw.Timeout(10 * time.Second))

	server.router.Get("/ping", pingHandler)
	server.router.Get("/health", healthHandler)

	server.router.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/players/{playerID}/{game}", server.handleGameView)
	})

	return server
}

// Router exposes the router for tests.
func (that *Server) Router() chi.Router {
	return that.router
}

func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown http server", "error", err)
		}
	}()

	log.Info("http server started", "port", port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
