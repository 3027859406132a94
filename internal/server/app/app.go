// Package app assembles the local server from a config: results store, engine,
// game manager and HTTP routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/config"
	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
)

type App struct {
	cfg    config.Config
	store  *storage.Storage
	games  *game.Manager
	server *http.Server
}

func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store *storage.Storage
	var err error
	if cfg.DataDir == "" {
		store, err = storage.OpenInMemory()
	} else {
		store, err = storage.Open(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("open results store: %w", err)
	}

	eng := engine.NewEngine(engine.SearchConfig{
		MaxDepth:  cfg.EngineDepth,
		TimeLimit: cfg.EngineTimeout,
		VCFDepth:  cfg.VCFDepth,
	})
	games := game.NewManager()
	// 留一点余量给序列化和落子
	h := httpserver.NewHandler(games, eng, store, cfg.EngineTimeout+2*time.Second)

	return &App{
		cfg:   cfg,
		store: store,
		games: games,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpserver.NewMux(h, cfg.WebDir),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (a *App) Handler() http.Handler { return a.server.Handler }

func (a *App) Games() *game.Manager { return a.games }

// Run serves until ctx is cancelled, then shuts the listener down and closes
// the store.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s, serving static from %q", a.cfg.Addr, a.cfg.WebDir)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
