package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/frontline/internal/api"
	"github.com/udisondev/frontline/internal/config"
	"github.com/udisondev/frontline/internal/data"
	"github.com/udisondev/frontline/internal/db"
	"github.com/udisondev/frontline/internal/game/gamemode"
	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/model"
)

const (
	ConfigPath = "config/frontline.yaml"

	zoneWriteQueue  = 128
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Config first: it carries the log level
	cfgPath := config.ResolvePath(ConfigPath)
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("frontline starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"http", cfg.HTTP.Addr(),
		"zones_source", cfg.Zones.Source)

	var (
		models []zone.Model
		writer *db.ZoneWriter
	)
	switch cfg.Zones.Source {
	case config.ZoneSourceDatabase:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		models, err = database.Zones().LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("loading zones: %w", err)
		}
		writer = db.NewZoneWriter(database.Zones(), zoneWriteQueue)

	default:
		models, err = data.LoadZoneFile(cfg.Zones.File)
		if err != nil {
			return fmt.Errorf("loading zones: %w", err)
		}
	}

	zones := zone.NewManager(zone.Options{PerimeterSpacing: cfg.Gamemode.PerimeterSpacing})
	if err := zones.Load(models); err != nil {
		return err
	}

	players := model.NewRegistry()
	hub := api.NewHub(nil)

	game, err := gamemode.New(cfg.Gamemode, zones, players, gamemode.WithListener(hub))
	if err != nil {
		return fmt.Errorf("creating gamemode: %w", err)
	}
	hub.SetSource(game)

	if err := game.Load(); err != nil {
		return fmt.Errorf("loading gamemode: %w", err)
	}
	if err := game.StartMatch(); err != nil {
		return fmt.Errorf("starting match: %w", err)
	}

	handlers := &api.Handlers{
		Match:   game,
		Zones:   zones,
		Players: players,
		Hub:     hub,
	}
	if writer != nil {
		handlers.Sink = writer
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handlers.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := game.Run(gctx); err != nil {
			return fmt.Errorf("gamemode loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return hub.Run(gctx)
	})

	if writer != nil {
		g.Go(func() error {
			return writer.Run(gctx)
		})
	}

	g.Go(func() error {
		slog.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
