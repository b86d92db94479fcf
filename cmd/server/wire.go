package main

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/config"
	"github.com/KirkDiggler/onemillion/internal/engine"
	"github.com/KirkDiggler/onemillion/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	"github.com/KirkDiggler/onemillion/internal/pkg/clock"
	"github.com/KirkDiggler/onemillion/internal/pkg/idgen"
	"github.com/KirkDiggler/onemillion/internal/redis"
	"github.com/KirkDiggler/onemillion/internal/repositories/games"
	"github.com/KirkDiggler/onemillion/internal/repositories/highscore"
)

// buildGame wires the turn engine. The returned cleanup closes the Redis
// connection and game database when they were opened.
func buildGame(cfg *config.Config, presenter game.Presenter) (game.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		DiceRoller: dice.DefaultRoller,
		Mitigation: engine.Mitigation(cfg.Mitigation),
	})
	if err != nil {
		return nil, cleanup, errors.Wrap(err, "failed to create engine")
	}

	var highScores highscore.Repository
	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(&redis.Config{Addr: cfg.RedisAddr, PoolSize: 4, MaxRetries: 2})
		if err != nil {
			return nil, cleanup, errors.Wrap(err, "failed to create redis client")
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		})

		highScores, err = highscore.NewRedisRepository(&highscore.Config{
			Client: client,
			Clock:  clock.New(),
		})
		if err != nil {
			return nil, cleanup, err
		}
		slog.Info("High score stored in redis", "addr", cfg.RedisAddr)
	} else {
		highScores = highscore.NewInMemory(clock.New())
	}

	gameStore, err := buildGameStore(cfg, &closers)
	if err != nil {
		return nil, cleanup, err
	}

	imageFeed, err := imagefeed.New(&imagefeed.Config{
		URL:         cfg.ImageURL,
		HTTPTimeout: cfg.ImageTimeout,
	})
	if err != nil {
		return nil, cleanup, errors.Wrap(err, "failed to create image feed client")
	}

	bus := events.NewBus()
	game.SubscribeEventLog(bus, slog.Default())

	service, err := game.NewOrchestrator(&game.Config{
		Engine:      adapter,
		Games:       gameStore,
		HighScores:  highScores,
		Presenter:   presenter,
		EventBus:    bus,
		ImageFeed:   imageFeed,
		IDGenerator: idgen.NewUUID("game"),
		FallbackImage: &imagefeed.Image{
			URL: cfg.FallbackImage,
			Alt: game.DefaultFallbackImage.Alt,
		},
	})
	if err != nil {
		return nil, cleanup, err
	}

	return service, cleanup, nil
}

func buildGameStore(cfg *config.Config, closers *[]func()) (games.Repository, error) {
	if cfg.Database == "" {
		return games.NewInMemory(), nil
	}

	db, err := games.OpenSQLite(cfg.Database)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Warn("Failed to close game database", "error", err)
		}
	})

	repo, err := games.NewSQLiteRepository(&games.SQLiteConfig{DB: db})
	if err != nil {
		return nil, err
	}

	slog.Info("Games stored in sqlite", "database", cfg.Database)
	return repo, nil
}
