package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lyricduet/duetbot/internal/bot"
	"github.com/lyricduet/duetbot/internal/bot/client"
	"github.com/lyricduet/duetbot/internal/cache"
	"github.com/lyricduet/duetbot/internal/config"
	"github.com/lyricduet/duetbot/internal/db"
	"github.com/lyricduet/duetbot/internal/game"
	"github.com/lyricduet/duetbot/internal/logger"
	"github.com/lyricduet/duetbot/internal/netease"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clientBot, err := bot.New("duetbot", cfg.BotToken)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}
	logger.Init(clientBot, cfg.LogChannelID)

	var lyricCache game.LyricCache
	if cfg.RedisURL != "" {
		manager, err := cache.New(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer manager.Close()
		lyricCache = manager
	} else {
		log.Print("REDIS_URL not set, running without lyrics cache")
	}

	var plays game.PlayRecorder
	if cfg.TursoURL != "" {
		database, err := db.New(cfg.TursoURL, cfg.TursoToken)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("failed to prepare database: %v", err)
		}
		plays = database
	} else {
		log.Print("TURSO_DATABASE_URL not set, running without play counters")
	}

	store := game.NewStore(cfg.SessionTimeout)
	engine := game.NewEngine(store, netease.NewClient(cfg.LookupBaseURL), lyricCache, plays, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, cfg.SweepInterval)

	client.SetupHandlers(clientBot, engine, store, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Print("shutting down")
	clientBot.Stop()
}
