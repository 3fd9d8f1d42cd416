package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushan22882917/f-7556/internal/api"
	"github.com/raushan22882917/f-7556/internal/config"
	"github.com/raushan22882917/f-7556/internal/db"
	"github.com/raushan22882917/f-7556/internal/engine"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var cache *db.LeaderboardCache
	if cfg.RedisAddr != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, serving leaderboard without cache: %v", err)
		} else {
			defer rdb.Close()
			cache = db.NewLeaderboardCache(rdb, cfg.LeaderboardCacheTTL)
		}
	}

	store := db.NewStore(pool)
	session := engine.NewSession(engine.SessionConfig{
		Store:            store,
		Logger:           log.Default(),
		Tick:             cfg.CountdownTick,
		LeaderboardLimit: cfg.LeaderboardLimit,
	})
	session.Start(ctx)

	srv := api.NewServer(pool, session, cache, cfg)

	go func() {
		log.Printf("Server starting on port %s...", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
