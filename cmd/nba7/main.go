package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adam-cott/nba7/internal/api"
	"github.com/adam-cott/nba7/internal/app"
	"github.com/adam-cott/nba7/internal/comments"
	"github.com/adam-cott/nba7/internal/config"
	"github.com/adam-cott/nba7/internal/feeds"
	"github.com/adam-cott/nba7/internal/logger"
	"github.com/adam-cott/nba7/internal/news"
	"github.com/adam-cott/nba7/internal/sentiment"
	"github.com/adam-cott/nba7/internal/store"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	sources, err := config.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		log.Fatalf("feeds config error: %v", err)
	}

	st := openStore(cfg)

	a := app.New(
		cfg,
		sources,
		feeds.NewFetcher(cfg.OgFetchTimeout),
		st,
		sentiment.NewAnalyzer(sentiment.NewVaderScorer()),
		comments.NewRedditSource(cfg.CommentTimeout),
	)

	server := api.NewServer(a)
	logger.Info("listening", "port", cfg.Port, "sources", len(sources))
	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore attaches Postgres when configured; otherwise the in-process
// fallback store, seeded with a default poll so voting works out of the box.
func openStore(cfg *config.Config) store.Store {
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, using in-memory store", "error", err)
		} else {
			logger.Info("connected to postgres store")
			return pg
		}
	}

	mem := store.NewMemory()
	mem.SeedPoll(news.Poll{
		ID:       uuid.NewString(),
		Question: "Who wins the Finals this year?",
		Options: []news.PollOption{
			{Text: "East champion"},
			{Text: "West champion"},
		},
		Active:    true,
		CreatedAt: time.Now(),
	})
	return mem
}
