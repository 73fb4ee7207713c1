package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/nicupavel/hf-propagation-eink/internal/config"
	"github.com/nicupavel/hf-propagation-eink/internal/hamqsl"
	httpserver "github.com/nicupavel/hf-propagation-eink/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	feed := hamqsl.NewCache(func(ctx context.Context) ([]byte, error) {
		return hamqsl.FetchFeed(ctx, client, cfg.FeedURL)
	}, cfg.RefreshInterval)

	srv := httpserver.New(cfg, feed)
	log.Printf("propagation server listening on %s (feed %s)", cfg.ListenAddr(), cfg.FeedURL)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
