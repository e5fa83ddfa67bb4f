// Command reindex rebuilds the full-text index from the relational store.
// Run it after index loss or schema changes on the index side.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bloghub/database"
	"bloghub/internal/config"
	"bloghub/internal/models"
	"bloghub/internal/search"
	"bloghub/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.ElasticsearchURL == "" {
		fmt.Fprintln(os.Stderr, "ELASTICSEARCH_URL is not set, nothing to reindex")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	gormDB, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	db := store.New(gormDB)

	synchronizer := search.NewSynchronizer(db, search.NewElasticBackend(cfg.ElasticsearchURL), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	if err := search.Reindex[models.Article](ctx, synchronizer); err != nil {
		logger.Error("reindex failed", "error", err)
		os.Exit(1)
	}
	logger.Info("reindex complete", "took", time.Since(start).Round(time.Millisecond))
}
