// Package main implements a standalone migration script that upserts the
// demo catalogue into the remote store. It authenticates with the privileged
// service role key, since the anonymous key typically cannot write to the
// products table.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mikii-john/e-commerce-backend/internal/config"
	"github.com/mikii-john/e-commerce-backend/internal/postgrest"
	"github.com/mikii-john/e-commerce-backend/internal/repository/memory"
	"github.com/mikii-john/e-commerce-backend/pkg/httpclient"
	"github.com/mikii-john/e-commerce-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("storefront-seed", cfg.LogLevel)

	if !cfg.UseRemoteStore {
		log.Error("seeding requires USE_REMOTE_STORE=true and store credentials")
		os.Exit(1)
	}

	apiKey := cfg.StoreServiceRoleKey
	if apiKey == "" {
		log.Warn("STORE_SERVICE_ROLE_KEY not set, falling back to anon key")
		apiKey = cfg.StoreAnonKey
	}

	client := postgrest.NewClient(postgrest.Config{
		BaseURL: cfg.StoreURL,
		APIKey:  apiKey,
	}, httpclient.New(httpclient.DefaultConfig()), log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	products := memory.SeedProducts()
	failed := 0
	for _, p := range products {
		log.Info("migrating product", slog.Int64("id", p.ID), slog.String("name", p.Name))

		_, err := client.From("products").OnConflict("id").Upsert(ctx, p)
		if err != nil {
			failed++
			log.Error("product migration failed",
				slog.Int64("id", p.ID),
				slog.String("error", postgrest.Classify(err).Error()),
			)
			continue
		}
	}

	log.Info("migration finished",
		slog.Int("total", len(products)),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}
