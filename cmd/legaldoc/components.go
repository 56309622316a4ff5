package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/config"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/llm"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/pipeline"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/scraper"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/store"
)

func openStore(ctx context.Context, cfg *config.Config) (types.Store, error) {
	s, err := store.NewWithConfig(ctx, store.StoreConfig{
		Driver:         cfg.Database.Driver,
		ConnString:     cfg.Database.URL,
		DocumentsTable: cfg.Database.DocumentsTable,
		QueryLogsTable: cfg.Database.QueryLogsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}
	return s, nil
}

// buildPipeline wires the store, generator and importer described by cfg.
// The caller owns the returned store.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, types.Store, error) {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SeedEnabled() {
		n, err := store.Seed(ctx, s)
		if err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("failed to seed documents: %w", err)
		}
		if n > 0 {
			slog.Info("seeded sample documents", "count", n)
		}
	}

	generator, err := llm.NewWithConfig(ctx, llm.ChatConfig{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to initialize answer generator: %w", err)
	}

	importer := scraper.NewWithConfig(scraper.ScraperConfig{
		RateLimit:       cfg.Importer.RateLimit,
		Timeout:         cfg.Importer.Timeout,
		MaxContentBytes: cfg.Importer.MaxContentBytes,
		Category:        cfg.Importer.Category,
		IgnorePatterns:  cfg.Importer.IgnorePatterns,
	})

	return pipeline.New(s, generator, pipeline.WithImporter(importer)), s, nil
}
