// Package main is the entry point for the keyword resolver. It maps a
// list of free-form keywords to canonical topic identifiers via the
// shared topic registry and prints the match result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/toplocs/newsrelevance/internal/config"
	"github.com/toplocs/newsrelevance/internal/logging"
	"github.com/toplocs/newsrelevance/internal/topics"
	"github.com/toplocs/newsrelevance/internal/tracing"
)

func main() {
	keywords := flag.String("keywords", "", "comma-separated keywords, or a path to a file with one keyword per line")
	configPath := flag.String("config", "", "optional path to a YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("topicsync - keyword to canonical topic resolver")
		fmt.Println()
		fmt.Println("Usage: topicsync -keywords music,tech,futbol [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			slog.Error("configuration error", "error", err)
		}
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	if *keywords == "" {
		logger.Error("-keywords is required")
		os.Exit(1)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		ServiceName:  "topicsync",
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		ExporterType: cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplingRate: cfg.TracingSamplingRate,
		InsecureMode: cfg.Env != "production",
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis URL", "error", err)
		os.Exit(1)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	registry := topics.NewRedisRegistry(client, cfg.RegistryKey, cfg.FetchTimeout)
	matcher := topics.NewMatcher(registry, topics.Config{
		RefreshInterval: cfg.RefreshInterval,
	}, logger)

	list, err := parseKeywords(*keywords)
	if err != nil {
		logger.Error("failed to read keywords", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := registry.Ping(ctx); err != nil {
		// The matcher degrades to its built-in topic set; resolution
		// still succeeds, so this is not fatal.
		logger.Warn("topic registry unreachable, using fallback set", "error", err)
	}

	result := matcher.MatchBatch(ctx, list)

	logger.Info("keyword resolution complete",
		"keywords", len(list),
		"matched", len(result.Identifiers),
		"unmatched", len(result.Unmatched),
		"confidence", result.Confidence,
	)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
}

// parseKeywords accepts either an inline comma-separated list or a path
// to a file with one keyword per line (commas also split within lines).
func parseKeywords(arg string) ([]string, error) {
	raw := arg
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		raw = strings.ReplaceAll(string(data), "\n", ",")
	}

	var list []string
	for _, keyword := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list, nil
}
