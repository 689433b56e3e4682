// Package main is the entry point for the offline ranking tool. It
// reads a candidate item set and a user profile from JSON files, scores
// them, and prints the ranking to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/toplocs/newsrelevance/internal/engine"
	"github.com/toplocs/newsrelevance/internal/logging"
	"github.com/toplocs/newsrelevance/internal/model"
	"github.com/toplocs/newsrelevance/internal/scoring"
)

func main() {
	itemsPath := flag.String("items", "", "path to JSON file with candidate content items")
	profilePath := flag.String("profile", "", "path to JSON file with the user profile")
	calibrationPath := flag.String("calibration", "", "optional path to a JSON weight calibration file")
	top := flag.Int("top", 0, "print only the top N results (0 = all)")
	verbose := flag.Bool("verbose", false, "print the full score breakdown per item")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("newsrank - offline relevance ranking tool")
		fmt.Println()
		fmt.Println("Usage: newsrank -items items.json -profile profile.json [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	env := os.Getenv("NEWSRANK_ENV")
	if env == "" {
		env = "development"
	}
	logger := logging.NewLogger(env)
	slog.SetDefault(logger)

	if *itemsPath == "" || *profilePath == "" {
		logger.Error("both -items and -profile are required")
		os.Exit(1)
	}

	var items []model.ContentItem
	if err := readJSON(*itemsPath, &items); err != nil {
		logger.Error("failed to read items", "path", *itemsPath, "error", err)
		os.Exit(1)
	}

	var profile model.Profile
	if err := readJSON(*profilePath, &profile); err != nil {
		logger.Error("failed to read profile", "path", *profilePath, "error", err)
		os.Exit(1)
	}

	weights, err := scoring.LoadCalibration(*calibrationPath)
	if err != nil {
		// Defaults still apply; the ranking stays usable.
		logger.Warn("calibration not applied", "error", err)
	}

	e := engine.New(engine.Config{Weights: weights}, logger)
	results := e.Score(context.Background(), items, profile)

	limit := len(results)
	if *top > 0 && *top < limit {
		limit = *top
	}

	for i, scored := range results[:limit] {
		fmt.Printf("%3d  %.4f  %-20s  %s\n", i+1, scored.Breakdown.Total, scored.Item.ID, scored.Item.Title)
		fmt.Printf("     %s\n", scored.Reason)
		if *verbose {
			breakdown, err := json.Marshal(scored.Breakdown)
			if err != nil {
				logger.Error("failed to marshal breakdown", "item", scored.Item.ID, "error", err)
				os.Exit(1)
			}
			fmt.Printf("     %s\n", breakdown)
		}
	}

	logger.Info("ranking complete",
		"items", len(items),
		"printed", limit,
		"interests", len(profile.Interests),
	)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
