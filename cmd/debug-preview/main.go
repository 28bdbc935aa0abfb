package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/app"
	"github.com/KirkDiggler/dnd-creation-engine/internal/config"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services"
)

func main() {
	var (
		class      = flag.String("class", "", "Class id")
		race       = flag.String("race", "", "Race id")
		background = flag.String("background", "", "Background id")
		level      = flag.Int("level", 1, "Character level")
		choices    = flag.String("choices", "", "Answered choices as a JSON object keyed by ui_id")
		seeds      = flag.String("tree", "", "Comma separated seeds; print the resolved feature tree instead of a preview")
		timeout    = flag.Duration("timeout", time.Minute, "Overall timeout")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Server.LogLevel, "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	docs, err := app.NewDocuments(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer docs.Close()

	provider := services.NewProvider(&services.ProviderConfig{
		Documents:         docs.Store,
		MaxTraversalSteps: cfg.Engine.MaxTraversalSteps,
		LabelLocale:       cfg.Engine.LabelLocale,
		Logger:            logger,
	})

	if *seeds != "" {
		tree, err := provider.FeatureService.ResolveTree(ctx, strings.Split(*seeds, ","))
		if err != nil {
			logger.Fatal("Failed to resolve feature tree", zap.Error(err))
		}
		for _, f := range tree {
			fmt.Printf("%-30s effects=%d grants=%v\n", f.ID, len(f.Effects), f.Grants)
		}
		return
	}

	sel := &character.Selection{
		Class:      *class,
		Race:       *race,
		Background: *background,
		Niveau:     *level,
	}
	if *choices != "" {
		if err := json.Unmarshal([]byte(*choices), &sel.ChosenOptions); err != nil {
			log.Fatalf("Invalid -choices JSON: %v", err)
		}
	}

	res := provider.CreationService.BuildPreview(ctx, sel, nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("Failed to encode preview: %v", err)
	}
	if !res.Ok {
		os.Exit(1)
	}
}
