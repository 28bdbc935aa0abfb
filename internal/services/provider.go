package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/dice"
	"github.com/KirkDiggler/dnd-creation-engine/internal/effects"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/catalog"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/choices"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/creation"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/features"
)

// Provider holds all service instances
type Provider struct {
	FeatureService  features.Service
	ChoiceService   choices.Service
	CreationService creation.Service
	CatalogService  catalog.Service
	Roller          dice.Roller
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Documents documents.Client

	MaxTraversalSteps  int
	LabelLocale        string
	CatalogConcurrency int

	// Roller defaults to a random roller
	Roller dice.Roller
	Logger *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	featureService := features.NewService(&features.ServiceConfig{
		Documents: cfg.Documents,
		MaxSteps:  cfg.MaxTraversalSteps,
		Logger:    logger.Named("features"),
	})

	choiceService := choices.NewService(&choices.ServiceConfig{
		Documents: cfg.Documents,
		Locale:    cfg.LabelLocale,
		Logger:    logger.Named("choices"),
	})

	creationService := creation.NewService(&creation.ServiceConfig{
		Features: featureService,
		Choices:  choiceService,
		Engine:   effects.NewEngine(&effects.EngineConfig{Logger: logger.Named("effects")}),
		Logger:   logger.Named("creation"),
	})

	catalogService := catalog.NewService(&catalog.ServiceConfig{
		Documents:   cfg.Documents,
		Locale:      cfg.LabelLocale,
		Concurrency: cfg.CatalogConcurrency,
		Logger:      logger.Named("catalog"),
	})

	return &Provider{
		FeatureService:  featureService,
		ChoiceService:   choiceService,
		CreationService: creationService,
		CatalogService:  catalogService,
		Roller:          roller,
	}
}
