package features

//go:generate mockgen -destination=mock/mock_service.go -package=mockfeatures -source=service.go

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// DefaultMaxSteps bounds one graph walk. The budget is shared by the whole
// queue, so wide seed sets leave fewer steps for deep grant chains.
const DefaultMaxSteps = 8

// Service expands seed ids into the reachable feature documents
type Service interface {
	// ResolveTree walks grants breadth-first from the seeds and returns the
	// features in discovery order
	ResolveTree(ctx context.Context, seeds []string) ([]*feature.Feature, error)

	// ResolveSelection extracts the seeds of a selection and walks from them
	ResolveSelection(ctx context.Context, sel *character.Selection) ([]*feature.Feature, error)
}

type service struct {
	documents documents.Client
	maxSteps  int
	logger    *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Documents documents.Client
	MaxSteps  int
	Logger    *zap.Logger
}

// NewService creates a feature graph resolver
func NewService(cfg *ServiceConfig) Service {
	if cfg.Documents == nil {
		panic("documents client is required")
	}

	svc := &service{
		documents: cfg.Documents,
		maxSteps:  cfg.MaxSteps,
		logger:    cfg.Logger,
	}
	if svc.maxSteps <= 0 {
		svc.maxSteps = DefaultMaxSteps
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

func (s *service) ResolveSelection(ctx context.Context, sel *character.Selection) ([]*feature.Feature, error) {
	if sel == nil {
		return nil, dnderr.InvalidArgument("selection is required")
	}
	return s.ResolveTree(ctx, SeedIDs(sel))
}

func (s *service) ResolveTree(ctx context.Context, seeds []string) ([]*feature.Feature, error) {
	seeds = dedupe(seeds)
	if len(seeds) == 0 {
		return []*feature.Feature{}, nil
	}

	if tr, ok := s.documents.(documents.TreeResolver); ok {
		out, err := tr.ResolveFeatureTree(ctx, seeds)
		switch {
		case err != nil:
			s.logger.Warn("store tree resolution failed, walking locally", zap.Error(err))
		case out == nil:
			s.logger.Warn("store tree resolution returned nothing, walking locally")
		default:
			return out, nil
		}
	}

	return s.walk(ctx, seeds)
}

func (s *service) walk(ctx context.Context, seeds []string) ([]*feature.Feature, error) {
	queue := append([]string{}, seeds...)
	visited := make(map[string]bool)
	out := make([]*feature.Feature, 0, len(seeds))

	for steps := 0; len(queue) > 0 && steps < s.maxSteps; steps++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		f, err := s.documents.LoadFeature(ctx, id)
		if err != nil || f == nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if dnderr.IsNotFound(err) || f == nil {
				s.logger.Debug("feature not found", zap.String("id", id), zap.Error(err))
			} else {
				s.logger.Warn("failed to load feature", zap.String("id", id), zap.Error(err))
			}
			continue
		}

		out = append(out, f)
		for _, g := range f.Grants {
			if g != "" && !visited[g] {
				queue = append(queue, g)
			}
		}
	}

	if len(queue) > 0 {
		s.logger.Debug("feature walk stopped at step budget",
			zap.Int("max_steps", s.maxSteps),
			zap.Strings("unvisited", queue),
		)
	}
	return out, nil
}

// SeedIDs extracts candidate seed ids from a selection: class, race,
// background, manual features, explicit seeds, and every chosen option value.
// The legacy id/name is used only when nothing else is present.
func SeedIDs(sel *character.Selection) []string {
	if sel == nil {
		return nil
	}

	var seeds []string
	add := func(v any) {
		for _, s := range values.Strings(v) {
			seeds = append(seeds, s)
		}
	}

	add(sel.Class)
	add(sel.Race)
	add(sel.Background)

	for _, item := range sel.ManualFeatures {
		if obj, ok := values.AsMap(item); ok {
			if id, ok := values.FirstString(obj, "id", "feature_id"); ok {
				seeds = append(seeds, id)
			}
			continue
		}
		add(item)
	}

	add(sel.SeedIDs)

	keys := make([]string, 0, len(sel.ChosenOptions))
	for k := range sel.ChosenOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(sel.ChosenOptions[k])
	}

	seeds = dedupe(seeds)
	if len(seeds) == 0 && sel.LegacyID != "" {
		seeds = []string{sel.LegacyID}
	}
	return seeds
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
