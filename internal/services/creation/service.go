package creation

//go:generate mockgen -destination=mock/mock_service.go -package=mockcreation -source=service.go

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
	"github.com/KirkDiggler/dnd-creation-engine/internal/effects"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/choices"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/features"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// PreviewResult is the outcome of one preview build. Callers check Ok; the
// build never returns an error.
type PreviewResult struct {
	Ok               bool                       `json:"ok"`
	PreviewCharacter *character.Preview         `json:"previewCharacter,omitempty"`
	AppliedFeatures  []string                   `json:"appliedFeatures"`
	PendingChoices   []*effect.ChoiceDescriptor `json:"pendingChoices"`
	Errors           []string                   `json:"errors"`
	Error            string                     `json:"error,omitempty"`
	Stack            string                     `json:"stack,omitempty"`
}

// Service builds character previews from a selection
type Service interface {
	// BuildPreview resolves the feature graph of the selection, applies every
	// effect that needs no further input and reports the open choices
	BuildPreview(ctx context.Context, sel *character.Selection, base *character.BaseCharacter) *PreviewResult

	// ResolveChoice records value under uiID and rebuilds the whole preview
	ResolveChoice(ctx context.Context, uiID string, value any, sel *character.Selection, base *character.BaseCharacter) *PreviewResult
}

type service struct {
	features features.Service
	choices  choices.Service
	engine   *effects.Engine
	logger   *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Features features.Service
	Choices  choices.Service
	Engine   *effects.Engine
	Logger   *zap.Logger
}

// NewService creates a creation orchestrator
func NewService(cfg *ServiceConfig) Service {
	if cfg.Features == nil {
		panic("features service is required")
	}
	if cfg.Choices == nil {
		panic("choices service is required")
	}

	svc := &service{
		features: cfg.Features,
		choices:  cfg.Choices,
		engine:   cfg.Engine,
		logger:   cfg.Logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.engine == nil {
		svc.engine = effects.NewEngine(&effects.EngineConfig{Logger: svc.logger})
	}
	return svc
}

func (s *service) ResolveChoice(ctx context.Context, uiID string, value any, sel *character.Selection, base *character.BaseCharacter) *PreviewResult {
	if uiID == "" {
		return failed(dnderr.InvalidArgument("ui_id is required"), "")
	}

	var current character.Selection
	if sel != nil {
		current = sel.Clone()
	} else {
		current.Normalize()
	}
	next := current.WithChoice(uiID, value)
	return s.BuildPreview(ctx, &next, base)
}

func (s *service) BuildPreview(ctx context.Context, sel *character.Selection, base *character.BaseCharacter) (result *PreviewResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("preview build panicked", zap.Any("panic", r))
			result = failed(fmt.Errorf("%v", r), string(debug.Stack()))
			previewsTotal.WithLabelValues(statusPanic).Inc()
		}
		previewDuration.Observe(time.Since(start).Seconds())
	}()

	result, err := s.build(ctx, sel, base)
	if err != nil {
		s.logger.Warn("preview build failed", zap.Error(err))
		previewsTotal.WithLabelValues(statusError).Inc()
		return failed(err, "")
	}

	previewsTotal.WithLabelValues(statusOK).Inc()
	pendingChoices.Observe(float64(len(result.PendingChoices)))
	return result
}

func (s *service) build(ctx context.Context, in *character.Selection, base *character.BaseCharacter) (*PreviewResult, error) {
	var sel character.Selection
	if in != nil {
		sel = in.Clone()
	} else {
		sel.Normalize()
	}
	if base == nil {
		base = &character.BaseCharacter{}
	}

	tree, err := s.features.ResolveSelection(ctx, &sel)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to resolve features")
	}

	plan := s.plan(ctx, tree, sel.ChosenOptions)

	applyCtx := effects.NewContext(&sel, base)
	level := applyCtx.Level("")

	preview := character.NewPreview(base, level)
	s.engine.Apply(preview, plan.immediate, applyCtx)
	preview.Derive(level)

	s.logger.Debug("preview built",
		zap.Strings("features", plan.applied),
		zap.Int("effects", len(plan.immediate)),
		zap.Int("pending", len(plan.pending)),
		zap.Int("unhandled", len(preview.Unhandled)),
	)

	return &PreviewResult{
		Ok:               true,
		PreviewCharacter: preview,
		AppliedFeatures:  plan.applied,
		PendingChoices:   plan.pending,
		Errors:           []string{},
	}, nil
}

type buildPlan struct {
	applied   []string
	immediate []*effect.Effect
	pending   []*effect.ChoiceDescriptor
}

// plan normalizes the effects of every traversed feature and splits them
// into effects to apply now and choices still waiting for the player. The
// immediate list comes back sorted by descending priority, ties in discovery
// order.
func (s *service) plan(ctx context.Context, tree []*feature.Feature, chosen map[string]any) *buildPlan {
	p := &buildPlan{
		applied:   []string{},
		immediate: []*effect.Effect{},
		pending:   []*effect.ChoiceDescriptor{},
	}
	seenPending := make(map[string]bool)

	for _, f := range tree {
		if f == nil {
			continue
		}
		if id := featureID(f); id != "" {
			p.applied = append(p.applied, id)
		}

		for _, e := range effect.NormalizeAll(f.Effects) {
			if e.Source == "" {
				e.Source = f.ID
			}

			if !effect.IsChoice(e) || e.ApplyImmediately() {
				p.immediate = append(p.immediate, e)
				continue
			}

			out := s.choices.Classify(ctx, e, chosen)
			switch {
			case out == nil:
				p.immediate = append(p.immediate, e)
			case out.Resolved:
				p.immediate = append(p.immediate, out.Effects...)
			case !seenPending[out.Descriptor.UIID]:
				seenPending[out.Descriptor.UIID] = true
				p.pending = append(p.pending, out.Descriptor)
			}
		}
	}

	sort.SliceStable(p.immediate, func(i, j int) bool {
		return p.immediate[i].Priority > p.immediate[j].Priority
	})
	return p
}

func featureID(f *feature.Feature) string {
	if f.ID != "" {
		return f.ID
	}
	id, _ := values.FirstString(f.Raw, "payload.id")
	return id
}

func failed(err error, stack string) *PreviewResult {
	msg := err.Error()
	return &PreviewResult{
		Ok:              false,
		AppliedFeatures: []string{},
		PendingChoices:  []*effect.ChoiceDescriptor{},
		Errors:          []string{msg},
		Error:           msg,
		Stack:           stack,
	}
}
