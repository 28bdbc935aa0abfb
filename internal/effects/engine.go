// Package effects applies normalized effects to a character preview
package effects

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Handler mutates the preview for one effect. A returned error records the
// effect as unhandled.
type Handler func(p *character.Preview, e *effect.Effect, ctx *Context) error

// Engine dispatches effects to the handler registered for their kind
type Engine struct {
	mu       sync.RWMutex
	handlers map[effect.Kind]Handler
	logger   *zap.Logger
}

type EngineConfig struct {
	Logger *zap.Logger
}

// NewEngine creates an engine with every built-in handler registered
func NewEngine(cfg *EngineConfig) *Engine {
	e := &Engine{handlers: make(map[effect.Kind]Handler)}
	if cfg != nil {
		e.logger = cfg.Logger
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	for kind, h := range builtinHandlers() {
		e.handlers[kind] = h
	}
	return e
}

// Register adds or replaces the handler of a kind
func (e *Engine) Register(kind effect.Kind, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[effect.KindOf(string(kind))] = h
}

// Handles reports whether a kind has a handler
func (e *Engine) Handles(kind effect.Kind) bool {
	_, ok := e.handler(kind)
	return ok
}

func (e *Engine) handler(kind effect.Kind) (Handler, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.handlers[kind]
	return h, ok
}

// Apply applies the effects in the given order. A failing entry is recorded
// in the preview's unhandled effects and the rest still apply.
func (e *Engine) Apply(p *character.Preview, list []*effect.Effect, ctx *Context) {
	for _, eff := range list {
		if eff == nil {
			continue
		}
		e.applyOne(p, eff, ctx)
	}
}

func (e *Engine) applyOne(p *character.Preview, eff *effect.Effect, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("effect handler panicked",
				zap.String("id", eff.ID),
				zap.String("type", eff.Type),
				zap.Any("panic", r),
			)
			e.unhandled(p, eff, fmt.Sprintf("panic: %v", r), outcomeError)
		}
	}()

	p.Ensure()

	if eff.Conditions != nil && !Evaluate(eff.Conditions, p, ctx) {
		effectsTotal.WithLabelValues(e.metricKind(eff.Kind()), outcomeSkipped).Inc()
		return
	}

	h, ok := e.handler(eff.Kind())
	if !ok {
		e.logger.Debug("no handler for effect",
			zap.String("id", eff.ID),
			zap.String("type", eff.Type),
		)
		e.unhandled(p, eff, "", outcomeUnhandled)
		return
	}

	if err := h(p, eff, ctx); err != nil {
		e.logger.Debug("effect rejected",
			zap.String("id", eff.ID),
			zap.String("type", eff.Type),
			zap.Error(err),
		)
		e.unhandled(p, eff, err.Error(), outcomeError)
		return
	}

	p.Applied = append(p.Applied, character.AppliedEffect{
		ID:      eff.ID,
		Source:  eff.Source,
		Type:    string(eff.Kind()),
		Payload: values.CloneMap(eff.Payload),
	})
	effectsTotal.WithLabelValues(string(eff.Kind()), outcomeApplied).Inc()
}

func (e *Engine) unhandled(p *character.Preview, eff *effect.Effect, msg, outcome string) {
	var record any = eff.ToMap()
	if msg == "" && eff.Raw != nil {
		record = values.CloneMap(eff.Raw)
	}
	p.Unhandled = append(p.Unhandled, character.UnhandledEffect{Error: msg, Effect: record})

	effectsTotal.WithLabelValues(e.metricKind(eff.Kind()), outcome).Inc()
}

// metricKind keeps the kind label bounded to registered kinds
func (e *Engine) metricKind(kind effect.Kind) string {
	if _, ok := e.handler(kind); !ok {
		return "unknown"
	}
	return string(kind)
}
