package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/dnd-creation-engine/internal/services/catalog"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Catalog lists one catalog as a bare JSON array
func (h *Handler) Catalog(c *gin.Context) {
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.ServiceProvider.CatalogService.List(c.Request.Context(), kind)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type featureSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	EffectsCount int      `json:"effectsCount"`
	Grants       []string `json:"grants,omitempty"`
}

// FeatureTree resolves the graph for comma separated seeds and summarizes it
func (h *Handler) FeatureTree(c *gin.Context) {
	var seeds []string
	for _, s := range strings.Split(c.Query("seeds"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			seeds = append(seeds, s)
		}
	}

	tree, err := h.ServiceProvider.FeatureService.ResolveTree(c.Request.Context(), seeds)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary := make([]featureSummary, 0, len(tree))
	for _, f := range tree {
		name, _ := values.FirstString(f.Raw, "nom", "name")
		summary = append(summary, featureSummary{
			ID:           f.ID,
			Name:         name,
			EffectsCount: len(f.Effects),
			Grants:       f.Grants,
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "resolvedCount": len(summary), "features": summary})
}
