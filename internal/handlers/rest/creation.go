package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-creation-engine/internal/dice"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/catalog"
)

type previewRequest struct {
	Selection     *character.Selection     `json:"selection"`
	BaseCharacter *character.BaseCharacter `json:"baseCharacter"`
}

type resolveChoiceRequest struct {
	UIID          string                   `json:"ui_id"`
	Value         any                      `json:"value"`
	Selection     *character.Selection     `json:"selection"`
	BaseCharacter *character.BaseCharacter `json:"baseCharacter"`
}

type rollRequest struct {
	Method string `json:"method"`
}

// bindOptionalJSON decodes the body when there is one
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid request body")
	}
	return nil
}

// Preview builds a preview for a selection. Build failures are reported in
// the body with ok=false and a 200 status.
func (h *Handler) Preview(c *gin.Context) {
	var req previewRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	res := h.ServiceProvider.CreationService.BuildPreview(c.Request.Context(), req.Selection, req.BaseCharacter)
	c.JSON(http.StatusOK, res)
}

// ResolveChoice records one answer and rebuilds the preview
func (h *Handler) ResolveChoice(c *gin.Context) {
	var req resolveChoiceRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.UIID == "" {
		h.respondError(c, dnderr.InvalidArgument("ui_id required"))
		return
	}

	res := h.ServiceProvider.CreationService.ResolveChoice(c.Request.Context(), req.UIID, req.Value, req.Selection, req.BaseCharacter)
	c.JSON(http.StatusOK, res)
}

// RollAbilities generates six ability scores. The method comes from the body
// or the "method" query parameter and defaults to 4d6 drop lowest.
func (h *Handler) RollAbilities(c *gin.Context) {
	var req rollRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.Method == "" {
		req.Method = c.Query("method")
	}

	method, err := dice.ParseMethod(req.Method)
	if err != nil {
		h.respondError(c, err)
		return
	}

	scores, err := dice.GenerateAbilityScores(h.ServiceProvider.Roller, method)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "method": scores.Method, "scores": scores.Scores, "rolls": scores.Rolls})
}

var surfaceKinds = []catalog.Kind{catalog.KindClasses, catalog.KindRaces, catalog.KindBackgrounds}

// Surface lists everything the first creation step offers
func (h *Handler) Surface(c *gin.Context) {
	lists := make([][]*catalog.Entry, len(surfaceKinds))

	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, kind := range surfaceKinds {
		g.Go(func() error {
			entries, err := h.ServiceProvider.CatalogService.List(ctx, kind)
			if err != nil {
				return err
			}
			lists[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.respondError(c, err)
		return
	}

	surface := make(map[string][]*catalog.Entry, len(surfaceKinds))
	for i, kind := range surfaceKinds {
		surface[string(kind)] = lists[i]
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "surface": surface})
}
