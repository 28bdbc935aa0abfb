package rest_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/dnd-creation-engine/internal/dice/mock"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/handlers/rest"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services"
	mockcreation "github.com/KirkDiggler/dnd-creation-engine/internal/services/creation/mock"
	"github.com/KirkDiggler/dnd-creation-engine/internal/testutils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedIDs struct{}

func (fixedIDs) New() string { return "req-1" }

type HandlerTestSuite struct {
	suite.Suite
	roller *mockdice.ManualMockRoller
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	s.roller = mockdice.NewManualMockRoller()
	provider := services.NewProvider(&services.ProviderConfig{
		Documents: testutils.NewContentStore(s.T()),
		Roller:    s.roller,
	})
	s.router = rest.NewRouter(&rest.RouterConfig{
		Handler:    rest.NewHandler(&rest.HandlerConfig{ServiceProvider: provider}),
		RequestIDs: fixedIDs{},
	})
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestPreview() {
	w := s.do(http.MethodPost, "/api/creation/preview", `{"selection": {"race": "elf", "background": "sage"}}`)
	s.Require().Equal(http.StatusOK, w.Code)

	body := w.Body.Bytes()
	s.True(gjson.GetBytes(body, "ok").Bool())
	s.Equal(`["elf","sage","darkvision"]`, gjson.GetBytes(body, "appliedFeatures").Raw)
	s.Equal("req-1", w.Header().Get(rest.RequestIDHeader))
}

func (s *HandlerTestSuite) TestPreview_BareStringSelection() {
	w := s.do(http.MethodPost, "/api/creation/preview", `{"selection": "ranger"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	pending := gjson.GetBytes(w.Body.Bytes(), "pendingChoices.#.ui_id")
	s.Equal(`["ranger_skills","ranger_style"]`, pending.Raw)
}

func (s *HandlerTestSuite) TestPreview_EmptyBody() {
	w := s.do(http.MethodPost, "/api/creation/preview", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(gjson.GetBytes(w.Body.Bytes(), "ok").Bool())
}

func (s *HandlerTestSuite) TestPreview_MalformedBody() {
	w := s.do(http.MethodPost, "/api/creation/preview", `{"selection": `)
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(gjson.GetBytes(w.Body.Bytes(), "ok").Bool())
}

func (s *HandlerTestSuite) TestResolveChoice() {
	w := s.do(http.MethodPost, "/api/creation/resolve-choice", `{
		"ui_id": "ranger_skills",
		"value": ["survie"],
		"selection": {"class": "ranger"}
	}`)
	s.Require().Equal(http.StatusOK, w.Code)

	body := w.Body.Bytes()
	s.True(gjson.GetBytes(body, "ok").Bool())
	s.Contains(gjson.GetBytes(body, "previewCharacter.proficiencies").Raw, `"survie"`)
	s.Equal(`["ranger_style"]`, gjson.GetBytes(body, "pendingChoices.#.ui_id").Raw)
}

func (s *HandlerTestSuite) TestResolveChoice_RequiresUIID() {
	w := s.do(http.MethodPost, "/api/creation/resolve-choice", `{"value": "survie", "selection": {"class": "ranger"}}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"ok": false, "error": "ui_id required"}`, w.Body.String())
}

func (s *HandlerTestSuite) TestRollAbilities() {
	s.roller.SetRolls([]int{
		6, 6, 6, 1,
		5, 5, 5, 5,
		1, 2, 3, 4,
		4, 4, 4, 4,
		3, 3, 3, 3,
		2, 2, 2, 2,
	})

	w := s.do(http.MethodPost, "/api/creation/roll-abilities", `{"method": "4d6"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(`[18,15,9,12,9,6]`, gjson.GetBytes(w.Body.Bytes(), "scores").Raw)
}

func (s *HandlerTestSuite) TestRollAbilities_StandardFromQuery() {
	w := s.do(http.MethodPost, "/api/creation/roll-abilities?method=standard", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(`[15,14,13,12,10,8]`, gjson.GetBytes(w.Body.Bytes(), "scores").Raw)
}

func (s *HandlerTestSuite) TestRollAbilities_UnknownMethod() {
	w := s.do(http.MethodPost, "/api/creation/roll-abilities", `{"method": "heroic"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCatalog() {
	w := s.do(http.MethodGet, "/api/catalog/spells", "")
	s.Require().Equal(http.StatusOK, w.Code)

	ids := gjson.GetBytes(w.Body.Bytes(), "#.id")
	s.Contains(ids.Raw, `"light"`)
	s.Contains(ids.Raw, `"fireball"`)

	w = s.do(http.MethodGet, "/api/catalog/monsters", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestSurface() {
	w := s.do(http.MethodGet, "/api/creation/surface", "")
	s.Require().Equal(http.StatusOK, w.Code)

	body := w.Body.Bytes()
	s.Contains(gjson.GetBytes(body, "surface.classes.#.id").Raw, `"wizard"`)
	s.Contains(gjson.GetBytes(body, "surface.races.#.id").Raw, `"elf"`)
	s.Contains(gjson.GetBytes(body, "surface.backgrounds.#.id").Raw, `"sage"`)
}

func (s *HandlerTestSuite) TestFeatureTree() {
	w := s.do(http.MethodGet, "/api/debug/feature-tree?seeds=elf,%20wizard", "")
	s.Require().Equal(http.StatusOK, w.Code)

	body := w.Body.Bytes()
	ids := gjson.GetBytes(body, "features.#.id").Raw
	s.Contains(ids, `"darkvision"`)
	s.Contains(ids, `"arcane_recovery"`)
	s.Equal(int64(4), gjson.GetBytes(body, "resolvedCount").Int())
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status": "ok"}`, w.Body.String())
}

func TestRouter_RecoversHandlerPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	creation := mockcreation.NewMockService(ctrl)
	creation.EXPECT().BuildPreview(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *character.Selection, *character.BaseCharacter) any {
			panic("boom")
		})

	router := rest.NewRouter(&rest.RouterConfig{
		Handler: rest.NewHandler(&rest.HandlerConfig{
			ServiceProvider: &services.Provider{CreationService: creation},
		}),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/creation/preview", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok": false, "error": "internal error"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := rest.NewRouter(&rest.RouterConfig{
		Handler: rest.NewHandler(&rest.HandlerConfig{ServiceProvider: &services.Provider{}}),
		Metrics: true,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gin_requests_total")
}

func TestNewHandler_RequiresProvider(t *testing.T) {
	assert.PanicsWithValue(t, "service provider is required", func() {
		rest.NewHandler(&rest.HandlerConfig{})
	})
}
