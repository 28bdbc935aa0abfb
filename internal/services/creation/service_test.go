package creation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/choices"
	mockchoices "github.com/KirkDiggler/dnd-creation-engine/internal/services/choices/mock"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/creation"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/features"
	mockfeatures "github.com/KirkDiggler/dnd-creation-engine/internal/services/features/mock"
	"github.com/KirkDiggler/dnd-creation-engine/internal/testutils"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx  context.Context
	svc  creation.Service
	base *character.BaseCharacter
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	store := testutils.NewContentStore(s.T())

	s.svc = creation.NewService(&creation.ServiceConfig{
		Features: features.NewService(&features.ServiceConfig{Documents: store}),
		Choices:  choices.NewService(&choices.ServiceConfig{Documents: store}),
	})
	s.base = &character.BaseCharacter{BaseStats: character.Stats{
		"strength":     10,
		"dexterity":    10,
		"constitution": 12,
		"intelligence": 16,
		"wisdom":       13,
		"charisma":     8,
	}}
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func pendingIDs(res *creation.PreviewResult) []string {
	out := make([]string, 0, len(res.PendingChoices))
	for _, d := range res.PendingChoices {
		out = append(out, d.UIID)
	}
	return out
}

func (s *ServiceTestSuite) TestBuildPreview_MockRace() {
	res := s.svc.BuildPreview(s.ctx,
		&character.Selection{Race: "mock_race"},
		&character.BaseCharacter{BaseStats: character.Stats{"dexterity": 10}},
	)
	s.Require().True(res.Ok, res.Error)
	s.Equal(12, res.PreviewCharacter.FinalStats["dexterity"])
	s.Equal(10, res.PreviewCharacter.BaseStats["dexterity"])
	s.Equal([]string{"mock_race"}, res.AppliedFeatures)
	s.Empty(res.PendingChoices)
	s.NotNil(res.Errors)
	s.Empty(res.Errors)
}

func (s *ServiceTestSuite) TestBuildPreview_RaceGrantsFeatures() {
	res := s.svc.BuildPreview(s.ctx, &character.Selection{Race: "elf", Background: "sage"}, s.base)
	s.Require().True(res.Ok, res.Error)

	p := res.PreviewCharacter
	s.Equal([]string{"elf", "sage", "darkvision"}, res.AppliedFeatures)
	s.Equal(12, p.FinalStats["dexterity"])
	s.Equal([]string{"perception", "arcanes", "histoire"}, p.Proficiencies)
	s.Equal([]string{"ink", "quill"}, p.Equipment)
	s.Require().Len(p.Senses, 1)
	s.Equal("darkvision", p.Senses[0].SenseType)
	s.Equal("darkvision", p.Senses[0].Source)
	s.Require().NotNil(p.Derived)
	s.Equal(1, p.Derived.Modifiers["dexterity"])
	s.Equal(2, p.Derived.ProficiencyBonus)
}

func (s *ServiceTestSuite) TestChoiceGating_SkillChoice() {
	sel := &character.Selection{Class: "ranger"}

	res := s.svc.BuildPreview(s.ctx, sel, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Equal([]string{"ranger_skills", "ranger_style"}, pendingIDs(res))
	s.NotContains(res.PreviewCharacter.Proficiencies, "survie")

	skills := res.PendingChoices[0]
	s.Equal(1, skills.Choose)
	s.Equal("skill", skills.Category)
	s.Equal([]string{"survie", "discretion"}, skills.From)
	s.Equal("Survie", skills.Label("survie"))

	res = s.svc.ResolveChoice(s.ctx, "ranger_skills", []any{"survie"}, sel, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Contains(res.PreviewCharacter.Proficiencies, "survie")
	s.Equal([]string{"ranger_style"}, pendingIDs(res))

	// The caller's selection is not modified
	s.Empty(sel.ChosenOptions)
}

func (s *ServiceTestSuite) TestChoice_AnswerSeedsFeatureGraph() {
	sel := &character.Selection{
		Class:         "ranger",
		ChosenOptions: map[string]any{"ranger_skills": "survie", "ranger_style": "archery"},
	}

	res := s.svc.BuildPreview(s.ctx, sel, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Empty(res.PendingChoices)
	s.Contains(res.AppliedFeatures, "archery")
	s.Require().Len(res.PreviewCharacter.Messages, 1)
	s.Equal("Archerie", res.PreviewCharacter.Messages[0].Title)
}

func (s *ServiceTestSuite) TestConditionGating_ByLevel() {
	res := s.svc.BuildPreview(s.ctx, &character.Selection{Class: "ranger", Niveau: 1}, s.base)
	s.Require().True(res.Ok, res.Error)
	s.NotContains(res.PreviewCharacter.Resources, "favored_foe")

	res = s.svc.BuildPreview(s.ctx, &character.Selection{Class: "ranger", ClassLevels: map[string]int{"ranger": 2}}, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Equal(character.Resource{Max: 2, Current: 2, Recharge: "long_rest"}, res.PreviewCharacter.Resources["favored_foe"])
}

func (s *ServiceTestSuite) TestAutoFromPendingChoice() {
	res := s.svc.BuildPreview(s.ctx, &character.Selection{Class: "wizard"}, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Equal([]string{"wizard", "arcane_recovery"}, res.AppliedFeatures)
	s.Require().Equal([]string{"wizard_cantrips"}, pendingIDs(res))

	cantrips := res.PendingChoices[0]
	s.Equal(2, cantrips.Choose)
	s.Equal([]string{"light", "mage_hand"}, cantrips.From)
	s.Equal([]effect.OptionLabel{
		{ID: "light", Label: "Lumière"},
		{ID: "mage_hand", Label: "Main de mage"},
	}, cantrips.FromLabels)

	p := res.PreviewCharacter
	s.Equal("intelligence", p.Spellcasting.Ability)
	s.Equal(map[string]int{"1": 2}, p.Spellcasting.Slots)
	s.Equal(13, *p.Spellcasting.Meta.SpellSaveDC)
	s.Contains(p.Abilities, "arcane_recovery")

	res = s.svc.ResolveChoice(s.ctx, "wizard_cantrips", []any{"light", "mage_hand"}, &character.Selection{Class: "wizard"}, s.base)
	s.Require().True(res.Ok, res.Error)
	s.Empty(res.PendingChoices)
	s.Equal([]string{"light", "mage_hand"}, res.PreviewCharacter.Spellcasting.Known)
}

func (s *ServiceTestSuite) TestResolveChoice_RequiresUIID() {
	res := s.svc.ResolveChoice(s.ctx, "", "survie", &character.Selection{Class: "ranger"}, s.base)
	s.False(res.Ok)
	s.Equal("ui_id is required", res.Error)
	s.Equal([]string{"ui_id is required"}, res.Errors)
}

func (s *ServiceTestSuite) TestBuildPreview_EmptySelection() {
	res := s.svc.BuildPreview(s.ctx, nil, nil)
	s.Require().True(res.Ok, res.Error)
	s.Empty(res.AppliedFeatures)
	s.Equal(1, res.PreviewCharacter.Niveau)
	s.Empty(res.PreviewCharacter.FinalStats)
}

func TestBuildPreview_PriorityOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	feats := mockfeatures.NewMockService(ctrl)
	feats.EXPECT().ResolveSelection(gomock.Any(), gomock.Any()).Return([]*feature.Feature{
		{ID: "first", Effects: []any{
			map[string]any{"type": "stat_modifier", "payload": map[string]any{"stat": "dexterity", "delta": float64(2)}},
		}},
		{ID: "second", Effects: []any{
			map[string]any{"type": "ability_score_set", "priority": float64(5), "payload": map[string]any{"stat": "dexterity", "value": float64(15)}},
			map[string]any{"type": "equipment_grant", "priority": float64(5), "payload": map[string]any{"item": "b"}},
			map[string]any{"type": "equipment_grant", "payload": map[string]any{"item": "c"}},
		}},
	}, nil)

	svc := creation.NewService(&creation.ServiceConfig{
		Features: feats,
		Choices:  mockchoices.NewMockService(ctrl),
	})
	res := svc.BuildPreview(context.Background(), &character.Selection{Race: "x"}, nil)
	require.True(t, res.Ok, res.Error)

	// The set runs before the delta despite being discovered later
	assert.Equal(t, 17, res.PreviewCharacter.FinalStats["dexterity"])
	assert.Equal(t, []string{"b", "c"}, res.PreviewCharacter.Equipment)
	assert.Equal(t, "second", res.PreviewCharacter.Applied[0].Source)
	assert.Equal(t, []string{"first", "second"}, res.AppliedFeatures)
}

func TestBuildPreview_ResolutionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	feats := mockfeatures.NewMockService(ctrl)
	feats.EXPECT().ResolveSelection(gomock.Any(), gomock.Any()).Return(nil, errors.New("network down"))

	svc := creation.NewService(&creation.ServiceConfig{
		Features: feats,
		Choices:  mockchoices.NewMockService(ctrl),
	})
	res := svc.BuildPreview(context.Background(), &character.Selection{Class: "wizard"}, nil)
	assert.False(t, res.Ok)
	assert.Contains(t, res.Error, "network down")
	assert.Equal(t, []string{res.Error}, res.Errors)
	assert.Nil(t, res.PreviewCharacter)
}

func TestBuildPreview_RecoversPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	feats := mockfeatures.NewMockService(ctrl)
	feats.EXPECT().ResolveSelection(gomock.Any(), gomock.Any()).Return([]*feature.Feature{
		{ID: "a", Effects: []any{map[string]any{"type": "choice", "payload": map[string]any{"from": []any{"x"}}}}},
	}, nil)
	picker := mockchoices.NewMockService(ctrl)
	picker.EXPECT().Classify(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *effect.Effect, map[string]any) *choices.Outcome {
			panic("index out of range")
		},
	)

	svc := creation.NewService(&creation.ServiceConfig{Features: feats, Choices: picker})
	res := svc.BuildPreview(context.Background(), &character.Selection{Class: "a"}, nil)
	assert.False(t, res.Ok)
	assert.Equal(t, "index out of range", res.Error)
	assert.NotEmpty(t, res.Stack)
}

func TestNewService_RequiresCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	assert.Panics(t, func() {
		creation.NewService(&creation.ServiceConfig{Choices: mockchoices.NewMockService(ctrl)})
	})
	assert.Panics(t, func() {
		creation.NewService(&creation.ServiceConfig{Features: mockfeatures.NewMockService(ctrl)})
	})
}

func TestBuildPreview_IdenticalAnonymousChoicesStaySeparate(t *testing.T) {
	language := func() map[string]any {
		return map[string]any{
			"type":     "choice",
			"category": "language",
			"choose":   float64(1),
			"from":     []any{"elfique", "nain", "orc"},
		}
	}
	src := testutils.NewContentSource(t)
	require.NoError(t, src.PutJSON("races/half_elf.json", map[string]any{
		"id": "half_elf", "effects": []any{language()},
	}))
	require.NoError(t, src.PutJSON("backgrounds/interpreter.json", map[string]any{
		"id": "interpreter", "effects": []any{language()},
	}))
	store, err := documents.NewStore(&documents.StoreConfig{Source: src})
	require.NoError(t, err)
	svc := creation.NewService(&creation.ServiceConfig{
		Features: features.NewService(&features.ServiceConfig{Documents: store}),
		Choices:  choices.NewService(&choices.ServiceConfig{Documents: store}),
	})
	ctx := context.Background()
	sel := &character.Selection{Race: "half_elf", Background: "interpreter"}

	res := svc.BuildPreview(ctx, sel, nil)
	require.True(t, res.Ok, res.Error)
	require.Len(t, res.PendingChoices, 2)
	first, second := res.PendingChoices[0].UIID, res.PendingChoices[1].UIID
	assert.NotEqual(t, first, second)

	again := svc.BuildPreview(ctx, sel, nil)
	assert.Equal(t, pendingIDs(res), pendingIDs(again))

	res = svc.ResolveChoice(ctx, first, "nain", sel, nil)
	require.True(t, res.Ok, res.Error)
	assert.Equal(t, []string{second}, pendingIDs(res))

	sel.ChosenOptions = map[string]any{first: "nain", second: "orc"}
	res = svc.BuildPreview(ctx, sel, nil)
	require.True(t, res.Ok, res.Error)
	assert.Empty(t, res.PendingChoices)
	assert.Contains(t, res.PreviewCharacter.Proficiencies, "nain")
	assert.Contains(t, res.PreviewCharacter.Proficiencies, "orc")
}

func TestBuildPreview_RecordsRequestedFeatureID(t *testing.T) {
	src := testutils.NewContentSource(t)
	require.NoError(t, src.PutJSON("classes/guerrier.json", map[string]any{
		"id": "fighter",
		"effects": []any{
			map[string]any{"type": "proficiency_grant", "payload": map[string]any{"proficiencies": []any{"heavy_armor"}}},
		},
	}))
	store, err := documents.NewStore(&documents.StoreConfig{Source: src})
	require.NoError(t, err)
	svc := creation.NewService(&creation.ServiceConfig{
		Features: features.NewService(&features.ServiceConfig{Documents: store}),
		Choices:  choices.NewService(&choices.ServiceConfig{Documents: store}),
	})

	res := svc.BuildPreview(context.Background(), &character.Selection{Class: "guerrier"}, nil)
	require.True(t, res.Ok, res.Error)
	assert.Equal(t, []string{"guerrier"}, res.AppliedFeatures)
	assert.Contains(t, res.PreviewCharacter.Proficiencies, "heavy_armor")
}
