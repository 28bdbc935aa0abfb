package features_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	mockdocuments "github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents/mock"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services/features"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	ctrl   *gomock.Controller
	client *mockdocuments.MockClient
	svc    features.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.client = mockdocuments.NewMockClient(s.ctrl)
	s.svc = features.NewService(&features.ServiceConfig{Documents: s.client})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func feat(id string, grants ...string) *feature.Feature {
	if grants == nil {
		grants = []string{}
	}
	return &feature.Feature{ID: id, Effects: []any{}, Grants: grants}
}

func ids(list []*feature.Feature) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}

func (s *ServiceTestSuite) TestResolveTree_Cycle() {
	s.client.EXPECT().LoadFeature(gomock.Any(), "a").Return(feat("a", "b"), nil).Times(1)
	s.client.EXPECT().LoadFeature(gomock.Any(), "b").Return(feat("b", "a"), nil).Times(1)

	out, err := s.svc.ResolveTree(s.ctx, []string{"a"})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, ids(out))
}

func (s *ServiceTestSuite) TestResolveTree_DiscoveryOrder() {
	s.client.EXPECT().LoadFeature(gomock.Any(), "root").Return(feat("root", "x", "y"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "x").Return(feat("x", "z"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "y").Return(feat("y"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "z").Return(feat("z"), nil)

	out, err := s.svc.ResolveTree(s.ctx, []string{"root"})
	s.Require().NoError(err)
	s.Equal([]string{"root", "x", "y", "z"}, ids(out))
}

func (s *ServiceTestSuite) TestResolveTree_MissingDocumentsAreSkipped() {
	s.client.EXPECT().LoadFeature(gomock.Any(), "ghost").Return(nil, dnderr.NotFound("no document"))
	s.client.EXPECT().LoadFeature(gomock.Any(), "broken").Return(nil, errors.New("boom"))
	s.client.EXPECT().LoadFeature(gomock.Any(), "elf").Return(feat("elf"), nil)

	out, err := s.svc.ResolveTree(s.ctx, []string{"ghost", "broken", "elf"})
	s.Require().NoError(err)
	s.Equal([]string{"elf"}, ids(out))
}

func (s *ServiceTestSuite) TestResolveTree_GlobalStepBudget() {
	svc := features.NewService(&features.ServiceConfig{Documents: s.client, MaxSteps: 3})

	// Three seeds use the whole budget, so the grant of the first is never reached
	s.client.EXPECT().LoadFeature(gomock.Any(), "a").Return(feat("a", "deep"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "b").Return(feat("b"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "c").Return(feat("c"), nil)

	out, err := svc.ResolveTree(s.ctx, []string{"a", "b", "c"})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, ids(out))
}

func (s *ServiceTestSuite) TestResolveTree_VisitedIDsConsumeSteps() {
	svc := features.NewService(&features.ServiceConfig{Documents: s.client, MaxSteps: 3})

	// a and b both grant c: the queue holds a, b, c, c; the duplicate c is
	// never dequeued but the budget of 3 still stops before anything else
	s.client.EXPECT().LoadFeature(gomock.Any(), "a").Return(feat("a", "c"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "b").Return(feat("b", "c"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "c").Return(feat("c", "d"), nil)

	out, err := svc.ResolveTree(s.ctx, []string{"a", "b"})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, ids(out))
}

func (s *ServiceTestSuite) TestResolveTree_NoSeeds() {
	out, err := s.svc.ResolveTree(s.ctx, []string{"", "  "})
	s.Require().NoError(err)
	s.NotNil(out)
	s.Empty(out)
}

func (s *ServiceTestSuite) TestResolveTree_CanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.svc.ResolveTree(ctx, []string{"a"})
	s.ErrorIs(err, context.Canceled)
}

func (s *ServiceTestSuite) TestResolveSelection() {
	s.client.EXPECT().LoadFeature(gomock.Any(), "wizard").Return(feat("wizard"), nil)
	s.client.EXPECT().LoadFeature(gomock.Any(), "elf").Return(feat("elf"), nil)

	out, err := s.svc.ResolveSelection(s.ctx, &character.Selection{Class: "wizard", Race: "elf"})
	s.Require().NoError(err)
	s.Equal([]string{"wizard", "elf"}, ids(out))

	_, err = s.svc.ResolveSelection(s.ctx, nil)
	s.True(dnderr.IsInvalidArgument(err))
}

// treeClient is a documents client that also resolves whole trees itself
type treeClient struct {
	*mockdocuments.MockClient
	tree func(ctx context.Context, seeds []string) ([]*feature.Feature, error)
}

func (c *treeClient) ResolveFeatureTree(ctx context.Context, seeds []string) ([]*feature.Feature, error) {
	return c.tree(ctx, seeds)
}

var _ documents.TreeResolver = (*treeClient)(nil)

func TestResolveTree_PrefersStoreTreeResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := &treeClient{
		MockClient: mockdocuments.NewMockClient(ctrl),
		tree: func(_ context.Context, seeds []string) ([]*feature.Feature, error) {
			return []*feature.Feature{feat("from_store")}, nil
		},
	}
	svc := features.NewService(&features.ServiceConfig{Documents: client})

	out, err := svc.ResolveTree(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"from_store"}, ids(out))
}

func TestResolveTree_FallsBackWhenTreeResolverFails(t *testing.T) {
	for name, tree := range map[string]func(context.Context, []string) ([]*feature.Feature, error){
		"error": func(context.Context, []string) ([]*feature.Feature, error) {
			return nil, errors.New("unsupported")
		},
		"nil": func(context.Context, []string) ([]*feature.Feature, error) {
			return nil, nil
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mock := mockdocuments.NewMockClient(ctrl)
			mock.EXPECT().LoadFeature(gomock.Any(), "a").Return(feat("a"), nil)

			svc := features.NewService(&features.ServiceConfig{
				Documents: &treeClient{MockClient: mock, tree: tree},
			})
			out, err := svc.ResolveTree(context.Background(), []string{"a"})
			require.NoError(t, err)
			assert.Equal(t, []string{"a"}, ids(out))
		})
	}
}

func TestResolveTree_AgainstStore(t *testing.T) {
	src := documents.NewMemorySource()
	require.NoError(t, src.PutJSON("races/mock_race.json", map[string]any{
		"id":    "mock_race",
		"links": map[string]any{"grants": []any{"darkvision"}},
	}))
	require.NoError(t, src.PutJSON("features/darkvision.json", map[string]any{
		"effects": []any{map[string]any{"type": "sense_grant"}},
	}))
	store, err := documents.NewStore(&documents.StoreConfig{Source: src})
	require.NoError(t, err)

	svc := features.NewService(&features.ServiceConfig{Documents: store})
	out, err := svc.ResolveTree(context.Background(), []string{"mock_race"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mock_race", "darkvision"}, ids(out))
}

func TestNewService_RequiresDocuments(t *testing.T) {
	assert.Panics(t, func() {
		features.NewService(&features.ServiceConfig{})
	})
}

func TestSeedIDs(t *testing.T) {
	testCases := []struct {
		name     string
		sel      *character.Selection
		expected []string
	}{
		{
			name:     "nil selection",
			sel:      nil,
			expected: nil,
		},
		{
			name:     "class race background",
			sel:      &character.Selection{Class: "wizard", Race: "elf", Background: "sage"},
			expected: []string{"wizard", "elf", "sage"},
		},
		{
			name: "manual features accept strings and objects",
			sel: &character.Selection{
				ManualFeatures: []any{
					"lucky",
					map[string]any{"id": "alert"},
					map[string]any{"feature_id": "tough"},
					map[string]any{"name": "ignored"},
					"",
				},
			},
			expected: []string{"lucky", "alert", "tough"},
		},
		{
			name: "chosen options are flattened one level in key order",
			sel: &character.Selection{
				Class: "fighter",
				ChosenOptions: map[string]any{
					"z_style": "defense",
					"a_skill": []any{"athletisme", "survie"},
				},
				SeedIDs: []string{"extra"},
			},
			expected: []string{"fighter", "extra", "athletisme", "survie", "defense"},
		},
		{
			name: "duplicates removed",
			sel: &character.Selection{
				Class:         "wizard",
				SeedIDs:       []string{"wizard", "sage"},
				ChosenOptions: map[string]any{"x": "sage"},
			},
			expected: []string{"wizard", "sage"},
		},
		{
			name:     "legacy id only when nothing else",
			sel:      &character.Selection{LegacyID: "old_build"},
			expected: []string{"old_build"},
		},
		{
			name:     "legacy id ignored when a class is present",
			sel:      &character.Selection{Class: "bard", LegacyID: "old_build"},
			expected: []string{"bard"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, features.SeedIDs(tc.sel))
		})
	}
}
