package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/rubric"
	"github.com/sells-group/leadgen-cli/internal/store"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/serper"
	"github.com/sells-group/leadgen-cli/pkg/wikipedia"
)

// --- Search mock ---

type mockSearchClient struct {
	mock.Mock
}

func (m *mockSearchClient) Search(ctx context.Context, req serper.SearchRequest) (*serper.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serper.SearchResponse), args.Error(1)
}

// --- Wikipedia mock ---

type mockWikiClient struct {
	mock.Mock
}

func (m *mockWikiClient) FindArticle(ctx context.Context, term string) (*wikipedia.Article, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wikipedia.Article), args.Error(1)
}

// --- Page fetch mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchText(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// --- Anthropic mock ---

type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// aiText wraps a raw completion body in a response.
func aiText(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Model:   "claude-sonnet-4-5-20250929",
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

// testDeps bundles the pipeline's mocked capabilities and its real SQLite
// store.
type testDeps struct {
	store   store.Store
	search  *mockSearchClient
	wiki    *mockWikiClient
	fetcher *mockFetcher
	ai      *mockAIClient
}

// newTestPipeline builds a Pipeline with zero pacing, a temp SQLite store,
// and mocked capabilities.
func newTestPipeline(t *testing.T) (*Pipeline, *testDeps) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	rub, err := rubric.Load()
	require.NoError(t, err)

	deps := &testDeps{
		store:   st,
		search:  &mockSearchClient{},
		wiki:    &mockWikiClient{},
		fetcher: &mockFetcher{},
		ai:      &mockAIClient{},
	}

	cfg := config.PipelineConfig{
		SeedResultLimit: 50,
		MaxSeeds:        10,
		MaxCompanies:    25,
		ResultsPerQuery: 10,
	}
	aiCfg := config.AnthropicConfig{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 4096,
	}

	p := New(st, deps.search, deps.wiki, deps.fetcher, deps.ai, rub, cfg, aiCfg)
	return p, deps
}
