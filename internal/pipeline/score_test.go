package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestScoreCompanies_ReferenceFactsWin(t *testing.T) {
	p, deps := newTestPipeline(t)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{
			"industry": "Corrected Industry",
			"description": "Materials science company.",
			"estimated_revenue": "999",
			"company_size": "10",
			"relevance_score": 0.85,
			"relevance_explanation": "Strong fit for protective films."
		}`), nil)

	records := []Enrichment{{
		Name:     "3M",
		Industry: "Conglomerate",
		Revenue:  "32681000000",
	}}
	scored := p.ScoreCompanies(context.Background(), records)
	require.Len(t, scored, 1)

	c := scored[0].Company
	// Extracted facts are kept; the answer only fills gaps.
	assert.Equal(t, "Conglomerate", c.Industry)
	assert.Equal(t, "32681000000", c.EstimatedRevenue)
	assert.Equal(t, "Materials science company.", c.Description)
	assert.Equal(t, "10", c.CompanySize)
	assert.Equal(t, 0.85, model.Score(c.RelevanceScore))
	assert.Equal(t, "Strong fit for protective films.", scored[0].Explanation)
}

func TestScoreCompanies_FailureAssignsDefault(t *testing.T) {
	p, deps := newTestPipeline(t)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("overloaded"))

	scored := p.ScoreCompanies(context.Background(), []Enrichment{{Name: "Orafol"}})
	require.Len(t, scored, 1)
	assert.Equal(t, 0.5, model.Score(scored[0].Company.RelevanceScore))
	assert.Equal(t, "Automatically assigned due to API error", scored[0].Explanation)
}

func TestScoreCompanies_ClampsScore(t *testing.T) {
	p, deps := newTestPipeline(t)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"relevance_score": 1.7, "relevance_explanation": "x"}`), nil)

	scored := p.ScoreCompanies(context.Background(), []Enrichment{{Name: "3M"}})
	require.Len(t, scored, 1)
	assert.Equal(t, 1.0, model.Score(scored[0].Company.RelevanceScore))
}

func TestStoreCompanies_CreatesLinksAndMerges(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	event, err := deps.store.CreateEvent(ctx, &model.Event{Name: "ISA Sign Expo 2025"})
	require.NoError(t, err)
	seed := model.EventSeed(event)

	scored := []ScoredCompany{{
		Company: model.Company{
			Name:           "3M",
			Industry:       "Conglomerate",
			RelevanceScore: model.ScoreRef(0.6),
		},
		Explanation: "Good fit.",
	}}

	stored, err := p.StoreCompanies(ctx, scored, seed)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got, err := deps.store.GetCompanyByName(ctx, "3M")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Conglomerate", got.Industry)
	assert.Equal(t, 0.6, model.Score(got.RelevanceScore))
	assert.Contains(t, got.Notes, "From event: ISA Sign Expo 2025")
	assert.Contains(t, got.Notes, "Relevance Analysis: Good fit.")

	// Re-store with a lower score: score is kept, notes append.
	scored[0].Company.RelevanceScore = model.ScoreRef(0.3)
	scored[0].Explanation = "Second pass."
	_, err = p.StoreCompanies(ctx, scored, seed)
	require.NoError(t, err)

	got, err = deps.store.GetCompanyByName(ctx, "3M")
	require.NoError(t, err)
	assert.Equal(t, 0.6, model.Score(got.RelevanceScore))
	assert.Contains(t, got.Notes, "Second pass.")
	assert.Equal(t, 1, strings.Count(got.Notes, "From event: ISA Sign Expo 2025"))
}

func TestRefreshRelevanceScores_OverwritesUnconditionally(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	_, err := deps.store.CreateCompany(ctx, &model.Company{
		Name:           "3M",
		RelevanceScore: model.ScoreRef(0.9),
	})
	require.NoError(t, err)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"relevance_score": 0.4, "relevance_explanation": "Weaker on reassessment."}`), nil)

	require.NoError(t, p.RefreshRelevanceScores(ctx))

	got, err := deps.store.GetCompanyByName(ctx, "3M")
	require.NoError(t, err)
	assert.Equal(t, 0.4, model.Score(got.RelevanceScore))
	assert.Contains(t, got.Notes, "Relevance Analysis: Weaker on reassessment.")
}

func TestRefreshRelevanceScores_FailureKeepsScore(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	_, err := deps.store.CreateCompany(ctx, &model.Company{
		Name:           "3M",
		RelevanceScore: model.ScoreRef(0.9),
	})
	require.NoError(t, err)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("overloaded"))

	require.NoError(t, p.RefreshRelevanceScores(ctx))

	got, err := deps.store.GetCompanyByName(ctx, "3M")
	require.NoError(t, err)
	assert.Equal(t, 0.9, model.Score(got.RelevanceScore))
}
