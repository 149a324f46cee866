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
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

func TestGenerateQueries_FallsBackOnFailure(t *testing.T) {
	p, deps := newTestPipeline(t)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("api down"))

	queries := p.generateQueries(context.Background(), 3)
	assert.Equal(t, fallbackQueries[:3], queries)

	queries = p.generateQueries(context.Background(), 20)
	assert.Equal(t, fallbackQueries, queries)
}

func TestGenerateQueries_TruncatesToRequested(t *testing.T) {
	p, deps := newTestPipeline(t)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"queries": ["a", "b", "c", "d"]}`), nil)

	queries := p.generateQueries(context.Background(), 2)
	assert.Equal(t, []string{"a", "b"}, queries)
}

func TestDiscoverLeads_StoresEventsAndAssociations(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	deps.ai.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return len(req.Messages) == 1 && strings.Contains(req.Messages[0].Content, "web search queries")
	})).Return(aiText(`{"queries": ["signage trade shows 2025"]}`), nil)

	deps.search.On("Search", mock.Anything, mock.Anything).
		Return(searchResponse("ISA Sign Expo 2025 | April 23-25", "International Sign Association"), nil)

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"items": [
			{"type": "event", "name": "ISA Sign Expo 2025", "location": "Las Vegas",
			 "start_date": "2025-04-23", "end_date": "2025-04-25", "relevance_score": 0.9},
			{"type": "association", "name": "International Sign Association", "relevance_score": 0.8},
			{"type": "event", "name": ""}
		]}`), nil)

	require.NoError(t, p.DiscoverLeads(ctx, 1, 10, 50))

	event, err := deps.store.GetEventByName(ctx, "ISA Sign Expo 2025")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Las Vegas", event.Location)
	assert.Equal(t, 0.9, model.Score(event.RelevanceScore))
	require.NotNil(t, event.StartDate)
	assert.Equal(t, "2025-04-23", event.StartDate.Format("2006-01-02"))

	assoc, err := deps.store.GetAssociationByName(ctx, "International Sign Association")
	require.NoError(t, err)
	require.NotNil(t, assoc)
	assert.Equal(t, 0.8, model.Score(assoc.RelevanceScore))
}

func TestDiscoverLeads_RerunMergesInsteadOfDuplicating(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	_, err := deps.store.CreateEvent(ctx, &model.Event{
		Name:           "ISA Sign Expo 2025",
		RelevanceScore: model.ScoreRef(0.9),
	})
	require.NoError(t, err)

	deps.ai.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return len(req.Messages) == 1 && strings.Contains(req.Messages[0].Content, "web search queries")
	})).Return(aiText(`{"queries": ["signage trade shows 2025"]}`), nil)
	deps.search.On("Search", mock.Anything, mock.Anything).
		Return(searchResponse("ISA Sign Expo 2025"), nil)
	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"items": [
			{"type": "event", "name": "ISA Sign Expo 2025", "location": "Las Vegas", "relevance_score": 0.5}
		]}`), nil)

	require.NoError(t, p.DiscoverLeads(ctx, 1, 10, 50))

	events, err := deps.store.TopEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	// Facts fill in, the higher stored score stays.
	assert.Equal(t, "Las Vegas", events[0].Location)
	assert.Equal(t, 0.9, model.Score(events[0].RelevanceScore))
}

func TestDiscoverLeads_SearchFailureContinues(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	deps.ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(aiText(`{"queries": ["q1", "q2"]}`), nil)
	deps.search.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))

	require.NoError(t, p.DiscoverLeads(ctx, 2, 10, 50))

	events, err := deps.store.TopEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("April 23, 2025"))
	got := parseDate("2025-04-23")
	require.NotNil(t, got)
	assert.Equal(t, 2025, got.Year())
}
