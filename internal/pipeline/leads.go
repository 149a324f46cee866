package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/serper"
)

// fallbackQueries is used when query generation fails. The run still
// produces seeds, just less varied ones.
var fallbackQueries = []string{
	"signage industry trade shows 2025",
	"large format printing expo 2025",
	"graphics and wide format printing association",
	"vehicle wrap industry conference 2025",
	"outdoor advertising trade association",
}

// leadItem is the extraction contract for discovered events and associations.
type leadItem struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Website        string  `json:"website"`
	Description    string  `json:"description"`
	RelevanceScore float64 `json:"relevance_score"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Location       string  `json:"location"`
}

// DiscoverLeads generates search phrases, runs them against the web search
// capability, and extracts trade events and associations from the results,
// upserting each into the store. At most maxItems unique names are taken
// across all queries. Every external failure is stage-local.
func (p *Pipeline) DiscoverLeads(ctx context.Context, queryCount, resultsPerQuery, maxItems int) error {
	log := zap.L().With(zap.String("stage", "leads"))

	queries := p.generateQueries(ctx, queryCount)
	log.Info("running lead searches", zap.Int("queries", len(queries)))

	seen := make(map[string]bool)
	for _, q := range queries {
		if len(seen) >= maxItems {
			break
		}

		sq, err := p.store.CreateSearchQuery(ctx, &model.SearchQuery{
			QueryText:   q,
			QuerySource: "AI",
		})
		if err != nil {
			return err
		}

		if err := p.searchPace.Wait(ctx); err != nil {
			return err
		}
		resp, err := p.search.Search(ctx, serper.SearchRequest{Query: q, Num: resultsPerQuery})
		if err != nil {
			log.Warn("search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		if err := p.store.SetSearchQueryResults(ctx, sq.ID, len(resp.Organic)); err != nil {
			return err
		}
		if len(resp.Organic) == 0 {
			continue
		}

		var extracted struct {
			Items []leadItem `json:"items"`
		}
		if err := p.completeJSON(ctx, "leads", p.systemPrompt(), p.leadExtractionPrompt(q, resp.Organic), &extracted); err != nil {
			log.Warn("lead extraction failed", zap.String("query", q), zap.Error(err))
			continue
		}

		for _, item := range extracted.Items {
			if len(seen) >= maxItems {
				break
			}
			name := strings.TrimSpace(item.Name)
			if name == "" || seen[name] {
				continue
			}
			if err := p.storeLead(ctx, item, name); err != nil {
				return err
			}
			seen[name] = true
		}
	}

	log.Info("lead discovery complete", zap.Int("unique_leads", len(seen)))
	return nil
}

// generateQueries asks the generation capability for search phrases,
// falling back to the static list on any failure.
func (p *Pipeline) generateQueries(ctx context.Context, n int) []string {
	var out struct {
		Queries []string `json:"queries"`
	}
	err := p.completeJSON(ctx, "leads", p.systemPrompt(), leadQueriesPrompt(n), &out)
	if err != nil || len(out.Queries) == 0 {
		zap.L().Warn("query generation failed, using fallback queries", zap.Error(err))
		if n < len(fallbackQueries) {
			return fallbackQueries[:n]
		}
		return fallbackQueries
	}
	if len(out.Queries) > n {
		out.Queries = out.Queries[:n]
	}
	return out.Queries
}

func (p *Pipeline) storeLead(ctx context.Context, item leadItem, name string) error {
	score := model.ScoreRef(clampScore(item.RelevanceScore))

	if strings.EqualFold(item.Type, "association") {
		incoming := &model.Association{
			Name:           name,
			Description:    item.Description,
			Website:        item.Website,
			RelevanceScore: score,
			Notes:          "via AI query",
		}
		existing, err := p.store.GetAssociationByName(ctx, name)
		if err != nil {
			return err
		}
		if existing == nil {
			_, err = p.store.CreateAssociation(ctx, incoming)
			return err
		}
		if model.MergeAssociation(existing, incoming) {
			return p.store.UpdateAssociation(ctx, existing)
		}
		return nil
	}

	incoming := &model.Event{
		Name:           name,
		EventType:      "trade show",
		Description:    item.Description,
		Website:        item.Website,
		StartDate:      parseDate(item.StartDate),
		EndDate:        parseDate(item.EndDate),
		Location:       item.Location,
		RelevanceScore: score,
		Notes:          "via AI query",
	}
	existing, err := p.store.GetEventByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = p.store.CreateEvent(ctx, incoming)
		return err
	}
	if model.MergeEvent(existing, incoming) {
		return p.store.UpdateEvent(ctx, existing)
	}
	return nil
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
