package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/serper"
)

const (
	divisionSignage = "Signage/Graphics"
	divisionGeneral = "General"

	// Per-tier limits on result-page fetching.
	executiveSearchNum = 5
	maxPagesFetched    = 2
	fetchedPageCap     = 10000
	promptPageCap      = 5000
)

// executiveRecord is the extraction contract for decision-maker discovery.
type executiveRecord struct {
	Name           string  `json:"name"`
	Title          string  `json:"title"`
	Email          string  `json:"email"`
	LinkedIn       string  `json:"linkedin"`
	RelevanceScore float64 `json:"relevance_score"`
}

// DiscoverDecisionMakers runs executive discovery for the top-K companies by
// relevance score, pacing between companies.
func (p *Pipeline) DiscoverDecisionMakers(ctx context.Context, topK int) error {
	log := zap.L().With(zap.String("stage", "executives"))

	companies, err := p.store.TopCompanies(ctx, topK)
	if err != nil {
		return err
	}
	for i := range companies {
		c := &companies[i]
		if err := p.searchPace.Wait(ctx); err != nil {
			return err
		}

		people, err := p.FindExecutives(ctx, c)
		if err != nil {
			log.Warn("executive discovery failed",
				zap.String("company", c.Name), zap.Error(err))
			continue
		}
		for j := range people {
			if err := p.storePerson(ctx, &people[j]); err != nil {
				return err
			}
		}
		log.Info("executives stored",
			zap.String("company", c.Name), zap.Int("count", len(people)))
	}
	return nil
}

// FindExecutives runs the two-tier search for one company. Tier 1 targets
// the signage/graphics division; when it yields at least one executive, tier
// 2 is never attempted.
func (p *Pipeline) FindExecutives(ctx context.Context, company *model.Company) ([]model.Person, error) {
	people, err := p.findTier(ctx, company,
		company.Name+" signage graphics division leadership executives", divisionSignage)
	if err != nil {
		return nil, err
	}
	if len(people) > 0 {
		return people, nil
	}
	return p.findTier(ctx, company,
		company.Name+" executive leadership team", divisionGeneral)
}

// findTier runs one search tier: search, best-effort page fetches, then
// structured extraction. Records missing a name or title are dropped.
func (p *Pipeline) findTier(ctx context.Context, company *model.Company, query, division string) ([]model.Person, error) {
	log := zap.L().With(zap.String("stage", "executives"), zap.String("company", company.Name))

	resp, err := p.search.Search(ctx, serper.SearchRequest{Query: query, Num: executiveSearchNum})
	if err != nil {
		log.Warn("tier search failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}
	if len(resp.Organic) == 0 {
		return nil, nil
	}

	pageText := p.fetchResultPages(ctx, resp.Organic)

	var extracted struct {
		Executives []executiveRecord `json:"executives"`
	}
	if err := p.completeJSON(ctx, "executives", p.systemPrompt(),
		p.executivesPrompt(company, resp.Organic, pageText), &extracted); err != nil {
		log.Warn("executive extraction failed", zap.Error(err))
		return nil, nil
	}

	people := make([]model.Person, 0, len(extracted.Executives))
	for _, e := range extracted.Executives {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Title) == "" {
			continue
		}
		people = append(people, model.Person{
			CompanyID:      company.ID,
			Name:           strings.TrimSpace(e.Name),
			Title:          strings.TrimSpace(e.Title),
			Division:       division,
			Email:          e.Email,
			LinkedIn:       e.LinkedIn,
			RelevanceScore: model.ScoreRef(clampScore(e.RelevanceScore)),
		})
	}
	return people, nil
}

// fetchResultPages pulls the text of up to two non-LinkedIn result pages.
// Every fetch failure is ignored; page text is supplementary context only.
func (p *Pipeline) fetchResultPages(ctx context.Context, results []serper.OrganicResult) string {
	var parts []string
	for _, r := range results {
		if len(parts) >= maxPagesFetched {
			break
		}
		if strings.Contains(r.Link, "linkedin.com") {
			continue
		}
		text, err := p.fetcher.FetchText(ctx, r.Link)
		if err != nil {
			continue
		}
		if len(text) > fetchedPageCap {
			text = text[:fetchedPageCap]
		}
		parts = append(parts, text)
	}
	combined := strings.Join(parts, "\n\n")
	if len(combined) > promptPageCap {
		combined = combined[:promptPageCap]
	}
	return combined
}

// storePerson upserts one executive keyed by (name, company) with the
// latest-wins person merge policy.
func (p *Pipeline) storePerson(ctx context.Context, person *model.Person) error {
	existing, err := p.store.GetPersonByNameAndCompany(ctx, person.Name, person.CompanyID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = p.store.CreatePerson(ctx, person)
		return err
	}
	if model.MergePerson(existing, person) {
		return p.store.UpdatePerson(ctx, existing)
	}
	return nil
}
