package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// fallbackExplanation is recorded when a scoring call fails and the default
// score is assigned.
const fallbackExplanation = "Automatically assigned due to API error"

const fallbackScore = 0.5

// ScoredCompany is a validated enrichment record ready for storage.
type ScoredCompany struct {
	Company     model.Company
	Explanation string
}

// scoringResult is the extraction contract for validation and scoring.
type scoringResult struct {
	Industry             string  `json:"industry"`
	Description          string  `json:"description"`
	EstimatedRevenue     string  `json:"estimated_revenue"`
	CompanySize          string  `json:"company_size"`
	RelevanceScore       float64 `json:"relevance_score"`
	RelevanceExplanation string  `json:"relevance_explanation"`
}

// ScoreCompanies validates each enrichment record against the qualification
// rubric and computes a relevance score. A per-record failure assigns the
// default score and explanation; no record is ever dropped. Output is 1:1
// with input.
func (p *Pipeline) ScoreCompanies(ctx context.Context, records []Enrichment) []ScoredCompany {
	log := zap.L().With(zap.String("stage", "scoring"))

	scored := make([]ScoredCompany, 0, len(records))
	for _, rec := range records {
		company := model.Company{
			Name:             rec.Name,
			Industry:         rec.Industry,
			Description:      rec.Description,
			EstimatedRevenue: rec.Revenue,
			CompanySize:      rec.Employees,
		}

		var result scoringResult
		if err := p.lookupPace.Wait(ctx); err != nil {
			log.Warn("pace interrupted", zap.Error(err))
			company.RelevanceScore = model.ScoreRef(fallbackScore)
			scored = append(scored, ScoredCompany{Company: company, Explanation: fallbackExplanation})
			continue
		}
		if err := p.completeJSON(ctx, "scoring", p.systemPrompt(), p.scoringPrompt(rec), &result); err != nil {
			log.Warn("scoring failed, assigning default",
				zap.String("company", rec.Name), zap.Error(err))
			company.RelevanceScore = model.ScoreRef(fallbackScore)
			scored = append(scored, ScoredCompany{Company: company, Explanation: fallbackExplanation})
			continue
		}

		// The capability may correct facts; its answer fills gaps but an
		// extracted fact from the reference source is kept when present.
		if company.Industry == "" {
			company.Industry = result.Industry
		}
		if company.Description == "" {
			company.Description = result.Description
		}
		if company.EstimatedRevenue == "" {
			company.EstimatedRevenue = result.EstimatedRevenue
		}
		if company.CompanySize == "" {
			company.CompanySize = result.CompanySize
		}
		company.RelevanceScore = model.ScoreRef(clampScore(result.RelevanceScore))
		scored = append(scored, ScoredCompany{Company: company, Explanation: result.RelevanceExplanation})
	}
	return scored
}

// StoreCompanies persists scored records one at a time with the company
// merge policy and ensures a link row to the seed entity exists. Returns the
// stored companies (existing or created).
func (p *Pipeline) StoreCompanies(ctx context.Context, scored []ScoredCompany, seed model.Seed) ([]model.Company, error) {
	stored := make([]model.Company, 0, len(scored))
	for _, sc := range scored {
		incoming := sc.Company
		incoming.Notes = seedNote(seed)
		if sc.Explanation != "" {
			incoming.Notes += "\n\nRelevance Analysis: " + sc.Explanation
		}

		existing, err := p.store.GetCompanyByName(ctx, incoming.Name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			created, err := p.store.CreateCompany(ctx, &incoming)
			if err != nil {
				return nil, err
			}
			existing = created
		} else if model.MergeCompany(existing, &incoming) {
			if err := p.store.UpdateCompany(ctx, existing); err != nil {
				return nil, err
			}
		}

		switch seed.Kind {
		case model.KindEvent:
			err = p.store.LinkCompanyEvent(ctx, existing.ID, seed.ID)
		case model.KindAssociation:
			err = p.store.LinkCompanyAssociation(ctx, existing.ID, seed.ID)
		}
		if err != nil {
			return nil, err
		}
		stored = append(stored, *existing)
	}
	return stored, nil
}

// RefreshRelevanceScores re-scores every stored company and overwrites the
// score unconditionally. A failed scoring call leaves that company's score
// untouched rather than regressing it to the default.
func (p *Pipeline) RefreshRelevanceScores(ctx context.Context) error {
	log := zap.L().With(zap.String("stage", "refresh"))

	companies, err := p.store.ListCompanies(ctx)
	if err != nil {
		return err
	}
	for i := range companies {
		c := &companies[i]
		rec := Enrichment{
			Name:        c.Name,
			Industry:    c.Industry,
			Description: c.Description,
			Revenue:     c.EstimatedRevenue,
			Employees:   c.CompanySize,
		}

		if err := p.lookupPace.Wait(ctx); err != nil {
			return err
		}
		var result scoringResult
		if err := p.completeJSON(ctx, "refresh", p.systemPrompt(), p.scoringPrompt(rec), &result); err != nil {
			log.Warn("refresh scoring failed, keeping existing score",
				zap.String("company", c.Name), zap.Error(err))
			continue
		}

		c.RelevanceScore = model.ScoreRef(clampScore(result.RelevanceScore))
		if result.RelevanceExplanation != "" {
			if c.Notes != "" {
				c.Notes += "\n\n"
			}
			c.Notes += "Relevance Analysis: " + result.RelevanceExplanation
		}
		if err := p.store.UpdateCompany(ctx, c); err != nil {
			return err
		}
	}
	log.Info("relevance refresh complete", zap.Int("companies", len(companies)))
	return nil
}

func seedNote(seed model.Seed) string {
	if seed.Kind == model.KindAssociation {
		return fmt.Sprintf("From association: %s", seed.Name)
	}
	return fmt.Sprintf("From event: %s", seed.Name)
}
