package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/pkg/serper"
)

// denylistTerms approximate the classification filter when the extraction
// capability is unavailable: a title containing any of these is assumed not
// to be a company name.
var denylistTerms = []string{
	// event words
	"conference", "expo", "exhibition", "show", "summit", "symposium",
	"convention", "fair", "forum", "congress",
	// association words
	"association", "society", "institute", "committee", "council",
	"federation", "organization", "alliance", "coalition", "guild",
	// year tokens
	"2023", "2024", "2025", "2026",
}

// queryVariants are the search phrasings tried per seed, in order.
func queryVariants(seed string) []string {
	return []string{
		seed + " exhibitors",
		seed + " attendees",
		seed + " sponsors",
		seed + " companies attending",
	}
}

// DiscoverCompanies expands one seed (event or association name) into a
// deduplicated list of candidate company names, first-seen order. Variants
// are searched until limit unique titles are collected; remaining variants
// are skipped. A failed search for one variant is logged and skipped. The
// collected titles then pass through the classification filter.
func (p *Pipeline) DiscoverCompanies(ctx context.Context, seed string, limit int) ([]string, error) {
	log := zap.L().With(zap.String("stage", "discovery"), zap.String("seed", seed))

	var titles []string
	seen := make(map[string]bool)
	for _, q := range queryVariants(seed) {
		if len(titles) >= limit {
			break
		}
		if err := p.searchPace.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := p.search.Search(ctx, serper.SearchRequest{Query: q, Num: limit})
		if err != nil {
			log.Warn("variant search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		for _, r := range resp.Organic {
			if len(titles) >= limit {
				break
			}
			title := strings.TrimSpace(r.Title)
			if title == "" || seen[title] {
				continue
			}
			seen[title] = true
			titles = append(titles, title)
		}
	}

	if len(titles) == 0 {
		return nil, nil
	}
	return p.filterCompanyNames(ctx, seed, titles), nil
}

// filterCompanyNames reduces raw result titles to company names via the
// extraction capability, falling back to the static denylist on failure.
// Output preserves first-seen order.
func (p *Pipeline) filterCompanyNames(ctx context.Context, seed string, titles []string) []string {
	var out struct {
		Companies []string `json:"companies"`
	}
	err := p.completeJSON(ctx, "discovery", p.systemPrompt(), p.companyFilterPrompt(seed, titles), &out)
	if err != nil {
		zap.L().Warn("classification filter failed, using denylist",
			zap.String("seed", seed), zap.Error(err))
		return denylistFilter(titles)
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(out.Companies))
	for _, name := range out.Companies {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// denylistFilter drops titles containing any denylist term (case
// insensitive).
func denylistFilter(titles []string) []string {
	var names []string
	for _, t := range titles {
		lower := strings.ToLower(t)
		blocked := false
		for _, term := range denylistTerms {
			if strings.Contains(lower, term) {
				blocked = true
				break
			}
		}
		if !blocked {
			names = append(names, t)
		}
	}
	return names
}
