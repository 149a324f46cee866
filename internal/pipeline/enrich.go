package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/pkg/wikipedia"
)

// Enrichment carries the reference facts found for one candidate name. All
// fields except Name may be empty; an empty record is the documented outcome
// for obscure companies.
type Enrichment struct {
	Name        string
	Industry    string
	Description string
	Revenue     string
	Employees   string
}

// Infobox field patterns. These match the wikitext conventions of company
// infoboxes, not the full template grammar.
var (
	revenueRe      = regexp.MustCompile(`\| *revenue *=[ $]*([0-9,\.]+)`)
	numEmployeesRe = regexp.MustCompile(`\| *num_employees *= *([0-9,\.]+)`)
	employeesRe    = regexp.MustCompile(`\| *employees *= *([0-9,\.]+)`)
	industryRe     = regexp.MustCompile(`\| *industry *= *(.+)`)

	wikiLinkRe     = regexp.MustCompile(`\[\[(?:[^|\]]+\|)?([^\]]+)\]\]`)
	wikiTemplateRe = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	wikiRefRe      = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>|<ref[^>]*/>`)
	paragraphRe    = regexp.MustCompile(`\n\n+`)
)

// EnrichCompanies looks up each name in the reference source and extracts
// revenue, employee count, industry and a description from the article's
// infobox wikitext. The output is 1:1 with the input in the same order; any
// lookup failure yields a record with only the name set.
func (p *Pipeline) EnrichCompanies(ctx context.Context, names []string) []Enrichment {
	log := zap.L().With(zap.String("stage", "enrichment"))

	records := make([]Enrichment, 0, len(names))
	for _, name := range names {
		rec := Enrichment{Name: name}

		if err := p.lookupPace.Wait(ctx); err != nil {
			log.Warn("pace interrupted", zap.Error(err))
			records = append(records, rec)
			continue
		}
		article, err := p.wiki.FindArticle(ctx, name)
		if err != nil {
			if !errors.Is(err, wikipedia.ErrNotFound) {
				log.Warn("reference lookup failed", zap.String("company", name), zap.Error(err))
			}
			records = append(records, rec)
			continue
		}

		rec.Industry, rec.Revenue, rec.Employees, rec.Description = parseInfobox(article.Wikitext)
		records = append(records, rec)
	}
	return records
}

// parseInfobox extracts facts from the lead-section wikitext of an article.
// Each field is best-effort; an unmatched field stays empty.
func parseInfobox(wikitext string) (industry, revenue, employees, description string) {
	if m := revenueRe.FindStringSubmatch(wikitext); m != nil {
		revenue = strings.ReplaceAll(m[1], ",", "")
	}
	if m := numEmployeesRe.FindStringSubmatch(wikitext); m != nil {
		employees = strings.ReplaceAll(m[1], ",", "")
	} else if m := employeesRe.FindStringSubmatch(wikitext); m != nil {
		employees = strings.ReplaceAll(m[1], ",", "")
	}
	if m := industryRe.FindStringSubmatch(wikitext); m != nil {
		industry = cleanWikitext(m[1])
	}

	// The description is the second blank-line-separated block: the first
	// is the infobox itself, the second the article's opening paragraph.
	blocks := paragraphRe.Split(wikitext, -1)
	if len(blocks) > 1 {
		description = cleanWikitext(blocks[1])
	}
	return industry, revenue, employees, description
}

// cleanWikitext resolves [[link|text]] markers to their display text and
// strips templates, references and bold/italic quotes.
func cleanWikitext(s string) string {
	s = wikiRefRe.ReplaceAllString(s, "")
	s = wikiTemplateRe.ReplaceAllString(s, "")
	s = wikiLinkRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "'''", "")
	s = strings.ReplaceAll(s, "''", "")
	return strings.TrimSpace(s)
}
