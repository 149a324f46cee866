package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/serper"
)

func (p *Pipeline) systemPrompt() string {
	return "You are a B2B lead-generation analyst.\n\n" + p.rubric.ProductContext()
}

func leadQueriesPrompt(n int) string {
	return fmt.Sprintf(`Generate %d web search queries to find trade shows, industry events and trade associations where manufacturers of signage, large-format graphics and protective films exhibit or participate. Focus on events happening in the current or next year.

Respond with JSON only:
{"queries": ["query 1", "query 2", ...]}`, n)
}

func (p *Pipeline) leadExtractionPrompt(query string, results []serper.OrganicResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search query: %q\n\nSearch results:\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "- title: %s\n  url: %s\n  snippet: %s\n", r.Title, r.Link, r.Snippet)
	}
	b.WriteString(`
Extract the trade shows, industry events and trade associations mentioned above. For each, respond with its official name, not the title of the page. Score relevance per these bands:
`)
	b.WriteString(p.rubric.EntityBands())
	b.WriteString(`
Respond with JSON only:
{"items": [{"type": "event" or "association", "name": "...", "website": "...", "description": "...", "relevance_score": 0.0, "start_date": "YYYY-MM-DD" or "", "end_date": "YYYY-MM-DD" or "", "location": "..."}]}`)
	return b.String()
}

func (p *Pipeline) companyFilterPrompt(seed string, titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following titles came from web searches about %q:\n", seed)
	for _, t := range titles {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString(`
Return only the entries that are names of real companies. Exclude events, conferences, trade associations, publications, generic phrases and page titles. Clean each kept name to the plain company name.

Respond with JSON only:
{"companies": ["name 1", "name 2", ...]}`)
	return b.String()
}

func (p *Pipeline) scoringPrompt(rec Enrichment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", rec.Name)
	fmt.Fprintf(&b, "Industry: %s\n", orUnknown(rec.Industry))
	fmt.Fprintf(&b, "Description: %s\n", orUnknown(rec.Description))
	fmt.Fprintf(&b, "Estimated revenue: %s\n", orUnknown(rec.Revenue))
	fmt.Fprintf(&b, "Employee count: %s\n", orUnknown(rec.Employees))
	b.WriteString("\nQualification criteria:\n")
	b.WriteString(p.rubric.Criteria())
	b.WriteString("\nScoring bands:\n")
	b.WriteString(p.rubric.EntityBands())
	b.WriteString(`
Using your general knowledge of this company, correct or fill in any missing facts above, then score its fit as a prospective buyer of protective films for signage and graphics.

Respond with JSON only:
{"industry": "...", "description": "...", "estimated_revenue": "...", "company_size": "...", "relevance_score": 0.0, "relevance_explanation": "..."}`)
	return b.String()
}

func (p *Pipeline) executivesPrompt(company *model.Company, results []serper.OrganicResult, pageText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", company.Name)
	if company.Description != "" {
		fmt.Fprintf(&b, "About: %s\n", company.Description)
	}
	b.WriteString("\nSearch results:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- title: %s\n  url: %s\n  snippet: %s\n", r.Title, r.Link, r.Snippet)
	}
	if pageText != "" {
		fmt.Fprintf(&b, "\nPage content:\n%s\n", pageText)
	}
	b.WriteString("\nScoring bands for decision makers:\n")
	b.WriteString(p.rubric.ExecutiveBands())
	b.WriteString(`
Extract the executives and senior leaders of this company mentioned above. Only include real named people; skip entries without a clear name and title.

Respond with JSON only:
{"executives": [{"name": "...", "title": "...", "email": "", "linkedin": "", "relevance_score": 0.0}]}`)
	return b.String()
}

func (p *Pipeline) outreachPrompt(person model.PersonWithCompany) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipient: %s, %s at %s\n", person.Name, person.Title, person.CompanyName)
	if person.Division != "" {
		fmt.Fprintf(&b, "Division: %s\n", person.Division)
	}
	if person.CompanyDescription != "" {
		fmt.Fprintf(&b, "Company background: %s\n", person.CompanyDescription)
	}
	b.WriteString("\nValue propositions:\n")
	b.WriteString(p.rubric.ValueProps())
	b.WriteString(`
Write a LinkedIn connection request note to this person from a DuPont Tedlar sales representative. Requirements:
- Under 300 characters.
- Mention DuPont Tedlar protective PVF films.
- Personalized to the recipient's role and company.
- One concrete benefit and a clear call to action.
- No greeting line and no signature.`)
	if strings.EqualFold(person.Division, divisionSignage) {
		b.WriteString("\n- Speak to their signage and graphics production specifically.")
	}
	b.WriteString("\n\nRespond with the message text only.")
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
