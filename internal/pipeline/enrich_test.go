package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/pkg/wikipedia"
)

const sampleWikitext = `{{Infobox company
| name = 3M Company
| industry = [[Conglomerate (company)|Conglomerate]]
| revenue = $32,681,000,000
| num_employees = 92,000
}}

'''3M''' is an American [[multinational corporation|multinational]] conglomerate<ref>cite</ref> operating in industry and consumer goods.`

func TestEnrichCompanies_OneToOneWithFailures(t *testing.T) {
	p, deps := newTestPipeline(t)
	ctx := context.Background()

	deps.wiki.On("FindArticle", mock.Anything, "3M").
		Return(&wikipedia.Article{Title: "3M", Wikitext: sampleWikitext}, nil)
	deps.wiki.On("FindArticle", mock.Anything, "Obscure Signs LLC").
		Return(nil, wikipedia.ErrNotFound)
	deps.wiki.On("FindArticle", mock.Anything, "Orafol").
		Return(nil, errors.New("timeout"))

	records := p.EnrichCompanies(ctx, []string{"3M", "Obscure Signs LLC", "Orafol"})
	require.Len(t, records, 3)

	assert.Equal(t, "3M", records[0].Name)
	assert.Equal(t, "Conglomerate", records[0].Industry)
	assert.Equal(t, "32681000000", records[0].Revenue)
	assert.Equal(t, "92000", records[0].Employees)
	assert.Contains(t, records[0].Description, "multinational conglomerate")

	// Failed lookups keep their slot with only the name set.
	assert.Equal(t, Enrichment{Name: "Obscure Signs LLC"}, records[1])
	assert.Equal(t, Enrichment{Name: "Orafol"}, records[2])
}

func TestParseInfobox(t *testing.T) {
	industry, revenue, employees, description := parseInfobox(sampleWikitext)
	assert.Equal(t, "Conglomerate", industry)
	assert.Equal(t, "32681000000", revenue)
	assert.Equal(t, "92000", employees)
	assert.Equal(t, "3M is an American multinational conglomerate operating in industry and consumer goods.", description)
}

func TestParseInfobox_EmployeesFallbackField(t *testing.T) {
	_, _, employees, _ := parseInfobox("| employees = 1,234\n")
	assert.Equal(t, "1234", employees)
}

func TestParseInfobox_Empty(t *testing.T) {
	industry, revenue, employees, description := parseInfobox("no infobox here")
	assert.Empty(t, industry)
	assert.Empty(t, revenue)
	assert.Empty(t, employees)
	assert.Empty(t, description)
}

func TestCleanWikitext(t *testing.T) {
	assert.Equal(t, "Adhesives, Films",
		cleanWikitext("[[Adhesive|Adhesives]], [[Films]]{{cn}}"))
	assert.Equal(t, "Bold name", cleanWikitext("'''Bold name'''"))
	assert.Equal(t, "plain", cleanWikitext("plain<ref name=\"a\">x</ref>"))
}
