// Package rubric embeds the qualification rubric that grounds every LLM
// prompt in the pipeline: what the product is, which industries qualify, and
// how relevance scores should be assigned.
package rubric

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed rubric.yaml
var rubricYAML []byte

// Product describes what is being sold.
type Product struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
}

// Band maps a score range to its meaning.
type Band struct {
	Range   string `yaml:"range"`
	Meaning string `yaml:"meaning"`
}

// Scoring is a scored-entity guidance block.
type Scoring struct {
	Description string `yaml:"description"`
	Bands       []Band `yaml:"bands"`
}

// Rubric is the full qualification rubric.
type Rubric struct {
	Product               Product  `yaml:"product"`
	TargetIndustries      []string `yaml:"target_industries"`
	QualificationCriteria []string `yaml:"qualification_criteria"`
	EntityScoring         Scoring  `yaml:"entity_scoring"`
	ExecutiveScoring      Scoring  `yaml:"executive_scoring"`
	ValuePropositions     []string `yaml:"value_propositions"`
}

// Load parses the embedded rubric.
func Load() (*Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(rubricYAML, &r); err != nil {
		return nil, eris.Wrap(err, "rubric: unmarshal")
	}
	if r.Product.Name == "" {
		return nil, eris.New("rubric: missing product name")
	}
	return &r, nil
}

// ProductContext renders the product summary and target industries as a
// prompt fragment.
func (r *Rubric) ProductContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n%s\n\nTarget industries:\n", r.Product.Name, r.Product.Summary)
	for _, ind := range r.TargetIndustries {
		fmt.Fprintf(&b, "- %s\n", ind)
	}
	return b.String()
}

// EntityBands renders the entity scoring bands as a prompt fragment.
func (r *Rubric) EntityBands() string {
	return renderBands(r.EntityScoring.Bands)
}

// ExecutiveBands renders the executive scoring bands as a prompt fragment.
func (r *Rubric) ExecutiveBands() string {
	return renderBands(r.ExecutiveScoring.Bands)
}

// Criteria renders the qualification criteria as a prompt fragment.
func (r *Rubric) Criteria() string {
	var b strings.Builder
	for _, c := range r.QualificationCriteria {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	return b.String()
}

// ValueProps renders the value propositions as a prompt fragment.
func (r *Rubric) ValueProps() string {
	var b strings.Builder
	for _, v := range r.ValuePropositions {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	return b.String()
}

func renderBands(bands []Band) string {
	var b strings.Builder
	for _, band := range bands {
		fmt.Fprintf(&b, "- %s: %s\n", band.Range, band.Meaning)
	}
	return b.String()
}
