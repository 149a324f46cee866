// Package pipeline implements the staged lead-generation flow: discover
// trade events and associations, derive candidate companies, enrich and
// score them, find executive contacts, and draft outreach messages. Stages
// run strictly sequentially and persist per record, so a crashed run leaves
// a resumable prefix and re-runs merge instead of duplicating.
package pipeline

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pace"
	"github.com/sells-group/leadgen-cli/internal/rubric"
	"github.com/sells-group/leadgen-cli/internal/store"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/serper"
	"github.com/sells-group/leadgen-cli/pkg/webpage"
	"github.com/sells-group/leadgen-cli/pkg/wikipedia"
)

// Pipeline wires the external capabilities and the store into the staged
// flow. All dependencies are injected; there is no process-wide state.
type Pipeline struct {
	store   store.Store
	search  serper.Client
	wiki    wikipedia.Client
	fetcher webpage.Fetcher
	ai      anthropic.Client
	rubric  *rubric.Rubric

	cfg   config.PipelineConfig
	aiCfg config.AnthropicConfig

	// searchPace spaces search API calls, lookupPace spaces enrichment
	// lookups and generation calls.
	searchPace *pace.Pacer
	lookupPace *pace.Pacer
}

// New creates a Pipeline.
func New(
	st store.Store,
	search serper.Client,
	wiki wikipedia.Client,
	fetcher webpage.Fetcher,
	ai anthropic.Client,
	rub *rubric.Rubric,
	cfg config.PipelineConfig,
	aiCfg config.AnthropicConfig,
) *Pipeline {
	return &Pipeline{
		store:      st,
		search:     search,
		wiki:       wiki,
		fetcher:    fetcher,
		ai:         ai,
		rubric:     rub,
		cfg:        cfg,
		aiCfg:      aiCfg,
		searchPace: pace.New(cfg.SearchInterval()),
		lookupPace: pace.New(cfg.LookupInterval()),
	}
}

// Options controls a single end-to-end run.
type Options struct {
	QueryCount         int
	ResultsPerQuery    int
	OutputDir          string
	RelevanceThreshold float64
	UpdateRelevance    bool
	SkipLeads          bool
	SkipCompanies      bool
	SkipExecutives     bool
	SkipMessages       bool
	Format             string // "csv" or "xlsx"
}

// Run executes the full pipeline. Per-item failures inside a stage degrade
// to documented fallbacks; only store failures propagate.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	log := zap.L().With(zap.String("component", "pipeline"))

	if !opts.SkipLeads {
		log.Info("stage: lead discovery")
		if err := p.DiscoverLeads(ctx, opts.QueryCount, opts.ResultsPerQuery, p.cfg.SeedResultLimit); err != nil {
			return err
		}
		if err := p.exportLeads(ctx, opts.OutputDir, opts.Format); err != nil {
			return err
		}
	}

	if !opts.SkipCompanies {
		log.Info("stage: company discovery")
		if err := p.runCompanyStage(ctx, opts.ResultsPerQuery); err != nil {
			return err
		}
	}

	if opts.UpdateRelevance {
		log.Info("stage: relevance refresh")
		if err := p.RefreshRelevanceScores(ctx); err != nil {
			return err
		}
	}

	if err := p.exportCompanies(ctx, opts.OutputDir, opts.Format); err != nil {
		return err
	}

	if !opts.SkipExecutives {
		log.Info("stage: decision makers")
		if err := p.DiscoverDecisionMakers(ctx, p.cfg.MaxCompanies); err != nil {
			return err
		}
		if err := p.exportExecutives(ctx, opts.OutputDir, opts.Format); err != nil {
			return err
		}
	}

	if !opts.SkipMessages {
		log.Info("stage: outreach drafting")
		if err := p.DraftOutreach(ctx, opts.RelevanceThreshold); err != nil {
			return err
		}
		if err := p.exportMessages(ctx, opts.OutputDir, opts.Format); err != nil {
			return err
		}
	}

	log.Info("pipeline complete", zap.String("output_dir", opts.OutputDir))
	return nil
}

// runCompanyStage drives company discovery per seed: the top stored events
// and associations are taken in score order, each seed is expanded into
// candidate names, enriched, scored and stored, until either the seeds or
// the global company cap are exhausted.
func (p *Pipeline) runCompanyStage(ctx context.Context, resultLimit int) error {
	log := zap.L().With(zap.String("component", "pipeline"))

	seeds, err := p.loadSeeds(ctx)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		log.Warn("no stored events or associations to seed company discovery")
		return nil
	}

	seen := make(map[string]bool)
	for _, seed := range seeds {
		if len(seen) >= p.cfg.MaxCompanies {
			break
		}
		log.Info("processing seed",
			zap.String("kind", string(seed.Kind)),
			zap.String("name", seed.Name))

		names, err := p.DiscoverCompanies(ctx, seed.Name, resultLimit)
		if err != nil {
			log.Warn("company discovery failed for seed",
				zap.String("seed", seed.Name), zap.Error(err))
			continue
		}

		fresh := make([]string, 0, len(names))
		for _, n := range names {
			if len(seen)+len(fresh) >= p.cfg.MaxCompanies {
				break
			}
			if !seen[n] {
				fresh = append(fresh, n)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		records := p.EnrichCompanies(ctx, fresh)
		scored := p.ScoreCompanies(ctx, records)
		stored, err := p.StoreCompanies(ctx, scored, seed)
		if err != nil {
			return err
		}
		for _, c := range stored {
			seen[c.Name] = true
		}
	}

	log.Info("company stage complete", zap.Int("companies", len(seen)))
	return nil
}

// loadSeeds returns the run's discovery seeds: top events then top
// associations by score, truncated to the configured seed cap.
func (p *Pipeline) loadSeeds(ctx context.Context) ([]model.Seed, error) {
	events, err := p.store.TopEvents(ctx, p.cfg.SeedResultLimit)
	if err != nil {
		return nil, err
	}
	assocs, err := p.store.TopAssociations(ctx, p.cfg.SeedResultLimit)
	if err != nil {
		return nil, err
	}

	seeds := make([]model.Seed, 0, len(events)+len(assocs))
	for i := range events {
		seeds = append(seeds, model.EventSeed(&events[i]))
	}
	for i := range assocs {
		seeds = append(seeds, model.AssociationSeed(&assocs[i]))
	}
	if len(seeds) > p.cfg.MaxSeeds {
		seeds = seeds[:p.cfg.MaxSeeds]
	}
	return seeds, nil
}

func outputPath(dir, name string) string {
	return filepath.Join(dir, name)
}
