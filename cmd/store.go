package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/rubric"
	"github.com/sells-group/leadgen-cli/internal/store"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/serper"
	"github.com/sells-group/leadgen-cli/pkg/webpage"
	"github.com/sells-group/leadgen-cli/pkg/wikipedia"
)

// initStore opens and migrates the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	switch cfg.Store.Driver {
	case "postgres":
		ps, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
		if err != nil {
			return nil, err
		}
		st = ps
	default:
		ss, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		st = ss
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline validates credentials, opens the store, and wires the
// capability clients into a Pipeline.
func initPipeline(ctx context.Context) (*pipeline.Pipeline, store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	rub, err := rubric.Load()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	p := pipeline.New(
		st,
		serper.NewClient(cfg.Serper.Key, serper.WithBaseURL(cfg.Serper.BaseURL)),
		wikipedia.NewClient(wikipedia.WithBaseURL(cfg.Wikipedia.BaseURL)),
		webpage.NewFetcher(),
		anthropic.NewClient(cfg.Anthropic.Key),
		rub,
		cfg.Pipeline,
		cfg.Anthropic,
	)
	return p, st, nil
}
