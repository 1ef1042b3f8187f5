package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/catalog"
	"github.com/sells-group/lead-agent/internal/pipeline"
	"github.com/sells-group/lead-agent/internal/scorer"
)

// pipelineEnv holds the loaded catalog and the pipeline built over it for
// the prioritize, batch and serve commands.
type pipelineEnv struct {
	Catalog  *catalog.Catalog
	Scorer   *scorer.Scorer
	Pipeline *pipeline.Pipeline
}

// initPipeline validates config for mode, loads the catalog once, and builds
// the Pipeline.
func initPipeline(ctx context.Context, mode string, opts ...pipeline.Option) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
		return nil, eris.Wrap(err, "scorer config")
	}

	cat, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return nil, eris.Wrap(err, "load catalog")
	}

	s := scorer.New(cfg.Scorer)
	return &pipelineEnv{
		Catalog:  cat,
		Scorer:   s,
		Pipeline: pipeline.New(cat.Leads(), s, opts...),
	}, nil
}
