// Package pipeline runs lead qualification for a campaign: it filters the
// catalog, scores and ranks the candidates, and synthesizes a messaging
// recommendation.
package pipeline

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/model"
	"github.com/sells-group/lead-agent/internal/scorer"
)

// Run outcomes reported to an Observer.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Observer receives one call per Run. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveRun(outcome string, ranked int, fallback bool, elapsed time.Duration)
}

// Pipeline ranks a fixed, read-only lead catalog against campaigns. It holds
// no mutable state and may be shared across goroutines.
type Pipeline struct {
	leads    []model.Lead
	scorer   *scorer.Scorer
	observer Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver reports every run to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// New creates a Pipeline over leads. The slice is copied; catalog order is
// the tie-break order for ranking.
func New(leads []model.Lead, s *scorer.Scorer, opts ...Option) *Pipeline {
	p := &Pipeline{
		leads:  slices.Clone(leads),
		scorer: s,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of leads in the catalog.
func (p *Pipeline) Len() int {
	return len(p.leads)
}

// Run ranks the catalog for a validated campaign and builds the
// recommendation. A panic during scoring or recommendation is logged and
// returned as an *InternalError.
func (p *Pipeline) Run(c model.Campaign) (result *model.Result, err error) {
	start := time.Now()
	log := zap.L().With(zap.String("campaign", c.CampaignName))

	var fallback bool
	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline: run panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			result, err = nil, &InternalError{Campaign: c.CampaignName, Cause: r}
		}

		if p.observer != nil {
			outcome, ranked := OutcomeSuccess, 0
			if err != nil {
				outcome = OutcomeError
			} else {
				ranked = len(result.Leads)
			}
			p.observer.ObserveRun(outcome, ranked, fallback, time.Since(start))
		}
	}()

	var ranked []model.ScoredLead
	ranked, fallback = prioritize(p.leads, c, p.scorer)
	rec := Recommend(c, ranked)

	if fallback {
		log.Info("pipeline: no leads matched filters, ranked full catalog",
			zap.Int("catalog_size", len(p.leads)),
		)
	}
	log.Debug("pipeline: ranked leads",
		zap.Int("ranked", len(ranked)),
		zap.Bool("fallback", fallback),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &model.Result{Leads: ranked, Recommendation: rec}, nil
}
