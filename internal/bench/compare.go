package bench

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Candidate is one segmenter configuration to benchmark, such as a model
// file or a language default.
type Candidate struct {
	Name  string
	Value string
}

// Result holds aggregate metrics for one candidate.
type Result struct {
	Candidate Candidate
	Metrics   Metrics
}

// SegmenterCloser is a Segmenter that owns resources.
type SegmenterCloser interface {
	Segmenter
	Close() error
}

// BuildFunc creates the segmenter for one candidate.
type BuildFunc func(ctx context.Context, c Candidate) (SegmenterCloser, error)

// Candidates turns model paths or language tags into candidates named after
// themselves.
func Candidates(values []string) []Candidate {
	return lo.Map(values, func(v string, _ int) Candidate {
		return Candidate{Name: v, Value: v}
	})
}

// Compare evaluates each candidate over docs, running at most parallel
// candidates at once, and returns results sorted by weighted score. The
// first failure cancels the remaining evaluations.
func Compare(ctx context.Context, docs []*Doc, candidates []Candidate, build BuildFunc, cfg Config, parallel int) ([]Result, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, c := range candidates {
		g.Go(func() error {
			seg, err := build(gctx, c)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			defer func() { _ = seg.Close() }()

			m, err := EvaluateCorpus(gctx, seg, docs, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			results[i] = Result{Candidate: c, Metrics: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sort by weighted score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}
