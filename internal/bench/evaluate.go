package bench

import (
	"context"
	"fmt"
	"strings"

	stanseg "github.com/jamesainslie/go-stanseg"
)

// Segmenter is the part of *stanseg.Segmenter the benchmark drives.
type Segmenter interface {
	SegmentSents(ctx context.Context, sentences [][]string, opts ...stanseg.CallOption) (string, error)
}

// EvaluateDoc segments the raw sentences of doc in one JVM launch and scores
// the output line by line against the gold words.
func EvaluateDoc(ctx context.Context, seg Segmenter, doc *Doc, cfg Config) (Metrics, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return score(Metrics{}, cfg), nil
	}

	batch := make([][]string, len(raw))
	for i, s := range raw {
		batch[i] = []string{s}
	}

	out, err := seg.SegmentSents(ctx, batch)
	if err != nil {
		return Metrics{}, err
	}

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\n")
	if len(lines) != len(doc.Sentences) {
		return Metrics{}, fmt.Errorf("%s: segmenter returned %d lines for %d sentences", doc.ID, len(lines), len(doc.Sentences))
	}

	per := make([]Metrics, len(lines))
	for i, line := range lines {
		per[i] = Evaluate(strings.Fields(line), doc.Sentences[i], cfg)
	}
	return Aggregate(per, cfg), nil
}

// EvaluateCorpus evaluates every document with seg and aggregates the
// counts.
func EvaluateCorpus(ctx context.Context, seg Segmenter, docs []*Doc, cfg Config) (Metrics, error) {
	per := make([]Metrics, 0, len(docs))
	for _, doc := range docs {
		m, err := EvaluateDoc(ctx, seg, doc, cfg)
		if err != nil {
			return Metrics{}, fmt.Errorf("evaluating %s: %w", doc.ID, err)
		}
		per = append(per, m)
	}
	return Aggregate(per, cfg), nil
}
