package bench

import (
	"unicode/utf8"

	"github.com/samber/lo"
)

// Config holds evaluation parameters.
type Config struct {
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Span is a word's rune offsets within its sentence, end exclusive.
type Span struct {
	Start int
	End   int
}

// Spans returns the offsets of words laid end to end.
func Spans(words []string) []Span {
	spans := make([]Span, 0, len(words))
	pos := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if n == 0 {
			continue
		}
		spans = append(spans, Span{Start: pos, End: pos + n})
		pos += n
	}
	return spans
}

// Evaluate compares predicted words against the gold words of the same
// sentence. A predicted word counts only if both its boundaries match a
// gold word exactly.
func Evaluate(predicted, gold []string, cfg Config) Metrics {
	want := make(map[Span]bool)
	for _, s := range Spans(gold) {
		want[s] = true
	}

	got := Spans(predicted)
	tp := 0
	for _, s := range got {
		if want[s] {
			delete(want, s)
			tp++
		}
	}

	return score(Metrics{
		TruePositives:  tp,
		FalsePositives: len(got) - tp,
		FalseNegatives: len(want),
	}, cfg)
}

// Aggregate sums the counts of ms and recomputes the ratios from the
// totals.
func Aggregate(ms []Metrics, cfg Config) Metrics {
	return score(Metrics{
		TruePositives:  lo.SumBy(ms, func(m Metrics) int { return m.TruePositives }),
		FalsePositives: lo.SumBy(ms, func(m Metrics) int { return m.FalsePositives }),
		FalseNegatives: lo.SumBy(ms, func(m Metrics) int { return m.FalseNegatives }),
	}, cfg)
}

func score(m Metrics, cfg Config) Metrics {
	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
	return m
}
