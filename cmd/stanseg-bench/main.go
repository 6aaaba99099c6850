package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-stanseg/internal/bench"
	"github.com/jamesainslie/go-stanseg/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
		lang       string
		corpusDir  string
		models     []string
		parallel   int
		wp         float64
		wr         float64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "stanseg-bench",
		Short: "Score Stanford Word Segmenter models against gold-segmented text",
		Long: `Loads every .txt and .utf8 file under --corpus as gold text (one sentence
per line, words separated by spaces), segments the unspaced sentences and
reports word precision, recall and F1. With several --model flags the
models are compared and ranked by weighted score.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			var envFiles []string
			if envFile != "" {
				envFiles = append(envFiles, envFile)
			}
			if err := config.LoadEnv(envFiles...); err != nil {
				return err
			}

			base := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				base = loaded
			}
			if cmd.Flags().Changed("lang") || base.Lang == "" {
				base.Lang = lang
			}

			docs, err := bench.LoadCorpus(corpusDir)
			if err != nil {
				return fmt.Errorf("loading corpus: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d documents from %s\n\n", len(docs), corpusDir)

			if len(models) == 0 {
				models = []string{base.Model}
			}
			candidates := bench.Candidates(models)
			for i := range candidates {
				if candidates[i].Value == "" {
					candidates[i].Name = base.Lang + " default"
				} else {
					candidates[i].Name = filepath.Base(candidates[i].Value)
				}
			}

			build := func(_ context.Context, c bench.Candidate) (bench.SegmenterCloser, error) {
				cfg := base
				cfg.Model = c.Value
				seg, err := cfg.NewSegmenter(logger)
				if err != nil {
					return nil, err
				}
				return seg, nil
			}

			evalCfg := bench.Config{PrecisionWeight: wp, RecallWeight: wr}
			results, err := bench.Compare(cmd.Context(), docs, candidates, build, evalCfg, parallel)
			if err != nil {
				return err
			}

			printResults(out, results, evalCfg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "TOML config file")
	f.StringVar(&envFile, "env-file", "", ".env file to load (default: ./.env if present)")
	f.StringVarP(&lang, "lang", "l", "zh", "Language defaults: zh or ar")
	f.StringVar(&corpusDir, "corpus", "testdata/gold", "Directory containing gold files")
	f.StringArrayVarP(&models, "model", "m", nil, "Model file to evaluate (repeatable)")
	f.IntVarP(&parallel, "parallel", "p", 1, "Models evaluated at once")
	f.Float64Var(&wp, "wp", 1.0, "Precision weight")
	f.Float64Var(&wr, "wr", 1.0, "Recall weight")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log JVM launches")

	return cmd
}

func printResults(w io.Writer, results []bench.Result, cfg bench.Config) {
	fmt.Fprintf(w, "Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "%-30s %-8s %-8s %-8s %-8s\n", "Model", "Prec", "Rec", "F1", "Weighted")

	for _, r := range results {
		m := r.Metrics
		fmt.Fprintf(w, "%-30s %-8.4f %-8.4f %-8.4f %-8.4f\n",
			r.Candidate.Name, m.Precision, m.Recall, m.F1, m.WeightedScore)
	}

	fmt.Fprintln(w, strings.Repeat("-", 70))
	if len(results) > 0 {
		best := results[0]
		fmt.Fprintf(w, "Best: %s (Weighted: %.4f, TP=%d FP=%d FN=%d)\n",
			best.Candidate.Name, best.Metrics.WeightedScore,
			best.Metrics.TruePositives, best.Metrics.FalsePositives, best.Metrics.FalseNegatives)
	}
}
