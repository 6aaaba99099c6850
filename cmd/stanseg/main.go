package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	stanseg "github.com/jamesainslie/go-stanseg"
	"github.com/jamesainslie/go-stanseg/internal/config"
	"github.com/jamesainslie/go-stanseg/jvm"
)

// Set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	envFile    string
	verbose    bool

	lang           string
	jar            string
	slf4j          string
	java           string
	entryPoint     string
	model          string
	dictionary     string
	corporaDir     string
	postProcessing bool
	keepWhitespace bool
	encoding       string
	javaOptions    string
	timeout        time.Duration
	maxProcs       int
	options        []string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "stanseg",
		Short:         "Segment Chinese and Arabic text with the Stanford Word Segmenter",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&f.envFile, "env-file", "", ".env file to load (default: ./.env if present)")
	pf.BoolVar(&f.verbose, "verbose", false, "Log artifact discovery and JVM launches")
	pf.StringVarP(&f.lang, "lang", "l", "", "Apply language defaults: zh or ar")
	pf.StringVar(&f.jar, "jar", "", "Path to stanford-segmenter.jar")
	pf.StringVar(&f.slf4j, "slf4j", "", "Path to slf4j-api.jar")
	pf.StringVar(&f.java, "java", "", "Path to the java binary")
	pf.StringVar(&f.entryPoint, "entry-point", "", "Java main class")
	pf.StringVar(&f.model, "model", "", "Classifier model file")
	pf.StringVar(&f.dictionary, "dictionary", "", "Serialized dictionary (requires --corpora-dir)")
	pf.StringVar(&f.corporaDir, "corpora-dir", "", "SIGHAN corpora directory (requires --dictionary)")
	pf.BoolVar(&f.postProcessing, "post-processing", false, "SIGHAN post-processing (default: on for zh)")
	pf.BoolVar(&f.keepWhitespace, "keep-whitespace", false, "Preserve input whitespace")
	pf.StringVarP(&f.encoding, "encoding", "e", stanseg.DefaultEncoding, "Input and output charset")
	pf.StringVar(&f.javaOptions, "java-options", stanseg.DefaultJavaOptions, "JVM flags")
	pf.DurationVar(&f.timeout, "timeout", 0, "Kill the JVM after this long (0 = no limit)")
	pf.IntVar(&f.maxProcs, "max-procs", 1, "JVMs run at once")
	pf.StringArrayVarP(&f.options, "option", "o", nil, "Segmenter property key=value (repeatable)")

	root.AddCommand(
		newSegmentCmd(f),
		newFileCmd(f),
		newTokenizeCmd(f),
		newCommandCmd(f),
	)
	return root
}

// resolve merges defaults, the config file and flags, in increasing
// precedence.
func resolve(cmd *cobra.Command, f *flags) (config.Config, *slog.Logger, error) {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var envFiles []string
	if f.envFile != "" {
		envFiles = append(envFiles, f.envFile)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return config.Config{}, nil, err
	}

	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	str := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	str("lang", &cfg.Lang, f.lang)
	str("jar", &cfg.Jar, f.jar)
	str("slf4j", &cfg.SLF4J, f.slf4j)
	str("java", &cfg.Java, f.java)
	str("entry-point", &cfg.EntryPoint, f.entryPoint)
	str("model", &cfg.Model, f.model)
	str("dictionary", &cfg.Dictionary, f.dictionary)
	str("corpora-dir", &cfg.CorporaDir, f.corporaDir)
	str("encoding", &cfg.Encoding, f.encoding)
	str("java-options", &cfg.JavaOptions, f.javaOptions)
	if changed("post-processing") {
		pp := f.postProcessing
		cfg.PostProcessing = &pp
	}
	if changed("keep-whitespace") {
		cfg.KeepWhitespace = f.keepWhitespace
	}
	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("max-procs") {
		cfg.MaxProcs = f.maxProcs
	}
	if len(f.options) > 0 {
		extra, err := stanseg.ParseExtraOptions(f.options)
		if err != nil {
			return config.Config{}, nil, err
		}
		merged := cfg.Options.Clone()
		merged.Merge(extra)
		cfg.Options = merged
	}

	if cfg.Lang == "" && cfg.EntryPoint == "" {
		cfg.Lang = stanseg.LangChinese
	}
	return cfg, logger, nil
}

func newSegmenter(cmd *cobra.Command, f *flags) (*stanseg.Segmenter, error) {
	cfg, logger, err := resolve(cmd, f)
	if err != nil {
		return nil, err
	}
	return cfg.NewSegmenter(logger)
}

func newSegmentCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "segment [TEXT...]",
		Short: "Segment each argument, or each line of stdin, as one sentence",
		RunE: func(cmd *cobra.Command, args []string) error {
			sentences := args
			if len(sentences) == 0 {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				sentences = lines
			}
			if len(sentences) == 0 {
				return fmt.Errorf("no text provided")
			}

			seg, err := newSegmenter(cmd, f)
			if err != nil {
				return err
			}
			defer func() { _ = seg.Close() }()

			batch := make([][]string, len(sentences))
			for i, s := range sentences {
				batch[i] = []string{s}
			}
			out, err := seg.SegmentSents(cmd.Context(), batch)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newFileCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "file PATH",
		Short: "Segment a file encoded in the configured charset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := newSegmenter(cmd, f)
			if err != nil {
				return err
			}
			defer func() { _ = seg.Close() }()

			out, err := seg.SegmentFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newTokenizeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize TEXT",
		Short: "Print the words of TEXT, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := newSegmenter(cmd, f)
			if err != nil {
				return err
			}
			defer func() { _ = seg.Close() }()

			words, err := seg.Tokenize(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

func newCommandCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "command [PATH]",
		Short: "Print the java command line a segmentation would run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := newSegmenter(cmd, f)
			if err != nil {
				return err
			}
			defer func() { _ = seg.Close() }()

			input := "<input>"
			if len(args) == 1 {
				input = args[0]
			}
			cfg := seg.Config()
			program := cfg.Command(input)
			argv, err := jvm.NewRunner(cfg.Java).Argv(jvm.Invocation{
				Classpath: cfg.Classpath,
				MainClass: program[0],
				Args:      program[1:],
				Options:   cfg.JavaOptions,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, " "))
			return nil
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return lines, nil
}
