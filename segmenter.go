package stanseg

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/jamesainslie/go-stanseg/jvm"
	"github.com/jamesainslie/go-stanseg/locate"
)

const (
	// DefaultEncoding is the charset used for input files and output.
	DefaultEncoding = "UTF-8"

	// DefaultJavaOptions gives the JVM enough heap for the CRF models.
	DefaultJavaOptions = "-mx2g"

	// DownloadURL is where the segmenter distribution is published.
	DownloadURL = "https://nlp.stanford.edu/software"

	jarPattern   = "stanford-segmenter{.jar,-[0-9]*[0-9].jar}"
	slf4jPattern = "slf4j-api{.jar,-[0-9]*[0-9].jar}"
)

// Sighan holds the Chinese dictionary and SIGHAN corpora settings. They are
// only meaningful together, so a Segmenter either has all of them or none.
type Sighan struct {
	Dictionary     string
	CorporaDir     string
	PostProcessing bool
}

// Config is a snapshot of a Segmenter's configuration.
type Config struct {
	// Classpath holds the segmenter jar and its slf4j dependency.
	Classpath      []string
	Java           string
	EntryPoint     string
	Model          string
	Sighan         *Sighan
	KeepWhitespace bool
	Encoding       string
	ExtraOptions   ExtraOptions
	JavaOptions    string
}

func (c Config) clone() Config {
	c.Classpath = append([]string(nil), c.Classpath...)
	if c.Sighan != nil {
		s := *c.Sighan
		c.Sighan = &s
	}
	c.ExtraOptions = c.ExtraOptions.Clone()
	return c
}

// Command returns the segmenter's main class followed by its arguments for
// reading inputPath.
func (c Config) Command(inputPath string) []string {
	cmd := []string{
		c.EntryPoint,
		"-loadClassifier", c.Model,
		"-keepAllWhitespaces", strconv.FormatBool(c.KeepWhitespace),
		"-textFile", inputPath,
	}
	if c.Sighan != nil {
		cmd = append(cmd,
			"-serDictionary", c.Sighan.Dictionary,
			"-sighanCorporaDict", c.Sighan.CorporaDir,
			"-sighanPostProcessing", strconv.FormatBool(c.Sighan.PostProcessing),
		)
	}
	cmd = append(cmd, "-inputEncoding", c.Encoding)
	if c.ExtraOptions.Len() > 0 {
		cmd = append(cmd, "-options", c.ExtraOptions.String())
	}
	return cmd
}

// Segmenter runs the Stanford Word Segmenter.
// It is safe for concurrent use.
type Segmenter struct {
	mu      sync.RWMutex
	cfg     Config
	runner  *jvm.Runner
	pool    *jvm.Pool
	locator *locate.Locator
	logger  *slog.Logger
}

// New locates the segmenter jar, its slf4j dependency and a Java runtime and
// returns a Segmenter. Entry point and model come from options or from a
// later call to ApplyDefaults.
func New(opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	loc := &locate.Locator{LookupEnv: cfg.lookupEnv}

	jar, err := loc.Find(locate.Query{
		Name:    jarPattern,
		Path:    cfg.jar,
		EnvVars: []string{"STANFORD_SEGMENTER"},
		URL:     DownloadURL,
		Hint:    "Stanford segmenter jar",
	})
	if err != nil {
		return nil, err
	}

	slf4j, err := loc.Find(locate.Query{
		Name:    slf4jPattern,
		Path:    cfg.slf4j,
		EnvVars: []string{"SLF4J", "STANFORD_SEGMENTER"},
		URL:     DownloadURL,
		Hint:    "slf4j API jar required by the segmenter",
	})
	if err != nil {
		return nil, err
	}

	java, err := jvm.FindJava(cfg.java, cfg.lookupEnv)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("resolved segmenter artifacts",
		"jar", jar,
		"slf4j", slf4j,
		"java", java,
	)

	pool := jvm.NewPool(cfg.maxProcs)
	runner := jvm.NewRunner(java,
		jvm.WithPool(pool),
		jvm.WithTimeout(cfg.timeout),
		jvm.WithLogger(cfg.logger),
	)

	return &Segmenter{
		cfg: Config{
			Classpath:      []string{jar, slf4j},
			Java:           java,
			EntryPoint:     cfg.entryPoint,
			Model:          cfg.model,
			Sighan:         cfg.sighan,
			KeepWhitespace: cfg.keepSpace,
			Encoding:       cfg.encoding,
			ExtraOptions:   cfg.extra,
			JavaOptions:    cfg.javaOptions,
		},
		runner:  runner,
		pool:    pool,
		locator: loc,
		logger:  cfg.logger,
	}, nil
}

// Config returns a copy of the current configuration.
func (s *Segmenter) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.clone()
}

// Command returns the main class and arguments a segmentation of inputPath
// would run with.
func (s *Segmenter) Command(inputPath string) []string {
	return s.Config().Command(inputPath)
}

// Segment segments one sentence given as tokens.
func (s *Segmenter) Segment(ctx context.Context, tokens []string, opts ...CallOption) (string, error) {
	return s.SegmentSents(ctx, [][]string{tokens}, opts...)
}

// SegmentSents segments several sentences, one output line per sentence.
// Input is staged in a temporary file that is removed before returning.
func (s *Segmenter) SegmentSents(ctx context.Context, sentences [][]string, opts ...CallOption) (string, error) {
	cfg := s.Config()
	if err := checkConfigured(cfg); err != nil {
		return "", err
	}

	path, cleanup, err := stageInput(sentences, cfg.Encoding)
	if err != nil {
		return "", err
	}
	defer cleanup()

	return s.run(ctx, cfg, path, opts)
}

// SegmentFile segments a file that is already encoded in the configured
// charset.
func (s *Segmenter) SegmentFile(ctx context.Context, path string, opts ...CallOption) (string, error) {
	cfg := s.Config()
	if err := checkConfigured(cfg); err != nil {
		return "", err
	}
	return s.run(ctx, cfg, path, opts)
}

// Tokenize segments text as a single sentence and returns the words.
func (s *Segmenter) Tokenize(ctx context.Context, text string, opts ...CallOption) ([]string, error) {
	out, err := s.Segment(ctx, []string{text}, opts...)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

func (s *Segmenter) run(ctx context.Context, cfg Config, inputPath string, opts []CallOption) (string, error) {
	call := callConfig{javaOptions: cfg.JavaOptions}
	for _, opt := range opts {
		opt(&call)
	}

	cmd := cfg.Command(inputPath)
	out, err := s.runner.Run(ctx, jvm.Invocation{
		Classpath: cfg.Classpath,
		MainClass: cmd[0],
		Args:      cmd[1:],
		Options:   call.javaOptions,
		Encoding:  cfg.Encoding,
	})
	if err != nil {
		return "", fmt.Errorf("stanseg: segmenting %s: %w", inputPath, err)
	}
	return out, nil
}

// Close stops admitting new segmentations. Calls already running finish.
func (s *Segmenter) Close() error {
	return s.pool.Close()
}

func checkConfigured(cfg Config) error {
	if cfg.EntryPoint == "" || cfg.Model == "" {
		return ErrNotConfigured
	}
	return nil
}
