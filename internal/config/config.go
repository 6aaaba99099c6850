// Package config loads segmenter settings for the command-line tools from a
// TOML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	stanseg "github.com/jamesainslie/go-stanseg"
)

// Config holds everything needed to build a Segmenter.
type Config struct {
	Lang           string
	Jar            string
	SLF4J          string
	Java           string
	EntryPoint     string
	Model          string
	Dictionary     string
	CorporaDir     string
	KeepWhitespace bool
	Encoding       string
	JavaOptions    string
	Timeout        time.Duration
	MaxProcs       int
	Options        stanseg.ExtraOptions

	// PostProcessing is nil unless set explicitly, leaving the language
	// default (on for Chinese) in effect.
	PostProcessing *bool
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Encoding:    stanseg.DefaultEncoding,
		JavaOptions: stanseg.DefaultJavaOptions,
		MaxProcs:    1,
	}
}

type fileConfig struct {
	Lang           string         `toml:"lang"`
	Jar            string         `toml:"jar"`
	SLF4J          string         `toml:"slf4j"`
	Java           string         `toml:"java"`
	EntryPoint     string         `toml:"entry_point"`
	Model          string         `toml:"model"`
	Dictionary     string         `toml:"dictionary"`
	CorporaDir     string         `toml:"corpora_dir"`
	PostProcessing bool           `toml:"post_processing"`
	KeepWhitespace bool           `toml:"keep_whitespace"`
	Encoding       string         `toml:"encoding"`
	JavaOptions    string         `toml:"java_options"`
	Timeout        string         `toml:"timeout"`
	MaxProcs       int            `toml:"max_procs"`
	Options        map[string]any `toml:"options"`
}

// Load overlays the TOML file at path onto Default. Keys absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown keys %v", undecoded)
	}

	str := func(key string, dst *string, v string) {
		if meta.IsDefined(key) {
			*dst = strings.TrimSpace(v)
		}
	}
	str("lang", &cfg.Lang, raw.Lang)
	str("jar", &cfg.Jar, raw.Jar)
	str("slf4j", &cfg.SLF4J, raw.SLF4J)
	str("java", &cfg.Java, raw.Java)
	str("entry_point", &cfg.EntryPoint, raw.EntryPoint)
	str("model", &cfg.Model, raw.Model)
	str("dictionary", &cfg.Dictionary, raw.Dictionary)
	str("corpora_dir", &cfg.CorporaDir, raw.CorporaDir)
	str("encoding", &cfg.Encoding, raw.Encoding)

	if meta.IsDefined("java_options") {
		cfg.JavaOptions = raw.JavaOptions
	}
	if meta.IsDefined("post_processing") {
		pp := raw.PostProcessing
		cfg.PostProcessing = &pp
	}
	if meta.IsDefined("keep_whitespace") {
		cfg.KeepWhitespace = raw.KeepWhitespace
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("max_procs") {
		cfg.MaxProcs = raw.MaxProcs
	}

	// Keys() preserves file order, which -options must keep.
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != "options" {
			continue
		}
		if err := cfg.Options.Set(key[1], raw.Options[key[1]]); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	return cfg, nil
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. With no paths, ./.env is loaded if present.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Validate reports settings that cannot produce a usable Segmenter.
func (c Config) Validate() error {
	if (c.Dictionary == "") != (c.CorporaDir == "") {
		return errors.New("config: dictionary and corpora_dir must be set together")
	}
	if c.MaxProcs < 0 {
		return fmt.Errorf("config: max_procs must be positive, got %d", c.MaxProcs)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// SegmenterOptions converts the settings to Segmenter options.
func (c Config) SegmenterOptions(logger *slog.Logger) []stanseg.Option {
	opts := []stanseg.Option{
		stanseg.WithJar(c.Jar),
		stanseg.WithSLF4J(c.SLF4J),
		stanseg.WithJava(c.Java),
		stanseg.WithEntryPoint(c.EntryPoint),
		stanseg.WithModel(c.Model),
		stanseg.WithKeepWhitespace(c.KeepWhitespace),
		stanseg.WithEncoding(c.Encoding),
		stanseg.WithJavaOptions(c.JavaOptions),
		stanseg.WithTimeout(c.Timeout),
		stanseg.WithMaxProcs(c.MaxProcs),
		stanseg.WithExtraOptions(c.Options),
		stanseg.WithLogger(logger),
	}
	if c.Dictionary != "" && c.CorporaDir != "" {
		opts = append(opts, stanseg.WithSighan(stanseg.Sighan{
			Dictionary:     c.Dictionary,
			CorporaDir:     c.CorporaDir,
			PostProcessing: c.PostProcessing != nil && *c.PostProcessing,
		}))
	}
	return opts
}

// NewSegmenter validates c, builds a Segmenter and, when Lang is set,
// applies that language's defaults. Explicit entry point, model, dictionary
// and post-processing settings win over the defaults, and artifacts given
// explicitly are not looked up.
func (c Config) NewSegmenter(logger *slog.Logger) (*stanseg.Segmenter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	seg, err := stanseg.New(c.SegmenterOptions(logger)...)
	if err != nil {
		return nil, err
	}
	if c.Lang == "" {
		return seg, nil
	}

	if err := seg.ApplyDefaultsWith(c.Lang, c.Overrides()); err != nil {
		_ = seg.Close()
		return nil, err
	}
	return seg, nil
}

// Overrides returns the explicit settings to layer over language defaults.
func (c Config) Overrides() stanseg.Overrides {
	return stanseg.Overrides{
		EntryPoint:     c.EntryPoint,
		Model:          c.Model,
		Dictionary:     c.Dictionary,
		CorporaDir:     c.CorporaDir,
		PostProcessing: c.PostProcessing,
	}
}
