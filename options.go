package stanseg

import (
	"log/slog"
	"os"
	"time"
)

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	jar         string
	slf4j       string
	java        string
	entryPoint  string
	model       string
	sighan      *Sighan
	keepSpace   bool
	encoding    string
	extra       ExtraOptions
	javaOptions string
	timeout     time.Duration
	maxProcs    int
	logger      *slog.Logger
	lookupEnv   func(string) (string, bool)
}

func defaultConfig() config {
	return config{
		encoding:    DefaultEncoding,
		javaOptions: DefaultJavaOptions,
		maxProcs:    1,
		logger:      slog.Default(),
		lookupEnv:   os.LookupEnv,
	}
}

// WithJar sets the segmenter jar (default: located via $STANFORD_SEGMENTER).
func WithJar(path string) Option {
	return func(c *config) {
		c.jar = path
	}
}

// WithSLF4J sets the slf4j-api jar (default: located via $SLF4J or
// $STANFORD_SEGMENTER).
func WithSLF4J(path string) Option {
	return func(c *config) {
		c.slf4j = path
	}
}

// WithJava sets the java binary (default: located via $JAVAHOME,
// $JAVA_HOME or PATH).
func WithJava(path string) Option {
	return func(c *config) {
		c.java = path
	}
}

// WithEntryPoint sets the Java main class.
func WithEntryPoint(class string) Option {
	return func(c *config) {
		c.entryPoint = class
	}
}

// WithModel sets the classifier model file.
func WithModel(path string) Option {
	return func(c *config) {
		c.model = path
	}
}

// WithSighan enables the dictionary and SIGHAN corpora used by the Chinese
// models.
func WithSighan(s Sighan) Option {
	return func(c *config) {
		c.sighan = &s
	}
}

// WithKeepWhitespace preserves input whitespace in the output (default: false).
func WithKeepWhitespace(keep bool) Option {
	return func(c *config) {
		c.keepSpace = keep
	}
}

// WithEncoding sets the charset used for input files and output decoding
// (default: UTF-8).
func WithEncoding(name string) Option {
	return func(c *config) {
		if name != "" {
			c.encoding = name
		}
	}
}

// WithExtraOptions passes properties to the segmenter through -options.
func WithExtraOptions(o ExtraOptions) Option {
	return func(c *config) {
		c.extra = o.Clone()
	}
}

// WithJavaOptions sets the JVM flags used for every launch (default: "-mx2g").
func WithJavaOptions(opts string) Option {
	return func(c *config) {
		c.javaOptions = opts
	}
}

// WithTimeout kills a JVM that runs longer than d (default: no limit).
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxProcs bounds how many JVMs one Segmenter runs at once (default: 1).
func WithMaxProcs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxProcs = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLookupEnv replaces os.LookupEnv for artifact discovery.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *config) {
		if fn != nil {
			c.lookupEnv = fn
		}
	}
}

// CallOption adjusts a single segmentation call.
type CallOption func(*callConfig)

type callConfig struct {
	javaOptions string
}

// JavaOptions overrides the JVM flags for one call only.
func JavaOptions(opts string) CallOption {
	return func(c *callConfig) {
		c.javaOptions = opts
	}
}
