// Package jvm runs Java programs as child processes and captures their
// output.
package jvm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/jamesainslie/go-stanseg/charset"
)

// Invocation is one launch of a Java main class.
type Invocation struct {
	// Classpath entries are joined with os.PathListSeparator.
	Classpath []string
	MainClass string
	Args      []string

	// Options are JVM flags such as "-mx2g -Dfile.encoding=UTF-8", split
	// using shell quoting rules. They apply to this launch only.
	Options string

	// Encoding decodes stdout. Empty means UTF-8.
	Encoding string
}

// Runner launches JVMs.
// It is safe for concurrent use.
type Runner struct {
	java    string
	pool    *Pool
	timeout time.Duration
	logger  *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPool bounds concurrent launches.
func WithPool(p *Pool) RunnerOption {
	return func(r *Runner) {
		r.pool = p
	}
}

// WithTimeout kills a launch that runs longer than d (default: no limit).
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner that starts the java binary at javaPath.
func NewRunner(javaPath string, opts ...RunnerOption) *Runner {
	r := &Runner{
		java:   javaPath,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Argv returns the full command line for inv, java binary first.
func (r *Runner) Argv(inv Invocation) ([]string, error) {
	if inv.MainClass == "" {
		return nil, errors.New("jvm: main class is required")
	}
	if len(inv.Classpath) == 0 {
		return nil, ErrEmptyClasspath
	}

	flags, err := shlex.Split(inv.Options)
	if err != nil {
		return nil, fmt.Errorf("jvm: parsing options %q: %w", inv.Options, err)
	}

	argv := make([]string, 0, len(flags)+len(inv.Args)+4)
	argv = append(argv, r.java)
	argv = append(argv, flags...)
	argv = append(argv, "-cp", strings.Join(inv.Classpath, string(os.PathListSeparator)), inv.MainClass)
	argv = append(argv, inv.Args...)
	return argv, nil
}

// Run launches inv, waits for it to exit and returns its decoded stdout.
// A launch that fails to start or exits non-zero yields an *ExecutionError
// carrying the captured stderr.
func (r *Runner) Run(ctx context.Context, inv Invocation) (string, error) {
	argv, err := r.Argv(inv)
	if err != nil {
		return "", err
	}
	if _, err := charset.Lookup(inv.Encoding); err != nil {
		return "", err
	}

	if r.pool != nil {
		if err := r.pool.Acquire(ctx); err != nil {
			return "", err
		}
		defer r.pool.Release()
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		cause := runErr
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
		}
		r.logger.Debug("java exited with error",
			"main_class", inv.MainClass,
			"exit_code", exitCode,
			"duration_ms", duration.Milliseconds(),
			"stderr_bytes", stderr.Len(),
		)
		return "", &ExecutionError{
			MainClass: inv.MainClass,
			Command:   argv,
			ExitCode:  exitCode,
			Stderr:    stderr.String(),
			Err:       cause,
		}
	}

	r.logger.Debug("java exited",
		"main_class", inv.MainClass,
		"duration_ms", duration.Milliseconds(),
		"stdout_bytes", stdout.Len(),
	)

	return charset.Decode(inv.Encoding, stdout.Bytes())
}
