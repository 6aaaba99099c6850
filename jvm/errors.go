package jvm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecution is matched by every ExecutionError via errors.Is.
	ErrExecution = errors.New("jvm: execution failed")

	// ErrEmptyClasspath indicates an invocation without classpath entries.
	ErrEmptyClasspath = errors.New("jvm: classpath is empty")
)

// ExecutionError reports a JVM that could not be started or exited with a
// non-zero status. Stderr holds the child's standard error unmodified.
type ExecutionError struct {
	MainClass string
	Command   []string

	// ExitCode is -1 when the process never started or was killed.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "jvm: %s exited with status %d", e.MainClass, e.ExitCode)
	} else {
		fmt.Fprintf(&b, "jvm: %s failed: %v", e.MainClass, e.Err)
	}
	if e.Stderr != "" {
		b.WriteString("\n")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Err}
}
