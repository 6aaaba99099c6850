package stanseg

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-stanseg/jvm"
	"github.com/jamesainslie/go-stanseg/locate"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNotFound indicates an artifact could not be located.
	ErrNotFound = locate.ErrNotFound

	// ErrExecution indicates the segmenter JVM failed to start or exited
	// with a non-zero status.
	ErrExecution = jvm.ErrExecution

	// ErrUnsupportedLanguage indicates ApplyDefaults got an unknown tag.
	ErrUnsupportedLanguage = errors.New("stanseg: unsupported language")

	// ErrNotConfigured indicates a segmentation was requested before an
	// entry point and model were set.
	ErrNotConfigured = errors.New("stanseg: entry point and model not configured")
)

// NotFoundError reports a failed artifact lookup and what was tried.
type NotFoundError = locate.NotFoundError

// ExecutionError carries the JVM's exit status and verbatim stderr.
type ExecutionError = jvm.ExecutionError

// UnsupportedLanguageError names a language tag ApplyDefaults cannot handle.
type UnsupportedLanguageError struct {
	Lang string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("stanseg: unsupported language %q (want %q or %q)", e.Lang, LangArabic, LangChinese)
}

func (e *UnsupportedLanguageError) Unwrap() error {
	return ErrUnsupportedLanguage
}
