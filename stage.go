package stanseg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-stanseg/charset"
)

// joinSentences puts one sentence per line with tokens separated by a
// single space. No trailing newline is added.
func joinSentences(sentences [][]string) string {
	lines := make([]string, len(sentences))
	for i, tokens := range sentences {
		lines[i] = strings.Join(tokens, " ")
	}
	return strings.Join(lines, "\n")
}

// stageInput writes sentences, encoded in enc, to a fresh temporary file.
// The file is closed before returning; cleanup removes it and must be
// called once the segmenter has run, whatever the outcome.
func stageInput(sentences [][]string, enc string) (path string, cleanup func(), err error) {
	data, err := charset.Encode(enc, joinSentences(sentences))
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "stanseg-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("stanseg: creating input file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("stanseg: writing input file: %w", err)
	}

	return path, cleanup, nil
}
