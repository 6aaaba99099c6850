// Package bench scores word segmentation against hand-segmented gold text.
package bench

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header contains metadata parsed from a gold file's comment header.
type Header struct {
	Source string
	Title  string
}

// ParseHeader extracts leading "# Key: value" comments and returns the
// header and the text that follows. A file without a header is valid.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	bodyStart := len(text)
	offset := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineStart := offset
		offset += len(line) + 1

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineStart
			break
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// ParseGold splits a gold body into sentences, one per non-blank line, each
// holding its words.
func ParseGold(body string) [][]string {
	var sentences [][]string
	for _, line := range strings.Split(body, "\n") {
		if words := strings.Fields(line); len(words) > 0 {
			sentences = append(sentences, words)
		}
	}
	return sentences
}

// Doc is a loaded gold document.
type Doc struct {
	ID        string // filename without extension
	Source    string
	Title     string
	Sentences [][]string
}

// Raw returns each gold sentence with its word boundaries removed, which is
// what the segmenter is given.
func (d *Doc) Raw() []string {
	raw := make([]string, len(d.Sentences))
	for i, words := range d.Sentences {
		raw[i] = strings.Join(words, "")
	}
	return raw
}

// LoadDoc loads and parses a gold file.
func LoadDoc(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	return &Doc{
		ID:        strings.TrimSuffix(base, filepath.Ext(base)),
		Source:    header.Source,
		Title:     header.Title,
		Sentences: ParseGold(body),
	}, nil
}

// LoadCorpus loads every .txt and .utf8 gold file in dir.
func LoadCorpus(dir string) ([]*Doc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Doc
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".txt", ".utf8":
		default:
			continue
		}

		doc, err := LoadDoc(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
