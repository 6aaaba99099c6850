package stanseg

import (
	"bytes"
	"os"
	"testing"

	"github.com/jamesainslie/go-stanseg/charset"
)

func TestJoinSentences(t *testing.T) {
	tests := []struct {
		name      string
		sentences [][]string
		want      string
	}{
		{"single", [][]string{{"这", "是", "测试"}}, "这 是 测试"},
		{"two", [][]string{{"a", "b"}, {"c"}}, "a b\nc"},
		{"empty sentence", [][]string{{"a"}, {}, {"b"}}, "a\n\nb"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinSentences(tt.sentences); got != tt.want {
				t.Errorf("joinSentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageInput(t *testing.T) {
	path, cleanup, err := stageInput([][]string{{"这", "是", "测试"}}, "UTF-8")
	if err != nil {
		t.Fatalf("stageInput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(data) != "这 是 测试" {
		t.Errorf("staged content = %q, want %q", data, "这 是 测试")
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cleanup left %s behind", path)
	}
}

func TestStageInput_Encoding(t *testing.T) {
	path, cleanup, err := stageInput([][]string{{"a", "b"}, {"测试"}}, "GB18030")
	if err != nil {
		t.Fatalf("stageInput() error = %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := charset.Encode("GB18030", "a b\n测试")
	if !bytes.Equal(data, want) {
		t.Errorf("staged bytes = % x, want % x", data, want)
	}
}

func TestStageInput_UnknownEncoding(t *testing.T) {
	if _, _, err := stageInput([][]string{{"a"}}, "no-such-charset"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
