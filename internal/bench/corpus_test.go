package bench

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Header
		wantBody string
	}{
		{
			name: "with header",
			input: `# Source: https://example.com/pku
# Title: 人民日报

这 是 测试`,
			want: Header{
				Source: "https://example.com/pku",
				Title:  "人民日报",
			},
			wantBody: "这 是 测试",
		},
		{
			name:     "no header",
			input:    "这 是\n测试\n",
			wantBody: "这 是\n测试",
		},
		{
			name:  "header only",
			input: "# Source: x\n",
			want:  Header{Source: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, body, err := ParseHeader(tt.input)
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseHeader() header = %+v, want %+v", got, tt.want)
			}
			if body != tt.wantBody {
				t.Errorf("ParseHeader() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseGold(t *testing.T) {
	got := ParseGold("这 是  测试\n\n  中文 分词器 \n")
	want := [][]string{{"这", "是", "测试"}, {"中文", "分词器"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseGold() = %q, want %q", got, want)
	}
}

func TestLoadDoc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pku_test.utf8")
	content := "# Source: https://example.com\n\n这 是 测试\n中文 分词器\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDoc(path)
	if err != nil {
		t.Fatalf("LoadDoc() error = %v", err)
	}

	if doc.ID != "pku_test" {
		t.Errorf("ID = %q, want %q", doc.ID, "pku_test")
	}
	if doc.Source != "https://example.com" {
		t.Errorf("Source = %q", doc.Source)
	}
	if got, want := doc.Raw(), []string{"这是测试", "中文分词器"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Raw() = %q, want %q", got, want)
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.txt", "b.utf8", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("这 是\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d docs, want 2", len(docs))
	}
}

func TestLoadCorpus_MissingDir(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
