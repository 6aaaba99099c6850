package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	stanseg "github.com/jamesainslie/go-stanseg"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stanseg.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
lang = "zh"
jar = " /opt/seg/stanford-segmenter.jar "
java_options = "-mx4g"
keep_whitespace = true
timeout = "90s"
max_procs = 4

[options]
zeta = 1
alpha = "x"
flag = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Lang != "zh" {
		t.Fatalf("unexpected lang: %q", cfg.Lang)
	}
	if cfg.Jar != "/opt/seg/stanford-segmenter.jar" {
		t.Fatalf("unexpected jar: %q", cfg.Jar)
	}
	if cfg.JavaOptions != "-mx4g" {
		t.Fatalf("unexpected java options: %q", cfg.JavaOptions)
	}
	if !cfg.KeepWhitespace {
		t.Fatalf("expected keep_whitespace enabled")
	}
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.MaxProcs != 4 {
		t.Fatalf("unexpected max procs: %d", cfg.MaxProcs)
	}
	if cfg.Encoding != "UTF-8" {
		t.Fatalf("encoding default lost: %q", cfg.Encoding)
	}
	if got := cfg.Options.String(); got != `zeta=1,alpha="x",flag=true` {
		t.Fatalf("unexpected options: %q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"bad timeout":  `timeout = "soon"`,
		"unknown key":  `colour = "blue"`,
		"bad option":   "[options]\nlist = [1, 2]",
		"invalid toml": `lang = `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Dictionary = "/m/dict-chris6.ser.gz"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for dictionary without corpora")
	}
	cfg.CorporaDir = "/m/data"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seg.env")
	if err := os.WriteFile(path, []byte("STANSEG_TEST_MODELS=/from/file\nSTANSEG_TEST_KEEP=/from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STANSEG_TEST_KEEP", "/from/env")
	t.Setenv("STANSEG_TEST_MODELS", "")
	_ = os.Unsetenv("STANSEG_TEST_MODELS")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("STANSEG_TEST_MODELS"); got != "/from/file" {
		t.Fatalf("unexpected STANSEG_TEST_MODELS: %q", got)
	}
	if got := os.Getenv("STANSEG_TEST_KEEP"); got != "/from/env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
}

func TestLoadEnv_NoDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without .env: %v", err)
	}
}

func TestLoad_PostProcessing(t *testing.T) {
	cfg, err := Load(writeConfig(t, `lang = "zh"`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PostProcessing != nil {
		t.Fatalf("post_processing set without the key: %v", *cfg.PostProcessing)
	}

	cfg, err = Load(writeConfig(t, `post_processing = false`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PostProcessing == nil || *cfg.PostProcessing {
		t.Fatalf("expected explicit post_processing = false, got %v", cfg.PostProcessing)
	}
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewSegmenter(t *testing.T) {
	dir := t.TempDir()
	jar := touch(t, filepath.Join(dir, "stanford-segmenter.jar"))
	slf4j := touch(t, filepath.Join(dir, "slf4j-api.jar"))
	java := touch(t, filepath.Join(dir, "java"))
	model := touch(t, filepath.Join(dir, "ctb.gz"))
	dict := touch(t, filepath.Join(dir, "dict.ser.gz"))
	corpora := filepath.Join(dir, "corpora")
	if err := os.Mkdir(corpora, 0o755); err != nil {
		t.Fatal(err)
	}

	// A full distribution, used only when STANFORD_SEGMENTER points at it.
	install := t.TempDir()
	touch(t, filepath.Join(install, "data", "pku.gz"))
	touch(t, filepath.Join(install, "data", "dict-chris6.ser.gz"))

	off := false
	tests := []struct {
		name       string
		install    bool
		cfg        func(*Config)
		wantModel  string
		wantSighan *stanseg.Sighan
	}{
		{
			name:      "lang only",
			install:   true,
			cfg:       func(*Config) {},
			wantModel: filepath.Join(install, "data", "pku.gz"),
			wantSighan: &stanseg.Sighan{
				Dictionary:     filepath.Join(install, "data", "dict-chris6.ser.gz"),
				CorporaDir:     filepath.Join(install, "data"),
				PostProcessing: true,
			},
		},
		{
			name:      "explicit model",
			install:   true,
			cfg:       func(c *Config) { c.Model = model },
			wantModel: model,
			wantSighan: &stanseg.Sighan{
				Dictionary:     filepath.Join(install, "data", "dict-chris6.ser.gz"),
				CorporaDir:     filepath.Join(install, "data"),
				PostProcessing: true,
			},
		},
		{
			name: "explicit model, dictionary and corpora",
			cfg: func(c *Config) {
				c.Model = model
				c.Dictionary = dict
				c.CorporaDir = corpora
			},
			wantModel:  model,
			wantSighan: &stanseg.Sighan{Dictionary: dict, CorporaDir: corpora, PostProcessing: true},
		},
		{
			name: "explicit post-processing off",
			cfg: func(c *Config) {
				c.Model = model
				c.Dictionary = dict
				c.CorporaDir = corpora
				c.PostProcessing = &off
			},
			wantModel:  model,
			wantSighan: &stanseg.Sighan{Dictionary: dict, CorporaDir: corpora},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STANFORD_MODELS", "")
			t.Setenv("STANFORD_SEGMENTER", "")
			if tt.install {
				t.Setenv("STANFORD_SEGMENTER", install)
			}

			cfg := Default()
			cfg.Lang = stanseg.LangChinese
			cfg.Jar, cfg.SLF4J, cfg.Java = jar, slf4j, java
			tt.cfg(&cfg)

			seg, err := cfg.NewSegmenter(slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("NewSegmenter: %v", err)
			}
			defer func() { _ = seg.Close() }()

			got := seg.Config()
			if got.EntryPoint != "edu.stanford.nlp.ie.crf.CRFClassifier" {
				t.Fatalf("unexpected entry point: %q", got.EntryPoint)
			}
			if got.Model != tt.wantModel {
				t.Fatalf("unexpected model: %q, want %q", got.Model, tt.wantModel)
			}
			if !reflect.DeepEqual(got.Sighan, tt.wantSighan) {
				t.Fatalf("unexpected sighan: %+v, want %+v", got.Sighan, tt.wantSighan)
			}
		})
	}
}

func TestSegmenterOptions(t *testing.T) {
	dir := t.TempDir()
	on := true
	cfg := Default()
	cfg.Jar = touch(t, filepath.Join(dir, "stanford-segmenter.jar"))
	cfg.SLF4J = touch(t, filepath.Join(dir, "slf4j-api.jar"))
	cfg.Java = touch(t, filepath.Join(dir, "java"))
	cfg.EntryPoint = "my.Segmenter"
	cfg.Model = "/m/model.gz"
	cfg.Dictionary = "/m/dict.ser.gz"
	cfg.CorporaDir = "/m/data"
	cfg.PostProcessing = &on
	cfg.Encoding = "GB18030"
	if err := cfg.Options.Set("a", 1); err != nil {
		t.Fatal(err)
	}

	seg, err := stanseg.New(cfg.SegmenterOptions(nil)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = seg.Close() }()

	want := []string{
		"my.Segmenter",
		"-loadClassifier", "/m/model.gz",
		"-keepAllWhitespaces", "false",
		"-textFile", "in",
		"-serDictionary", "/m/dict.ser.gz",
		"-sighanCorporaDict", "/m/data",
		"-sighanPostProcessing", "true",
		"-inputEncoding", "GB18030",
		"-options", "a=1",
	}
	if got := seg.Command("in"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected command:\n got %q\nwant %q", got, want)
	}
	if got := seg.Config().Classpath; !reflect.DeepEqual(got, []string{cfg.Jar, cfg.SLF4J}) {
		t.Fatalf("unexpected classpath: %q", got)
	}
}
