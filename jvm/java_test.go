package jvm

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jamesainslie/go-stanseg/locate"
)

func fakeJDK(t *testing.T) (root, bin string) {
	t.Helper()
	root = t.TempDir()
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	bin = filepath.Join(root, "bin", name)
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root, bin
}

func TestFindJava(t *testing.T) {
	root, bin := fakeJDK(t)

	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{name: "explicit", path: bin},
		{name: "JAVA_HOME root", env: map[string]string{"JAVA_HOME": root}},
		{name: "JAVAHOME bin dir", env: map[string]string{"JAVAHOME": filepath.Dir(bin)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindJava(tt.path, func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if err != nil {
				t.Fatalf("FindJava() error = %v", err)
			}
			if got != bin {
				t.Errorf("FindJava() = %q, want %q", got, bin)
			}
		})
	}
}

func TestFindJava_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := FindJava("", func(string) (string, bool) { return "", false })
	if !errors.Is(err, locate.ErrNotFound) {
		t.Errorf("expected locate.ErrNotFound, got %v", err)
	}
}
