//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// binaries maps each installable binary to its main package.
var binaries = []struct {
	name string
	pkg  string
}{
	{"stanseg", "./cmd/stanseg"},
	{"stanseg-bench", "./cmd/stanseg-bench"},
}

// All runs lint and tests, then builds.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the stanseg and stanseg-bench binaries.
func Build() error {
	st.Deps(Init)
	for _, b := range binaries {
		if err := buildBinary(b.name, b.pkg); err != nil {
			return err
		}
	}
	return nil
}

func buildBinary(name, pkg string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking %s: %w", name, err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, pkg)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		time.Now().Format(time.RFC3339),
	)
}

// Test runs all tests with race detection and coverage. The JVM is faked,
// so no Java installation is needed.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort skips the slower timeout and concurrency tests.
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	for _, tool := range []string{"gofmt", "goimports"} {
		if err := sh.Run(tool, "-w", "."); err != nil {
			return fmt.Errorf("%s: %w", tool, err)
		}
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts and coverage output.
func Clean() error {
	for _, a := range []string{"bin/", "coverage.out", "coverage.html"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds the binaries and copies them to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	dir, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if dir == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		dir = gopath + "/bin"
	}

	for _, b := range binaries {
		dst := dir + "/" + b.name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, "bin/"+b.name); err != nil {
			return fmt.Errorf("installing %s: %w", b.name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", b.name, dst)
		}
	}
	return nil
}

// Bench namespace for scoring against gold-segmented text.
type Bench st.Namespace

// Run scores the language defaults against testdata/gold. Requires
// STANFORD_SEGMENTER to point at an unpacked segmenter distribution;
// STANSEG_LANG picks the language (default zh).
func (Bench) Run() error {
	st.Deps(Build)
	if os.Getenv("STANFORD_SEGMENTER") == "" {
		return fmt.Errorf("STANFORD_SEGMENTER is not set")
	}

	lang := os.Getenv("STANSEG_LANG")
	if lang == "" {
		lang = "zh"
	}
	return sh.RunV("./bin/stanseg-bench", "--lang", lang, "--corpus", "testdata/gold")
}

// Compare ranks the comma-separated model files in STANSEG_MODELS.
func (Bench) Compare() error {
	st.Deps(Build)
	models := os.Getenv("STANSEG_MODELS")
	if models == "" {
		return fmt.Errorf("STANSEG_MODELS is not set")
	}

	args := []string{"--corpus", "testdata/gold", "--parallel", "2"}
	for _, m := range strings.Split(models, ",") {
		args = append(args, "--model", strings.TrimSpace(m))
	}
	return sh.RunV("./bin/stanseg-bench", args...)
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage writes coverage.out and an HTML report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and fails if go.sum changed.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil && output != "" {
		return fmt.Errorf("go.sum is not clean:\n%s", output)
	}
	return nil
}
