// Package fakejava lets a test binary stand in for the java launcher.
//
// A package's TestMain calls Main first; when the binary was re-executed by
// a test through Binary, Main emulates the requested main class and exits.
package fakejava

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// EnvVar marks a re-executed test binary.
const EnvVar = "STANSEG_FAKE_JAVA"

// Main classes understood by the fake launcher.
const (
	// Cat writes the bytes of the -textFile argument to stdout.
	Cat = "fake.Cat"
	// Args writes every program argument on its own line.
	Args = "fake.Args"
	// Flags writes every JVM flag on its own line, then the classpath.
	Flags = "fake.Flags"
	// Fail writes a diagnostic naming the -textFile to stderr and exits 3.
	Fail = "fake.Fail"
	// Sleep blocks for a minute.
	Sleep = "fake.Sleep"
)

// Binary returns a java path that re-executes the current test binary as
// the fake launcher.
func Binary(t testing.TB) string {
	t.Helper()
	t.Setenv(EnvVar, "1")
	return os.Args[0]
}

// Main runs the fake launcher when requested and otherwise returns.
func Main() {
	if os.Getenv(EnvVar) != "1" {
		return
	}
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var flags []string
	for len(argv) > 0 && argv[0] != "-cp" {
		flags = append(flags, argv[0])
		argv = argv[1:]
	}
	if len(argv) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: java [options] -cp <classpath> <mainclass> [args...]")
		return 1
	}
	classpath, mainClass, args := argv[1], argv[2], argv[3:]

	switch mainClass {
	case Cat:
		data, err := os.ReadFile(flagValue(args, "-textFile"))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		_, _ = os.Stdout.Write(data)
	case Args:
		fmt.Print(strings.Join(args, "\n"))
	case Flags:
		fmt.Print(strings.Join(append(flags, classpath), "\n"))
	case Fail:
		fmt.Fprintf(os.Stderr, "Exception: could not load %s\n", flagValue(args, "-textFile"))
		return 3
	case Sleep:
		time.Sleep(time.Minute)
	default:
		fmt.Fprintf(os.Stderr, "Error: Could not find or load main class %s\n", mainClass)
		return 1
	}
	return 0
}

func flagValue(args []string, name string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == name {
			return args[i+1]
		}
	}
	return ""
}
