package jvm

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/jamesainslie/go-stanseg/locate"
)

const javaURL = "https://www.java.com/en/download/"

// JavaEnvVars name the installation roots consulted by FindJava.
var JavaEnvVars = []string{"JAVAHOME", "JAVA_HOME"}

// FindJava resolves the java binary: path if it exists, then each of
// JavaEnvVars (pointing at the binary, its directory or the JDK root), then
// the PATH. lookupEnv may be nil.
func FindJava(path string, lookupEnv func(string) (string, bool)) (string, error) {
	loc := &locate.Locator{LookupEnv: lookupEnv}

	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}

	var binDirs []string
	for _, v := range JavaEnvVars {
		if root, ok := lookup(lookupEnv, v); ok && root != "" {
			binDirs = append(binDirs, filepath.Join(root, "bin"))
		}
	}

	return loc.Find(locate.Query{
		Name:       name,
		Path:       path,
		EnvVars:    JavaEnvVars,
		SearchDirs: binDirs,
		UsePATH:    true,
		URL:        javaURL,
		Hint:       "Java runtime",
	})
}

func lookup(lookupEnv func(string) (string, bool), key string) (string, bool) {
	if lookupEnv == nil {
		return os.LookupEnv(key)
	}
	return lookupEnv(key)
}
