// Package filetree discovers Dockerfiles under a directory tree for batch
// migration, honoring .gitignore patterns plus a default ignore set.
package filetree

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var defaultIgnores = []string{
	"node_modules/",
	"vendor/",
	"bin/",
	"obj/",
	".git/",
	".DS_Store",
}

// FindDockerfiles walks root and returns the relative paths of every file
// that looks like a Dockerfile: named Dockerfile, Dockerfile.<suffix>, or
// ending in .dockerfile. Entries matched by .gitignore or the default ignore
// set are skipped.
func FindDockerfiles(root string) ([]string, error) {
	ignorePatterns := defaultIgnores
	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		ignorePatterns = append(ignorePatterns, strings.Split(string(data), "\n")...)
	}
	matcher := ignore.CompileIgnoreLines(ignorePatterns...)

	var found []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath != "." && matcher.MatchesPath(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && isDockerfileName(info.Name()) {
			found = append(found, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func isDockerfileName(name string) bool {
	if name == "Dockerfile" || strings.HasPrefix(name, "Dockerfile.") {
		return true
	}
	return strings.HasSuffix(name, ".dockerfile")
}
