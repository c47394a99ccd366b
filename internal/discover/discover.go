// Package discover resolves the input path into the YAML files to read.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var extensions = map[string]struct{}{
	".yaml": {},
	".yml":  {},
}

// Inputs returns the input files for path. A regular file is returned as-is.
// A directory is walked for YAML files, skipping hidden entries, symlinks and
// anything matched by the directory's .gitignore; results are sorted by path.
func Inputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := Files(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no YAML files found", path)
	}

	paths := make([]string, len(files))
	for i, rel := range files {
		paths[i] = filepath.Join(path, rel)
	}
	return paths, nil
}

// Files lists YAML files under root, relative to root.
func Files(root string) ([]string, error) {
	gi := loadGitignore(root)

	var results []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil {
				if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if _, ok := extensions[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		results = append(results, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

// Newest returns the latest modification time among paths.
// ok is false if any path cannot be stat'ed.
func Newest(paths []string) (newest int64, ok bool) {
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return 0, false
		}
		if m := fi.ModTime().UnixNano(); m > newest {
			newest = m
		}
	}
	return newest, true
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
