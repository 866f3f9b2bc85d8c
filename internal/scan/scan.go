// Package scan enumerates the input files for a run. Directory scans are
// recursive, filtered to known media extensions, and deterministic: WalkDir
// visits entries in lexical order, so outcome ordering is stable across runs.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls directory enumeration.
type Options struct {
	// Extensions is the lowercase, dot-prefixed media extension allowlist.
	Extensions []string
	// SkipDirName names a directory to skip wherever it appears under the
	// root, used to keep a previous run's output tree out of the scan.
	SkipDirName string
}

// Dir walks root recursively and returns matching media file paths in
// lexical walk order. Hidden files and directories are skipped.
func Dir(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", root)
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[ext] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := entry.Name()
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || (opts.SkipDirName != "" && name == opts.SkipDirName) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}

// File validates a single explicit input path. Unlike directory scans it
// applies no extension filter; the probe decides whether the file is media.
func File(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input file: %s is a directory", path)
	}
	return []string{path}, nil
}
