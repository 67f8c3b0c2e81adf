package linkcheck

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// collectFiles walks root in lexical order and returns the files whose
// extension is listed. Hidden entries and excluded paths are skipped.
func collectFiles(root string, extensions, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		// Skip hidden directories and files
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		if excluded(filepath.ToSlash(rel), exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !hasExtension(d.Name(), extensions) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Symlinks count only when they resolve to a regular file.
			info, statErr := os.Stat(p)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, p)
		return nil
	})
	return files, err
}

func hasExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// excluded reports whether the slash-separated relative path matches one of
// the patterns. "dir/**" matches dir itself so the walk can skip it.
func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if match, _ := path.Match(prefix, rel); match {
				return true
			}
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := path.Match(pattern, path.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}
