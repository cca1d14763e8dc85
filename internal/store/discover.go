package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agent-rules/rules/internal/manifest"
)

// Ruleset describes one ruleset directory in the store.
type Ruleset struct {
	Name      string                    // directory name, doubles as the target basename
	Path      string                    // path to the ruleset directory
	FileCount int                       // regular files in the subtree
	Manifest  *manifest.RulesetManifest // parsed ruleset.yaml, nil if absent or unparseable
}

// Discover inventories the rulesets under the store root. Every visible
// subdirectory is a ruleset; hidden directories are skipped. A broken
// manifest does not exclude a ruleset, it just loses its metadata.
func Discover(root string) ([]Ruleset, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", root, err)
	}

	var sets []Ruleset
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		dir := filepath.Join(root, e.Name())
		rs := Ruleset{Name: e.Name(), Path: dir}
		if m, err := manifest.Parse(filepath.Join(dir, manifest.FileName)); err == nil {
			rs.Manifest = m
		}
		rs.FileCount = countFiles(dir)
		sets = append(sets, rs)
	}

	return sets, nil
}

// countFiles counts regular files under dir. Inaccessible entries are
// skipped; the count is informational.
func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}
