package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agent-rules/rules/internal/platform"
)

// UnlinkResult summarizes an unlink pass.
type UnlinkResult struct {
	Removed int      // links removed
	Skipped []string // destinations left in place because they are not our links
}

// Unlink removes exactly those destinations that are symlinks resolving to
// their task's source file. Entries in any other state are left untouched and
// recorded in Skipped. Parent directories emptied by a removal are pruned up
// to (but never including) targetRoot.
func Unlink(tasks []Task, targetRoot string) (*UnlinkResult, error) {
	result := &UnlinkResult{}

	for _, t := range tasks {
		info, err := os.Lstat(t.Dest)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // never linked, nothing to do
			}
			return result, fmt.Errorf("inspecting %s: %w", t.Dest, err)
		}

		if info.Mode()&fs.ModeSymlink == 0 {
			result.Skipped = append(result.Skipped, t.Dest)
			continue
		}

		target, err := platform.ReadSymlinkTarget(t.Dest)
		if err != nil || target != t.Source {
			// A link, but not ours.
			result.Skipped = append(result.Skipped, t.Dest)
			continue
		}

		if err := platform.RemoveSymlink(t.Dest); err != nil {
			return result, fmt.Errorf("removing %s: %w", t.Dest, err)
		}
		result.Removed++

		pruneEmptyDirs(filepath.Dir(t.Dest), targetRoot)
	}

	return result, nil
}

// pruneEmptyDirs removes dir and its ancestors while they are empty,
// stopping at root (which is never removed) or at the first non-empty
// directory. Failures end the pruning silently; they only mean a directory
// stays behind.
func pruneEmptyDirs(dir, root string) {
	root = filepath.Clean(root)
	for dir = filepath.Clean(dir); dir != root; dir = filepath.Dir(dir) {
		if dir == filepath.Dir(dir) {
			return // reached the filesystem root
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}
