package mirror

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/agent-rules/rules/internal/platform"
	"github.com/bmatcuk/doublestar/v4"
)

// Task pairs one source file with the destination path of its link.
type Task struct {
	Source string // absolute path to the source file
	Dest   string // link path under the target root
	Rel    string // path relative to the source root (slash-separated)
}

// ResolveSource derives the source root for a target project:
// <storeRoot>/<basename(targetRoot)>. The returned path is absolute so that
// created links survive a later change of working directory.
func ResolveSource(storeRoot, targetRoot string) (string, error) {
	if targetRoot == "" {
		return "", ErrInvalidArgument
	}

	src := filepath.Join(storeRoot, filepath.Base(targetRoot))
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("resolving source root %s: %w", src, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("source root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("source root %s is not a directory: %w", abs, ErrNotFound)
	}

	return abs, nil
}

// Plan walks sourceRoot and returns one task per regular file, in lexical
// order. Symlinks and directories are traversal nodes, never linkable leaves.
// Ignore patterns are doublestar globs matched against the slash-separated
// relative path; a bare pattern like "*.tmp" also matches by base name.
func Plan(sourceRoot, targetRoot string, ignore []string) ([]Task, error) {
	if targetRoot == "" {
		return nil, ErrInvalidArgument
	}

	var tasks []Task
	err := filepath.WalkDir(sourceRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(sourceRoot, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		if ignored(rel, ignore) {
			return nil
		}

		tasks = append(tasks, Task{
			Source: p,
			Dest:   filepath.Join(targetRoot, filepath.FromSlash(rel)),
			Rel:    rel,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source root %s: %w", sourceRoot, err)
	}

	return tasks, nil
}

// Link creates the planned links, replacing whatever occupies each
// destination. It returns the number of links created before the first
// unrecoverable error; the whole pass aborts on that error.
func Link(tasks []Task) (int, error) {
	created := 0
	for _, t := range tasks {
		if err := os.MkdirAll(filepath.Dir(t.Dest), 0755); err != nil {
			return created, fmt.Errorf("creating directory for %s: %w", t.Dest, err)
		}

		// Forced overwrite: whatever sits at the destination loses.
		if err := os.RemoveAll(t.Dest); err != nil {
			return created, fmt.Errorf("replacing %s: %w", t.Dest, err)
		}
		if err := platform.CreateSymlink(t.Source, t.Dest); err != nil {
			return created, fmt.Errorf("linking %s: %w", t.Dest, err)
		}
		created++
	}
	return created, nil
}

// ignored reports whether rel matches any of the given doublestar patterns.
func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
		// "*.tmp" should also catch sub/x.tmp without requiring "**/".
		if matched, err := doublestar.Match(p, path.Base(rel)); err == nil && matched {
			return true
		}
	}
	return false
}
