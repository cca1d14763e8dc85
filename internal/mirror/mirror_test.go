package mirror

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/agent-rules/rules/internal/platform"
)

// writeFile creates a file with the given content, making parent
// directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s failed: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}

func TestResolveSource(t *testing.T) {
	store := t.TempDir()
	if err := os.MkdirAll(filepath.Join(store, "myproject"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"plain target", filepath.Join("/work", "myproject"), filepath.Join(store, "myproject")},
		{"trailing separator", filepath.Join("/work", "myproject") + string(filepath.Separator), filepath.Join(store, "myproject")},
		{"relative target", "myproject", filepath.Join(store, "myproject")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSource(store, tt.target)
			if err != nil {
				t.Fatalf("ResolveSource failed: %v", err)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("expected absolute source root, got %q", got)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveSourceEmptyTarget(t *testing.T) {
	_, err := ResolveSource(t.TempDir(), "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveSourceMissing(t *testing.T) {
	store := t.TempDir()

	_, err := ResolveSource(store, "/work/nosuch")
	if err == nil {
		t.Fatal("expected error for missing source root")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestResolveSourceNotADirectory(t *testing.T) {
	store := t.TempDir()
	writeFile(t, filepath.Join(store, "myproject"), "not a directory")

	_, err := ResolveSource(store, "/work/myproject")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-directory source, got %v", err)
	}
}

func TestPlanWalksRegularFiles(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")
	writeFile(t, filepath.Join(source, "sub", "RULES.md"), "rules")
	writeFile(t, filepath.Join(source, "sub", "deep", "style.md"), "style")

	tasks, err := Plan(source, target, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	// WalkDir visits lexically, so the order is deterministic.
	wantRels := []string{"AGENTS.md", "sub/RULES.md", "sub/deep/style.md"}
	for i, want := range wantRels {
		if tasks[i].Rel != want {
			t.Errorf("task %d: expected rel %q, got %q", i, want, tasks[i].Rel)
		}
	}

	for _, task := range tasks {
		if !filepath.IsAbs(task.Source) {
			t.Errorf("expected absolute source, got %q", task.Source)
		}
		if _, err := os.Stat(task.Source); err != nil {
			t.Errorf("source %s should exist: %v", task.Source, err)
		}
		wantDest := filepath.Join(target, filepath.FromSlash(task.Rel))
		if task.Dest != wantDest {
			t.Errorf("expected dest %q, got %q", wantDest, task.Dest)
		}
	}
}

func TestPlanSkipsNonRegularEntries(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")
	if err := os.Symlink(filepath.Join(source, "AGENTS.md"), filepath.Join(source, "alias.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(source, "empty"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	tasks, err := Plan(source, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Rel != "AGENTS.md" {
		t.Errorf("expected AGENTS.md, got %q", tasks[0].Rel)
	}
}

func TestPlanEmptySource(t *testing.T) {
	tasks, err := Plan(t.TempDir(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks for empty source, got %d", len(tasks))
	}
}

func TestPlanIgnorePatterns(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")
	writeFile(t, filepath.Join(source, "notes.txt"), "notes")
	writeFile(t, filepath.Join(source, "drafts", "wip.md"), "wip")
	writeFile(t, filepath.Join(source, "drafts", "old.txt"), "old")
	writeFile(t, filepath.Join(source, "sub", "notes.txt"), "nested notes")

	tests := []struct {
		name     string
		patterns []string
		wantRels []string
	}{
		{
			name:     "no patterns",
			patterns: nil,
			wantRels: []string{"AGENTS.md", "drafts/old.txt", "drafts/wip.md", "notes.txt", "sub/notes.txt"},
		},
		{
			name:     "basename glob matches at any depth",
			patterns: []string{"*.txt"},
			wantRels: []string{"AGENTS.md", "drafts/wip.md"},
		},
		{
			name:     "directory glob",
			patterns: []string{"drafts/**"},
			wantRels: []string{"AGENTS.md", "notes.txt", "sub/notes.txt"},
		},
		{
			name:     "exact name",
			patterns: []string{"notes.txt"},
			wantRels: []string{"AGENTS.md", "drafts/old.txt", "drafts/wip.md"},
		},
		{
			name:     "multiple patterns",
			patterns: []string{"*.txt", "drafts/**"},
			wantRels: []string{"AGENTS.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Plan(source, t.TempDir(), tt.patterns)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			var rels []string
			for _, task := range tasks {
				rels = append(rels, task.Rel)
			}
			if len(rels) != len(tt.wantRels) {
				t.Fatalf("expected rels %v, got %v", tt.wantRels, rels)
			}
			for i, want := range tt.wantRels {
				if rels[i] != want {
					t.Errorf("task %d: expected %q, got %q", i, want, rels[i])
				}
			}
		})
	}
}

func TestLinkCreatesSymlinks(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")
	writeFile(t, filepath.Join(source, "sub", "RULES.md"), "rules")

	tasks, err := Plan(source, target, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	created, err := Link(tasks)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if created != 2 {
		t.Errorf("expected 2 links created, got %d", created)
	}

	for _, task := range tasks {
		linkTarget, err := platform.ReadSymlinkTarget(task.Dest)
		if err != nil {
			t.Fatalf("reading link %s failed: %v", task.Dest, err)
		}
		if linkTarget != task.Source {
			t.Errorf("expected link to %q, got %q", task.Source, linkTarget)
		}
	}

	// Reading through the nested link yields the source content.
	content, err := os.ReadFile(filepath.Join(target, "sub", "RULES.md"))
	if err != nil {
		t.Fatalf("reading through link failed: %v", err)
	}
	if string(content) != "rules" {
		t.Errorf("expected content %q, got %q", "rules", string(content))
	}
}

// TestLinkOverwrites verifies that whatever occupies a destination path is
// replaced: stale files, links pointing elsewhere, even directories.
func TestLinkOverwrites(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "fresh")
	writeFile(t, filepath.Join(source, "other.md"), "other")

	tests := []struct {
		name   string
		occupy func(t *testing.T, dest string)
	}{
		{
			name: "regular file",
			occupy: func(t *testing.T, dest string) {
				writeFile(t, dest, "stale copy")
			},
		},
		{
			name: "symlink to another file",
			occupy: func(t *testing.T, dest string) {
				if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
					t.Fatalf("mkdir failed: %v", err)
				}
				if err := platform.CreateSymlink(filepath.Join(source, "other.md"), dest); err != nil {
					t.Fatalf("creating decoy link failed: %v", err)
				}
			},
		},
		{
			name: "non-empty directory",
			occupy: func(t *testing.T, dest string) {
				writeFile(t, filepath.Join(dest, "inner.txt"), "inner")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := t.TempDir()
			dest := filepath.Join(target, "AGENTS.md")
			tt.occupy(t, dest)

			task := Task{
				Source: filepath.Join(source, "AGENTS.md"),
				Dest:   dest,
				Rel:    "AGENTS.md",
			}
			created, err := Link([]Task{task})
			if err != nil {
				t.Fatalf("Link failed: %v", err)
			}
			if created != 1 {
				t.Errorf("expected 1 link created, got %d", created)
			}

			content, err := os.ReadFile(dest)
			if err != nil {
				t.Fatalf("reading through link failed: %v", err)
			}
			if string(content) != "fresh" {
				t.Errorf("expected content %q, got %q", "fresh", string(content))
			}
		})
	}
}

func TestLinkIdempotent(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")

	tasks, err := Plan(source, target, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		created, err := Link(tasks)
		if err != nil {
			t.Fatalf("Link run %d failed: %v", i+1, err)
		}
		if created != 1 {
			t.Errorf("run %d: expected 1 link created, got %d", i+1, created)
		}
	}

	linkTarget, err := platform.ReadSymlinkTarget(filepath.Join(target, "AGENTS.md"))
	if err != nil {
		t.Fatalf("reading link failed: %v", err)
	}
	if linkTarget != tasks[0].Source {
		t.Errorf("expected link to %q, got %q", tasks[0].Source, linkTarget)
	}
}

// TestLinkAbortsOnError verifies that Link stops at the first failure and
// reports how many links it managed before that.
func TestLinkAbortsOnError(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "AGENTS.md"), "agents")
	writeFile(t, filepath.Join(source, "sub", "RULES.md"), "rules")

	// A regular file where a parent directory must go makes MkdirAll fail.
	writeFile(t, filepath.Join(target, "sub"), "in the way")

	tasks, err := Plan(source, target, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	created, err := Link(tasks)
	if err == nil {
		t.Fatal("expected error when parent directory cannot be created")
	}
	if created != 1 {
		t.Errorf("expected 1 link created before failure, got %d", created)
	}
}
