//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agent-rules/rules/internal/platform"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	StoreDir  string // RULES_STORE — the store root holding rulesets
	TargetDir string // a mock project directory to mirror into
}

// setupTestEnv creates isolated temp directories and points RULES_STORE at
// the temp store so all operations are sandboxed. The env var is restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		StoreDir:  t.TempDir(),
		TargetDir: t.TempDir(),
	}

	t.Setenv("RULES_STORE", env.StoreDir)

	return env
}

// setupRuleset populates <storeDir>/<name>/ with a manifest and a small
// rules tree. Returns the ruleset directory.
func setupRuleset(t *testing.T, storeDir, name string) string {
	t.Helper()

	dir := filepath.Join(storeDir, name)
	writeFile(t, filepath.Join(dir, "ruleset.yaml"), "name: test-rules\ndescription: Rules used by the integration tests\nversion: 1.0.0\n")
	writeFile(t, filepath.Join(dir, "AGENTS.md"), "# Agents\nTop-level agent rules.\n")
	writeFile(t, filepath.Join(dir, "sub", "RULES.md"), "# Rules\nNested rules.\n")

	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertSymlinkTo fails unless path is a link resolving to target.
func assertSymlinkTo(t *testing.T, path, target string) {
	t.Helper()
	got, err := platform.ReadSymlinkTarget(path)
	if err != nil {
		t.Errorf("expected %s to be a symlink: %v", path, err)
		return
	}
	if got != target {
		t.Errorf("expected %s -> %s, got -> %s", path, target, got)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
