package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GitignoreLines returns the gitignore lines covering the planned tasks, one
// per distinct top-level entry under the target root: "/name" for a file that
// sits directly in the root, "/name/" for a directory subtree. Lines are
// anchored with a leading slash so they only match at the root.
func GitignoreLines(tasks []Task) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, t := range tasks {
		var line string
		if i := strings.Index(t.Rel, "/"); i >= 0 {
			line = "/" + t.Rel[:i] + "/"
		} else {
			line = "/" + t.Rel
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

// AppendGitignore appends the lines for the planned tasks to the target
// root's .gitignore, creating the file if it does not exist. Lines already
// present are left alone. Returns the number of lines added.
func AppendGitignore(targetRoot string, tasks []Task) (int, error) {
	gitignorePath := filepath.Join(targetRoot, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("reading .gitignore: %w", err)
	}

	existing := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(l)] = true
	}

	var missing []string
	for _, line := range GitignoreLines(tasks) {
		if !existing[line] {
			missing = append(missing, line)
		}
	}
	if len(missing) == 0 {
		return 0, nil // everything already present
	}

	// Ensure there's a newline before our additions.
	suffix := strings.Join(missing, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return 0, fmt.Errorf("writing to .gitignore: %w", err)
	}

	return len(missing), nil
}
