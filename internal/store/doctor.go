package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agent-rules/rules/internal/config"
	"github.com/agent-rules/rules/internal/manifest"
	"github.com/agent-rules/rules/internal/platform"
)

// CheckStore validates the store root and spot-checks every ruleset in it.
// When fix is true, a missing store root is created.
func CheckStore(w io.Writer, root string, fix bool) error {
	fmt.Fprintln(w, "Store check:")

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		if fix {
			if mkErr := os.MkdirAll(root, 0755); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", root, mkErr)
				return nil
			}
			platform.Chmod(root, 0755)
			fmt.Fprintf(w, "  [FIX ] Created %s\n", root)
		} else {
			fmt.Fprintln(w, "         Create the directory or point the store elsewhere with 'rules config set store <path>'")
			return nil
		}
	} else if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", root, err)
		return nil
	} else if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", root)
		return nil
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", root)
	}

	sets, err := Discover(root)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] reading store: %v\n", err)
		return nil
	}
	if len(sets) == 0 {
		fmt.Fprintln(w, "  [INFO] store is empty; 'rules new <name>' creates a ruleset")
		return nil
	}

	for _, rs := range sets {
		manifestPath := filepath.Join(rs.Path, manifest.FileName)
		if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
			fmt.Fprintf(w, "  [INFO] %s (%d files, no manifest)\n", rs.Name, rs.FileCount)
			continue
		}

		result, err := manifest.ValidateFile(manifestPath)
		if err != nil {
			fmt.Fprintf(w, "  [WARN] %s: manifest unreadable: %v\n", rs.Name, err)
			continue
		}
		if !result.Valid {
			fmt.Fprintf(w, "  [WARN] %s: manifest has %d issue(s)\n", rs.Name, len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(w, "         %s: %s\n", issue.Path, issue.Message)
			}
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s (%d files)\n", rs.Name, rs.FileCount)
	}

	return nil
}

// CheckConfig reports on the user-level config file and the keys the
// mirror relies on.
func CheckConfig(w io.Writer) error {
	fmt.Fprintln(w, "Config check:")

	path := config.FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [INFO] %s not present (defaults in effect)\n", path)
	} else if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return nil
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	}

	if store := config.Get("store"); store != "" {
		fmt.Fprintf(w, "  [ OK ] store = %s\n", store)
	} else {
		fmt.Fprintln(w, "  [INFO] store not set; falling back to environment or working directory")
	}
	if patterns := config.IgnorePatterns(); len(patterns) > 0 {
		fmt.Fprintf(w, "  [INFO] %d ignore pattern(s) configured\n", len(patterns))
	}

	return nil
}
