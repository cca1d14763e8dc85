package cli

import (
	"fmt"
	"os"

	"github.com/agent-rules/rules/internal/config"
	"github.com/agent-rules/rules/internal/manifest"
	"github.com/agent-rules/rules/internal/mirror"
	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

var (
	doctorCheckLinks    string
	doctorCheckManifest string
	doctorFix           bool
)

func init() {
	doctorCmd.Flags().StringVar(&doctorCheckLinks, "check-links", "", "Verify the symlinks of the given target")
	doctorCmd.Flags().StringVar(&doctorCheckManifest, "check-manifest", "", "Validate a manifest file at the given path")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired (create a missing store root)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the store and its mirrors",
	Long: `Run diagnostic checks on the config, the store, and optionally one
target's links or one manifest file. Without flags, the config and every
ruleset in the store are checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		anyFlag := doctorCheckLinks != "" || doctorCheckManifest != ""

		// If no specific flag, run the store-side checks.
		if !anyFlag {
			storeRoot, err := store.Resolve(storeFlag)
			if err != nil {
				return err
			}
			if err := store.CheckConfig(os.Stdout); err != nil {
				return err
			}
			return store.CheckStore(os.Stdout, storeRoot, doctorFix)
		}

		if doctorCheckLinks != "" {
			if err := runLinksCheck(doctorCheckLinks); err != nil {
				return err
			}
		}
		if doctorCheckManifest != "" {
			if err := runManifestCheck(doctorCheckManifest); err != nil {
				return err
			}
		}

		return nil
	},
}

// runLinksCheck reports the link state of one target the way the status
// command does, under a doctor heading.
func runLinksCheck(targetRoot string) error {
	storeRoot, err := store.Resolve(storeFlag)
	if err != nil {
		return err
	}
	sourceRoot, err := mirror.ResolveSource(storeRoot, targetRoot)
	if err != nil {
		return err
	}

	tasks, err := mirror.Plan(sourceRoot, targetRoot, config.IgnorePatterns())
	if err != nil {
		return err
	}

	fmt.Printf("Link check: %s\n", targetRoot)
	if len(tasks) == 0 {
		fmt.Println("  [INFO] ruleset is empty")
		return nil
	}

	statuses, summary, err := mirror.Status(tasks)
	if err != nil {
		return err
	}
	printStatus(os.Stdout, statuses, summary)
	return nil
}

// runManifestCheck validates one manifest file and fails on findings, so
// scripted checks can gate on the exit code.
func runManifestCheck(path string) error {
	fmt.Printf("Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Printf("  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.Parse(path)
		if err != nil || m.Version == "" {
			fmt.Println("  [ OK ] Valid manifest")
			return nil
		}
		fmt.Printf("  [ OK ] Valid manifest: %s (v%s)\n", m.Name, m.Version)
		return nil
	}

	fmt.Printf("  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Printf("    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Printf("    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d issue(s)", path, len(result.Issues))
}
