package cli

import (
	"fmt"

	"github.com/agent-rules/rules/internal/mirror"
	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

var unlinkDryRun bool

func init() {
	unlinkCmd.Flags().BoolVar(&unlinkDryRun, "dry-run", false, "Show what would be removed without touching anything")
	rootCmd.AddCommand(unlinkCmd)
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <target>",
	Short: "Remove the mirrored symlinks from the target",
	Long: `Remove exactly those symlinks in the target that point back into its
ruleset. Files, directories, and links pointing elsewhere are left alone.
Directories emptied by a removal are pruned up to the target root.

Example:
  rules unlink ~/work/billing-api`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlink,
}

func runUnlink(cmd *cobra.Command, args []string) error {
	targetRoot := args[0]

	storeRoot, err := store.Resolve(storeFlag)
	if err != nil {
		return err
	}
	sourceRoot, err := mirror.ResolveSource(storeRoot, targetRoot)
	if err != nil {
		return err
	}

	// No ignore patterns here: planning the full tree removes links even
	// when the patterns changed since they were created.
	tasks, err := mirror.Plan(sourceRoot, targetRoot, nil)
	if err != nil {
		return err
	}

	if unlinkDryRun {
		statuses, _, err := mirror.Status(tasks)
		if err != nil {
			return err
		}
		count := 0
		for _, s := range statuses {
			if s.State == mirror.StateLinked {
				fmt.Fprintf(cmd.OutOrStdout(), "  would remove %s\n", s.Rel)
				count++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Would remove %d link(s).\n", count)
		return nil
	}

	result, err := mirror.Unlink(tasks, targetRoot)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "  [SKIP] %s (not our link)\n", skipped)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d link(s).\n", result.Removed)

	return nil
}
