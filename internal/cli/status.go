package cli

import (
	"fmt"
	"io"

	"github.com/agent-rules/rules/internal/config"
	"github.com/agent-rules/rules/internal/mirror"
	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <target>",
	Short: "Show the link state of the target's mirror",
	Long: `Compare the target against its ruleset and report every file as one of:
linked (symlink resolves to the source), missing (no entry), conflict
(something else occupies the path), or broken (symlink to a dead target).

Findings do not change the exit code; only operational failures do.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	targetRoot := args[0]

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
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Ruleset is empty; nothing to report.")
		return nil
	}

	statuses, summary, err := mirror.Status(tasks)
	if err != nil {
		return err
	}

	printStatus(cmd.OutOrStdout(), statuses, summary)
	return nil
}

// printStatus renders per-file states and a one-line summary. Shared with
// the doctor --check-links report.
func printStatus(w io.Writer, statuses []mirror.TaskStatus, summary mirror.Summary) {
	for _, s := range statuses {
		fmt.Fprintf(w, "  %s %s\n", stateTag(s.State), s.Rel)
	}
	fmt.Fprintf(w, "%d linked, %d missing, %d conflict(s), %d broken\n",
		summary.Linked, summary.Missing, summary.Conflict, summary.Broken)
}

// stateTag maps a link state to its fixed-width display tag.
func stateTag(state mirror.State) string {
	switch state {
	case mirror.StateLinked:
		return "[ OK ]"
	case mirror.StateMissing:
		return "[MISS]"
	case mirror.StateConflict:
		return "[CONF]"
	case mirror.StateBroken:
		return "[BRKN]"
	}
	return "[????]"
}
