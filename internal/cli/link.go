package cli

import (
	"fmt"

	"github.com/agent-rules/rules/internal/config"
	"github.com/agent-rules/rules/internal/mirror"
	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

var (
	linkDryRun    bool
	linkIgnore    []string
	linkGitignore bool
)

func init() {
	linkCmd.Flags().BoolVar(&linkDryRun, "dry-run", false, "Show what would be linked without creating anything")
	linkCmd.Flags().StringArrayVar(&linkIgnore, "ignore", nil, "Glob pattern to skip (repeatable)")
	linkCmd.Flags().BoolVar(&linkGitignore, "gitignore", false, "Add the linked entries to the target's .gitignore")
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link <target>",
	Short: "Mirror the target's ruleset into it as symlinks",
	Long: `Mirror the ruleset named after the target directory into the target as
symlinks. The source is <store>/<basename(target)>; every regular file in it
becomes a symlink at the same relative path under the target. Whatever
occupies a destination path is replaced.

Example:
  rules link ~/work/billing-api
  rules link ~/work/billing-api --ignore '*.draft.md' --gitignore`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func runLink(cmd *cobra.Command, args []string) error {
	targetRoot := args[0]

	storeRoot, err := store.Resolve(storeFlag)
	if err != nil {
		return err
	}
	sourceRoot, err := mirror.ResolveSource(storeRoot, targetRoot)
	if err != nil {
		return err
	}

	patterns := append(config.IgnorePatterns(), linkIgnore...)
	tasks, err := mirror.Plan(sourceRoot, targetRoot, patterns)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to link.")
		return nil
	}

	if linkDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would link %d file(s) from %s:\n", len(tasks), sourceRoot)
		for _, t := range tasks {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", t.Rel, t.Source)
		}
		return nil
	}

	created, err := mirror.Link(tasks)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Linked %d file(s) from %s.\n", created, sourceRoot)

	if linkGitignore {
		added, err := mirror.AppendGitignore(targetRoot, tasks)
		if err != nil {
			return err
		}
		if added > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d line(s) to .gitignore.\n", added)
		}
	}

	return nil
}
