package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rulesets in the store",
	Long:  `List every ruleset in the store with its file count and manifest metadata.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one ruleset for display.
type listEntry struct {
	Name        string `json:"name"`
	Files       int    `json:"files"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	storeRoot, err := store.Resolve(storeFlag)
	if err != nil {
		return err
	}

	if _, err := os.Stat(storeRoot); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Store does not exist yet.")
		return nil
	}

	sets, err := store.Discover(storeRoot)
	if err != nil {
		return fmt.Errorf("discovering rulesets: %w", err)
	}
	if len(sets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rulesets yet.")
		return nil
	}

	var entries []listEntry
	for _, rs := range sets {
		entry := listEntry{
			Name:  rs.Name,
			Files: rs.FileCount,
		}
		if rs.Manifest != nil {
			entry.Version = rs.Manifest.Version
			entry.Description = rs.Manifest.Description
		}
		entries = append(entries, entry)
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILES\tVERSION\tDESCRIPTION")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Files, version, e.Description)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
