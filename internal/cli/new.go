package cli

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/agent-rules/rules/internal/branding"
	"github.com/agent-rules/rules/internal/scaffold"
	"github.com/agent-rules/rules/internal/store"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var newDescription string

func init() {
	newCmd.Flags().StringVar(&newDescription, "description", "", "One-line description for the manifest")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new ruleset in the store",
	Long: `Create a new ruleset directory in the store with a manifest and a starter
rules file. The name should match the directory name of the project that
will link it.

Example:
  rules new billing-api --description "Rules for the billing service"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		storeRoot, err := store.Resolve(storeFlag)
		if err != nil {
			return err
		}
		outDir := filepath.Join(storeRoot, name)

		data := scaffold.NewData(name, newDescription)
		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}

		printResult(result)

		fmt.Println("\nNext steps:")
		fmt.Println("  1. Add rule files under " + result.OutputDir)
		fmt.Printf("  2. Run '%s link <path-to-%s>' to mirror them into the project\n", branding.CLIName(), name)
		return nil
	},
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
	}
	return nil
}

func printResult(result *scaffold.Result) {
	fmt.Printf("Created ruleset at %s/\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}
