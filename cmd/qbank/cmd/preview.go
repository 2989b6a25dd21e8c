package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/qbank/internal/cmd/emoji"
)

var previewCmd = &cobra.Command{
	Use:   "preview <existing-file> <incoming-file>",
	Short: "Preview a merge without writing anything",
	Long: `Preview runs the same computation as merge but writes nothing:
neither input file is touched and no output file is produced. Use it to
inspect the conflicts and the resolution plan before committing.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&mergeStrategy, "strategy", "s", "", "merge strategy (default from config, else skip-duplicates)")
	previewCmd.Flags().BoolVarP(&mergeRenumber, "renumber", "r", false, "renumber incoming records on sequential id conflicts")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	result, _, err := runMergeOrPreview(cmd, args[0], args[1], true)
	if err != nil {
		return err
	}

	fmt.Println(result)
	for _, c := range result.Conflicts {
		fmt.Printf("  [%s] %s\n", c.Type, c.Details)
	}
	if result.Summary.AutoRenumbered {
		for oldID, newID := range result.Summary.RenumberingInfo {
			fmt.Printf("  %s renumber %s -> %s\n", emoji.Info, oldID, newID)
		}
	}
	return nil
}
