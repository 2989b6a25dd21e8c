package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/qbank/pkg/conflict"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/renumber"
)

var detectCmd = &cobra.Command{
	Use:   "detect <existing-file> <incoming-file>",
	Short: "Detect conflicts between two question files",
	Long: `Detect compares an incoming question file against an existing one
and lists every identifier collision and content duplicate, along with
the sequential-id heuristic and the next available identifier.`,
	Args: cobra.ExactArgs(2),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := logging.WithOperation(cmd.Context(), "detect")

	existing, err := loadFile(ctx, args[0])
	if err != nil {
		return err
	}
	incoming, err := loadFile(ctx, args[1])
	if err != nil {
		return err
	}

	report := conflict.Detect(existing, incoming)
	logging.Ctx(ctx).Debug().Int("conflicts", len(report)).Msg("Detection complete")
	fmt.Println(report.Summary())
	for _, c := range report {
		fmt.Printf("  [%s] %s\n", c.Type, c.Details)
	}

	if conflict.HasSequentialIDConflicts(existing, incoming) {
		fmt.Printf("sequential id conflicts present; next available id is %d\n",
			renumber.NextAvailableID(existing))
	}
	return nil
}
