package cmd

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/qbank/internal/cmd/emoji"
	"github.com/agentstation/qbank/pkg/errors"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/questions"
	"github.com/agentstation/qbank/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate question files against the schema",
	Long: `Validate loads one or more question files (YAML or JSON) and runs
every record through the schema validator, reporting all errors per
record rather than stopping at the first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// fileReport pairs a validation report with its input file. The index is
// the file's position in the argument list, so reports print in the
// order the files were given regardless of completion order.
type fileReport struct {
	index  int
	path   string
	report *validate.Report
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := logging.WithOperation(cmd.Context(), "validate")

	reports, err := validateFiles(ctx, args)
	if err != nil {
		return err
	}

	failed := 0
	for _, fr := range reports {
		symbol := emoji.Success
		if !fr.report.AllValid() {
			symbol = emoji.Error
			failed++
		}
		fmt.Printf("%s %s: %s\n", symbol, fr.path, fr.report.Summary())
		for _, entry := range fr.report.Questions {
			for _, w := range entry.Warnings {
				fmt.Printf("  %s [%d] %s (id %s): %s\n", emoji.Warning, entry.Index, entry.Title, entry.ID, w)
			}
			if entry.Valid {
				continue
			}
			fmt.Printf("  %s [%d] %s (id %s):\n", emoji.Error, entry.Index, entry.Title, entry.ID)
			for _, e := range entry.Errors {
				fmt.Printf("    - %s\n", e)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files contain invalid records: %w",
			failed, len(reports), errors.ErrInvalidInput)
	}
	return nil
}

// validateFiles validates the given files concurrently and returns their
// reports in input order.
func validateFiles(ctx context.Context, paths []string) ([]fileReport, error) {
	var (
		mu      sync.Mutex
		reports []fileReport
	)

	// Files are independent; validate them concurrently.
	group, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fileCtx := logging.WithFile(ctx, path)
			records, err := questions.Load(path)
			if err != nil {
				return err
			}
			report, err := validate.Collection(records)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logging.FromContext(fileCtx).Debug().Int("records", report.Total).Msg("Validated file")
			mu.Lock()
			reports = append(reports, fileReport{index: i, path: path, report: report})
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(a, b int) bool { return reports[a].index < reports[b].index })
	return reports, nil
}
