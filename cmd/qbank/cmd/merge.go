package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/qbank/internal/cmd/emoji"
	"github.com/agentstation/qbank/internal/config"
	"github.com/agentstation/qbank/pkg/logging"
	"github.com/agentstation/qbank/pkg/merge"
	"github.com/agentstation/qbank/pkg/questions"
)

var (
	mergeStrategy string
	mergeRenumber bool
	mergeOutput   string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <existing-file> <incoming-file>",
	Short: "Merge an incoming question file into an existing one",
	Long: `Merge reconciles two question files under the chosen strategy and
writes the merged collection to the output file.

Strategies:
  skip-duplicates     drop incoming records that collide
  overwrite           incoming records replace existing ones on id collision
  keep-both-renumber  renumber incoming records past the existing ids
  reject              abort if any conflict exists`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeStrategy, "strategy", "s", "", "merge strategy (default from config, else skip-duplicates)")
	mergeCmd.Flags().BoolVarP(&mergeRenumber, "renumber", "r", false, "renumber incoming records on sequential id conflicts (default from config)")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file (defaults to the existing file)")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	result, out, err := runMergeOrPreview(cmd, args[0], args[1], false)
	if err != nil {
		return err
	}

	if err := questions.Save(out, result.Merged); err != nil {
		return err
	}
	fmt.Println(result)
	fmt.Printf("%s wrote %d records to %s\n", emoji.Success, result.FinalCount, out)
	return nil
}

// runMergeOrPreview loads both files and runs the engine; shared by the
// merge and preview commands.
func runMergeOrPreview(cmd *cobra.Command, existingPath, incomingPath string, dryRun bool) (*merge.Result, string, error) {
	strategy, err := resolveStrategy()
	if err != nil {
		return nil, "", err
	}
	doRenumber := resolveRenumber(cmd)

	operation := "merge"
	if dryRun {
		operation = "preview"
	}
	ctx := logging.WithOperation(cmd.Context(), operation)
	ctx = logging.WithStrategy(ctx, strategy.String())

	existing, err := loadFile(ctx, existingPath)
	if err != nil {
		return nil, "", err
	}
	incoming, err := loadFile(ctx, incomingPath)
	if err != nil {
		return nil, "", err
	}

	engine := merge.New(merge.WithLogger(logging.Ctx(ctx)))

	var result *merge.Result
	if dryRun {
		result, err = engine.Preview(existing, incoming, strategy, doRenumber)
	} else {
		result, err = engine.Merge(existing, incoming, strategy, doRenumber)
	}
	if err != nil {
		// Surface the conflict list before failing; the caller picks a
		// different strategy and retries.
		if result != nil && result.HasConflicts() {
			for _, c := range result.Conflicts {
				fmt.Printf("  %s [%s] %s\n", emoji.Error, c.Type, c.Details)
			}
		}
		return nil, "", err
	}

	out := mergeOutput
	if out == "" {
		out = existingPath
	}
	return result, out, nil
}

// loadFile loads a question file, logging through the file-scoped logger.
func loadFile(ctx context.Context, path string) ([]questions.Question, error) {
	fileCtx := logging.WithFile(ctx, path)
	records, err := questions.Load(path)
	if err != nil {
		logging.FromContext(logging.WithError(fileCtx, err)).Error().Msg("Failed to load question file")
		return nil, err
	}
	logging.FromContext(fileCtx).Debug().Int("records", len(records)).Msg("Loaded question file")
	return records, nil
}

// resolveStrategy picks the strategy from the flag, then config, then the
// default.
func resolveStrategy() (merge.Strategy, error) {
	name := mergeStrategy
	if name == "" {
		name = config.DefaultStrategy()
	}
	return merge.ParseStrategy(name)
}

// resolveRenumber picks the renumber setting from the flag when given,
// otherwise from config.
func resolveRenumber(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("renumber") {
		return mergeRenumber
	}
	return config.DefaultRenumber()
}
