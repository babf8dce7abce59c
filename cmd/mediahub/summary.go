package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-hub-cc/MediaHub/internal/extract"
	"github.com/git-hub-cc/MediaHub/internal/library"
)

func init() {
	summaryCmd := &cobra.Command{
		Use:   "summary [root]",
		Short: "Summarize movie metadata from the library index",
		Long: `Reads the library index, parses each movie's NFO, and writes a
summary JSON with the movie's files and metadata, sorted by year
descending. Movies with incomplete files are skipped with a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummary,
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	root := cfg.Library.Root
	if len(args) == 1 {
		root = args[0]
	}

	idx, err := library.LoadIndex(cfg.Library.IndexPath)
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	extractor := extract.NewExtractor(logger)
	summaries := extractor.Summarize(root, idx)
	if err := extract.SaveSummaries(cfg.Summaries.Movies, summaries); err != nil {
		return fmt.Errorf("writing summaries: %w", err)
	}

	fmt.Printf("Summarized %d of %d movies to %s\n", len(summaries), len(idx.Movies), cfg.Summaries.Movies)
	return nil
}
