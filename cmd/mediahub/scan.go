package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-hub-cc/MediaHub/internal/library"
)

func init() {
	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan the media tree and write the library index",
		Long: `Walks the library root (positional argument, or library.root from the
config, or the current directory), classifies each directory as a movie
or TV show, records the metadata files found in it, and writes the
result to the library index JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	scanCmd.Flags().Int("max-movies", 0, "Cap on classified movies (0 = config value)")
	scanCmd.Flags().Int("max-tv-shows", 0, "Cap on classified TV shows (0 = config value)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	root := cfg.Library.Root
	if len(args) == 1 {
		root = args[0]
	}
	maxMovies, _ := cmd.Flags().GetInt("max-movies")
	if maxMovies == 0 {
		maxMovies = cfg.Library.MaxMovies
	}
	maxTVShows, _ := cmd.Flags().GetInt("max-tv-shows")
	if maxTVShows == 0 {
		maxTVShows = cfg.Library.MaxTVShows
	}

	scanner := library.NewScanner(maxMovies, maxTVShows, logger)
	idx, err := scanner.Scan(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	if err := idx.Save(cfg.Library.IndexPath); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	fmt.Printf("Scanned %s: %d movies, %d TV shows\n", root, len(idx.Movies), len(idx.TVShows))
	fmt.Printf("Index written to %s\n", cfg.Library.IndexPath)
	return nil
}
