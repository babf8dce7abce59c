package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-hub-cc/MediaHub/internal/assets"
	"github.com/git-hub-cc/MediaHub/internal/extract"
	"github.com/git-hub-cc/MediaHub/internal/library"
)

func init() {
	missingCmd := &cobra.Command{
		Use:   "missing",
		Short: "Report entities whose artwork is missing",
	}

	actorsCmd := &cobra.Command{
		Use:   "actors",
		Short: "Report actors without cataloged artwork",
		Long: `Collects every actor referenced by the library's NFO files, checks
each one against the people catalog, and writes the uncovered ones to
the actor report. An actor with a thumb in its NFO counts as covered.`,
		Args: cobra.NoArgs,
		RunE: runMissingActors,
	}

	studiosCmd := &cobra.Command{
		Use:   "studios",
		Short: "Report studios without cataloged logos",
		Args:  cobra.NoArgs,
		RunE:  runMissingStudios,
	}

	missingCmd.AddCommand(actorsCmd)
	missingCmd.AddCommand(studiosCmd)
	rootCmd.AddCommand(missingCmd)
}

func runMissingActors(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	idx, err := library.LoadIndex(cfg.Library.IndexPath)
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}
	catalog, err := assets.LoadCatalog(cfg.Summaries.People)
	if err != nil {
		return fmt.Errorf("loading people catalog (run 'catalog people' first): %w", err)
	}

	entities := extract.NewExtractor(logger).Entities(cfg.Library.Root, idx)
	missing := assets.NewResolver(catalog).MissingPeople(entities.People)
	if err := assets.WriteActorReport(cfg.Reports.Actors, missing); err != nil {
		return fmt.Errorf("writing actor report: %w", err)
	}

	fmt.Printf("%d of %d actors missing artwork, report written to %s\n",
		len(missing), len(entities.People), cfg.Reports.Actors)
	return nil
}

func runMissingStudios(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	idx, err := library.LoadIndex(cfg.Library.IndexPath)
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}
	catalog, err := assets.LoadCatalog(cfg.Summaries.Studios)
	if err != nil {
		return fmt.Errorf("loading studio catalog (run 'catalog studios' first): %w", err)
	}

	entities := extract.NewExtractor(logger).Entities(cfg.Library.Root, idx)
	missing := assets.NewResolver(catalog).MissingStudios(entities.Studios)
	if err := assets.WriteStudioReport(cfg.Reports.Studios, missing); err != nil {
		return fmt.Errorf("writing studio report: %w", err)
	}

	fmt.Printf("%d of %d studios missing logos, report written to %s\n",
		len(missing), len(entities.Studios), cfg.Reports.Studios)
	return nil
}
