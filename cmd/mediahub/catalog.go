package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-hub-cc/MediaHub/internal/assets"
)

func init() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog local artwork into summary JSON files",
	}

	peopleCmd := &cobra.Command{
		Use:   "people",
		Short: "Catalog person artwork directories",
		Args:  cobra.NoArgs,
		RunE:  runCatalogPeople,
	}

	studiosCmd := &cobra.Command{
		Use:   "studios",
		Short: "Catalog studio logo directories",
		Args:  cobra.NoArgs,
		RunE:  runCatalogStudios,
	}

	collectionsCmd := &cobra.Command{
		Use:   "collections",
		Short: "Catalog collection artwork directories",
		Args:  cobra.NoArgs,
		RunE:  runCatalogCollections,
	}

	catalogCmd.AddCommand(peopleCmd)
	catalogCmd.AddCommand(studiosCmd)
	catalogCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogPeople(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	catalog := assets.ScanPeople(cfg.Metadata.PeoplePrefix, cfg.Metadata.PeopleDir, logger)
	if err := catalog.Save(cfg.Summaries.People); err != nil {
		return fmt.Errorf("writing people catalog: %w", err)
	}

	fmt.Printf("Cataloged %d people to %s\n", len(catalog), cfg.Summaries.People)
	return nil
}

func runCatalogStudios(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	catalog := assets.ScanStudios(cfg.Metadata.StudiosPrefix, cfg.Metadata.StudiosDir, logger)
	if err := catalog.Save(cfg.Summaries.Studios); err != nil {
		return fmt.Errorf("writing studio catalog: %w", err)
	}

	fmt.Printf("Cataloged %d studios to %s\n", len(catalog), cfg.Summaries.Studios)
	return nil
}

func runCatalogCollections(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	art := assets.ScanCollections(cfg.Metadata.CollectionsDir, cfg.Metadata.CollectionsDir, logger)
	if err := assets.SaveCollections(cfg.Summaries.Collections, art); err != nil {
		return fmt.Errorf("writing collection catalog: %w", err)
	}

	fmt.Printf("Cataloged %d collections to %s\n", len(art), cfg.Summaries.Collections)
	return nil
}
