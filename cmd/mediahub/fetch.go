package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/git-hub-cc/MediaHub/internal/assets"
	"github.com/git-hub-cc/MediaHub/internal/config"
	"github.com/git-hub-cc/MediaHub/internal/fetch"
	"github.com/git-hub-cc/MediaHub/internal/tmdb"
)

func init() {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch missing artwork from TMDb",
	}

	actorsCmd := &cobra.Command{
		Use:   "actors",
		Short: "Fetch profile images for actors in the actor report",
		Long: `Reads the actor report, looks each actor up on TMDb, downloads the
profile image, and records it in the updated people summary. The
summary is rewritten after every download so an interrupted run can
resume where it stopped.`,
		Args: cobra.NoArgs,
		RunE: runFetchActors,
	}

	studiosCmd := &cobra.Command{
		Use:   "studios",
		Short: "Fetch logos for studios in the studio report",
		Args:  cobra.NoArgs,
		RunE:  runFetchStudios,
	}

	fetchCmd.AddCommand(actorsCmd)
	fetchCmd.AddCommand(studiosCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runFetchActors(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := tmdbClient(cfg)
	if err != nil {
		return err
	}

	people, err := assets.ParseActorReport(cfg.Reports.Actors)
	if err != nil {
		return fmt.Errorf("reading actor report: %w", err)
	}
	existing, err := resumeCatalog(cfg.Summaries.UpdatedPeople, cfg.Summaries.People)
	if err != nil {
		return fmt.Errorf("loading people catalog: %w", err)
	}

	fetcher := fetch.NewFetcher(client, cfg.TMDB.Workers, logger)
	tally, err := fetcher.FetchPeople(cmd.Context(), people, fetch.Target{
		ImageDir:      cfg.Metadata.PeopleDir,
		CatalogPrefix: cfg.Metadata.PeoplePrefix,
		SummaryPath:   cfg.Summaries.UpdatedPeople,
		Existing:      existing,
	})
	if err != nil {
		return fmt.Errorf("fetching actor images: %w", err)
	}

	fmt.Printf("Fetched actor images: %s\n", tally)
	return nil
}

func runFetchStudios(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	client, err := tmdbClient(cfg)
	if err != nil {
		return err
	}

	studios, err := assets.ParseStudioReport(cfg.Reports.Studios)
	if err != nil {
		return fmt.Errorf("reading studio report: %w", err)
	}
	existing, err := resumeCatalog(cfg.Summaries.UpdatedStudios, cfg.Summaries.Studios)
	if err != nil {
		return fmt.Errorf("loading studio catalog: %w", err)
	}

	fetcher := fetch.NewFetcher(client, cfg.TMDB.Workers, logger)
	tally, err := fetcher.FetchStudios(cmd.Context(), studios, fetch.Target{
		ImageDir:      cfg.Metadata.StudiosDir,
		CatalogPrefix: cfg.Metadata.StudiosPrefix,
		SummaryPath:   cfg.Summaries.UpdatedStudios,
		Existing:      existing,
	})
	if err != nil {
		return fmt.Errorf("fetching studio logos: %w", err)
	}

	fmt.Printf("Fetched studio logos: %s\n", tally)
	return nil
}

// tmdbClient builds the TMDb client from config. The API key comes from the
// config file, the TMDB_API_KEY environment variable, or an interactive
// prompt, in that order.
func tmdbClient(cfg *config.Config) (*tmdb.Client, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		fmt.Fprint(os.Stderr, "TMDb API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("no TMDb API key: set tmdb.api_key in config or the TMDB_API_KEY environment variable")
		}
		apiKey = strings.TrimSpace(line)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no TMDb API key: set tmdb.api_key in config or the TMDB_API_KEY environment variable")
	}
	hc := &http.Client{Timeout: time.Duration(cfg.TMDB.TimeoutSeconds) * time.Second}
	return tmdb.NewClient(apiKey, tmdb.WithHTTPClient(hc)), nil
}

// resumeCatalog seeds a fetch run from the updated summary of a previous,
// possibly interrupted run, falling back to the cataloged state of the disk.
// The base catalog is a required input; only the updated summary may be
// absent.
func resumeCatalog(updatedPath, basePath string) (assets.Catalog, error) {
	catalog, err := assets.LoadCatalog(updatedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return assets.LoadCatalog(basePath)
	}
	return catalog, err
}
