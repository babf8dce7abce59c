// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel  string          `toml:"log_level"`
	Library   LibraryConfig   `toml:"library"`
	Summaries SummariesConfig `toml:"summaries"`
	Metadata  MetadataConfig  `toml:"metadata"`
	Reports   ReportsConfig   `toml:"reports"`
	TMDB      TMDBConfig      `toml:"tmdb"`
}

// LibraryConfig describes the scanned media tree and where its index is written.
type LibraryConfig struct {
	Root       string `toml:"root"`
	IndexPath  string `toml:"index_path"`
	MaxMovies  int    `toml:"max_movies"`
	MaxTVShows int    `toml:"max_tv_shows"`
}

// SummariesConfig holds the JSON files each stage writes for the next one.
// UpdatedPeople and UpdatedStudios are where the fetch stage records its
// merged catalog, kept separate so the cataloged state of the disk is never
// overwritten by a partially fetched run.
type SummariesConfig struct {
	Movies         string `toml:"movies"`
	People         string `toml:"people"`
	Studios        string `toml:"studios"`
	Collections    string `toml:"collections"`
	UpdatedPeople  string `toml:"updated_people"`
	UpdatedStudios string `toml:"updated_studios"`
}

// MetadataConfig describes the on-disk artwork directories and the path
// prefixes recorded in the catalogs. Prefixes default to the directories
// themselves; set them separately when the catalogs are consumed by a host
// that mounts the artwork elsewhere.
type MetadataConfig struct {
	PeopleDir      string `toml:"people_dir"`
	StudiosDir     string `toml:"studios_dir"`
	CollectionsDir string `toml:"collections_dir"`
	PeoplePrefix   string `toml:"people_prefix"`
	StudiosPrefix  string `toml:"studios_prefix"`
}

type ReportsConfig struct {
	Actors  string `toml:"actors"`
	Studios string `toml:"studios"`
}

type TMDBConfig struct {
	APIKey         string `toml:"api_key"`
	Workers        int    `toml:"workers"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the configuration used when no config file exists; every
// command can run with zero configuration against the current directory.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Library.Root == "" {
		c.Library.Root = "."
	}
	if c.Library.IndexPath == "" {
		c.Library.IndexPath = "media_index.json"
	}
	if c.Library.MaxMovies == 0 {
		c.Library.MaxMovies = 50000
	}
	if c.Library.MaxTVShows == 0 {
		c.Library.MaxTVShows = 50000
	}
	if c.Summaries.Movies == "" {
		c.Summaries.Movies = "movie_summary.json"
	}
	if c.Summaries.People == "" {
		c.Summaries.People = "people_summary.json"
	}
	if c.Summaries.Studios == "" {
		c.Summaries.Studios = "studios_summary.json"
	}
	if c.Summaries.Collections == "" {
		c.Summaries.Collections = "collections_summary.json"
	}
	if c.Summaries.UpdatedPeople == "" {
		c.Summaries.UpdatedPeople = "updated_people_summary.json"
	}
	if c.Summaries.UpdatedStudios == "" {
		c.Summaries.UpdatedStudios = "updated_studios_summary.json"
	}
	if c.Metadata.PeopleDir == "" {
		c.Metadata.PeopleDir = "config/metadata/People"
	}
	if c.Metadata.StudiosDir == "" {
		c.Metadata.StudiosDir = "config/metadata/Studios"
	}
	if c.Metadata.CollectionsDir == "" {
		c.Metadata.CollectionsDir = "config/metadata/Collections"
	}
	if c.Metadata.PeoplePrefix == "" {
		c.Metadata.PeoplePrefix = c.Metadata.PeopleDir
	}
	if c.Metadata.StudiosPrefix == "" {
		c.Metadata.StudiosPrefix = c.Metadata.StudiosDir
	}
	if c.Reports.Actors == "" {
		c.Reports.Actors = "miss.md"
	}
	if c.Reports.Studios == "" {
		c.Reports.Studios = "missing_studios.md"
	}
	if c.TMDB.Workers == 0 {
		c.TMDB.Workers = 4
	}
	if c.TMDB.TimeoutSeconds == 0 {
		c.TMDB.TimeoutSeconds = 10
	}
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}
	if c.Library.MaxMovies < 0 {
		errs = append(errs, fmt.Sprintf("library.max_movies: must not be negative, got %d", c.Library.MaxMovies))
	}
	if c.Library.MaxTVShows < 0 {
		errs = append(errs, fmt.Sprintf("library.max_tv_shows: must not be negative, got %d", c.Library.MaxTVShows))
	}
	if c.TMDB.Workers < 1 {
		errs = append(errs, fmt.Sprintf("tmdb.workers: must be at least 1, got %d", c.TMDB.Workers))
	}
	if c.TMDB.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout_seconds: must be at least 1, got %d", c.TMDB.TimeoutSeconds))
	}
	return errs
}

// APIKey returns the configured TMDb key, falling back to the
// TMDB_API_KEY environment variable.
func (c *Config) APIKey() string {
	if c.TMDB.APIKey != "" {
		return c.TMDB.APIKey
	}
	return os.Getenv("TMDB_API_KEY")
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}
