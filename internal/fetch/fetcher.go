package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/git-hub-cc/MediaHub/internal/assets"
	"github.com/git-hub-cc/MediaHub/internal/extract"
	"github.com/git-hub-cc/MediaHub/internal/tmdb"
)

// Provider is the TMDb surface the fetcher depends on.
type Provider interface {
	SearchPerson(ctx context.Context, name string) ([]tmdb.Person, error)
	GetPerson(ctx context.Context, id int64) (*tmdb.Person, error)
	SearchCompany(ctx context.Context, name string) ([]tmdb.Company, error)
	DownloadImage(ctx context.Context, imagePath, size, dest string) error
}

// Target describes where a fetch run writes images and how the results are
// recorded. CatalogPrefix is the path prefix stored as the catalog value,
// which may differ from ImageDir when the catalog is read by another host.
type Target struct {
	ImageDir      string
	CatalogPrefix string
	SummaryPath   string
	Existing      assets.Catalog
}

// Tally counts per-entity outcomes of a fetch run. A single run can mix
// all of them; only Failed indicates something worth retrying.
type Tally struct {
	Downloaded int
	Skipped    int
	NotFound   int
	NoImage    int
	Failed     int
}

func (t Tally) String() string {
	return fmt.Sprintf("downloaded=%d skipped=%d not_found=%d no_image=%d failed=%d",
		t.Downloaded, t.Skipped, t.NotFound, t.NoImage, t.Failed)
}

const defaultWorkers = 4

// Fetcher downloads missing artwork from TMDb with a bounded worker pool.
// The catalog summary is rewritten after every successful download so an
// interrupted run can resume without refetching.
type Fetcher struct {
	provider Provider
	workers  int
	log      *slog.Logger

	mu      sync.Mutex
	flushMu sync.Mutex
}

func NewFetcher(provider Provider, workers int, logger *slog.Logger) *Fetcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{provider: provider, workers: workers, log: logger}
}

// FetchPeople downloads profile images for the given people. Entities
// already covered by target.Existing are skipped up front. Per-entity
// failures are logged and tallied, never returned; the error is non-nil
// only when the run could not proceed at all.
func (f *Fetcher) FetchPeople(ctx context.Context, people []extract.Person, target Target) (Tally, error) {
	var tally Tally
	resolver := assets.NewResolver(target.Existing)
	res := NewReservations(target.Existing)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, p := range people {
		if p.Name == "" || resolver.Covered(p.Name) {
			f.count(&tally.Skipped)
			continue
		}
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.fetchPerson(ctx, p, target, res, &tally)
			return nil
		})
	}
	err := g.Wait()
	return tally, err
}

func (f *Fetcher) fetchPerson(ctx context.Context, p extract.Person, target Target, res *Reservations, tally *Tally) {
	if !res.TryReserve(p.Name) {
		f.count(&tally.Skipped)
		return
	}

	person, err := f.resolvePerson(ctx, p)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		f.log.Info("person not found", "name", p.Name)
		f.count(&tally.NotFound)
		return
	case err != nil:
		f.log.Warn("person lookup failed", "name", p.Name, "error", err)
		f.count(&tally.Failed)
		return
	}
	if !person.HasImage() {
		f.log.Info("person has no profile image", "name", p.Name, "id", person.ID)
		f.count(&tally.NoImage)
		return
	}

	id := strconv.FormatInt(person.ID, 10)
	dir := sanitizeName(p.Name) + assets.IDQualifier + id
	shard := nameShard(sanitizeName(p.Name))
	dest := filepath.Join(target.ImageDir, shard, dir, "folder.jpg")
	if err := f.provider.DownloadImage(ctx, person.ProfilePath, tmdb.SizeProfile, dest); err != nil {
		f.log.Warn("image download failed", "name", p.Name, "error", err)
		f.count(&tally.Failed)
		return
	}

	value := path.Join(target.CatalogPrefix, shard, dir, "folder.jpg")
	res.Commit(assets.Key(p.Name, id), value)
	if err := f.flush(res, target.SummaryPath); err != nil {
		f.log.Warn("catalog flush failed", "path", target.SummaryPath, "error", err)
	}
	f.log.Info("downloaded profile image", "name", p.Name, "id", person.ID)
	f.count(&tally.Downloaded)
}

func (f *Fetcher) resolvePerson(ctx context.Context, p extract.Person) (*tmdb.Person, error) {
	if p.TMDBID != "" {
		id, err := strconv.ParseInt(p.TMDBID, 10, 64)
		if err == nil {
			return f.provider.GetPerson(ctx, id)
		}
		f.log.Warn("malformed tmdb id, falling back to search", "name", p.Name, "id", p.TMDBID)
	}
	results, err := f.provider.SearchPerson(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, tmdb.ErrNotFound
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	best := bestMatch(p.Name, names)
	return &results[best], nil
}

// FetchStudios downloads studio logos. Search is by name only; studio
// catalogs carry no upstream ids of their own.
func (f *Fetcher) FetchStudios(ctx context.Context, studios []string, target Target) (Tally, error) {
	var tally Tally
	resolver := assets.NewResolver(target.Existing)
	res := NewReservations(target.Existing)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, name := range studios {
		if name == "" || resolver.Covered(name) {
			f.count(&tally.Skipped)
			continue
		}
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.fetchStudio(ctx, name, target, res, &tally)
			return nil
		})
	}
	err := g.Wait()
	return tally, err
}

func (f *Fetcher) fetchStudio(ctx context.Context, name string, target Target, res *Reservations, tally *Tally) {
	if !res.TryReserve(name) {
		f.count(&tally.Skipped)
		return
	}

	results, err := f.provider.SearchCompany(ctx, name)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		f.log.Info("studio not found", "name", name)
		f.count(&tally.NotFound)
		return
	case err != nil:
		f.log.Warn("studio lookup failed", "name", name, "error", err)
		f.count(&tally.Failed)
		return
	case len(results) == 0:
		f.log.Info("studio not found", "name", name)
		f.count(&tally.NotFound)
		return
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	company := results[bestMatch(name, names)]
	if !company.HasImage() {
		f.log.Info("studio has no logo", "name", name, "id", company.ID)
		f.count(&tally.NoImage)
		return
	}

	dir := sanitizeName(name)
	dest := filepath.Join(target.ImageDir, dir, "landscape.jpg")
	if err := f.provider.DownloadImage(ctx, company.LogoPath, tmdb.SizeOriginal, dest); err != nil {
		f.log.Warn("logo download failed", "name", name, "error", err)
		f.count(&tally.Failed)
		return
	}

	// Studio catalogs key by bare name; consumers look logos up without an
	// id qualifier.
	value := path.Join(target.CatalogPrefix, dir, "landscape.jpg")
	res.Commit(name, value)
	if err := f.flush(res, target.SummaryPath); err != nil {
		f.log.Warn("catalog flush failed", "path", target.SummaryPath, "error", err)
	}
	f.log.Info("downloaded studio logo", "name", name, "id", company.ID)
	f.count(&tally.Downloaded)
}

func (f *Fetcher) count(n *int) {
	f.mu.Lock()
	*n++
	f.mu.Unlock()
}

func (f *Fetcher) flush(res *Reservations, path string) error {
	if path == "" {
		return nil
	}
	f.flushMu.Lock()
	defer f.flushMu.Unlock()
	return res.Snapshot().Save(path)
}

// nameShard groups person directories by the sanitized name's first rune,
// matching the layout ScanPeople walks.
func nameShard(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "#"
}
