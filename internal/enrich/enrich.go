// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich refreshes canonical records from the bibliometric
// source. Enrichment must never clobber a higher-trust submitted value:
// bibliometric counters are always overwritten, everything else only
// fills gaps.
package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-directory/internal/directory"
	"github.com/pdiddy/scholar-directory/internal/images"
	"github.com/pdiddy/scholar-directory/internal/scholar"
	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// now returns the current time. Declared as a var so tests can pin the
// enrichment date.
var now = time.Now

// dateLayout is the lastupdate format.
const dateLayout = "2006-01-02"

// Lookup is the bibliometric source. *scholar.Client is the production
// implementation.
type Lookup interface {
	Lookup(ctx context.Context, id string) (scholar.Author, error)
}

// PhotoAcquirer downloads a photo to a local asset path, degrading to
// the default image path on failure.
type PhotoAcquirer interface {
	Acquire(url, destPath string) string
}

// Normalizer produces standardized interest labels.
type Normalizer interface {
	Normalize(raw []string) []string
}

// Enricher runs one enrichment pass over the canonical store.
type Enricher struct {
	Source     Lookup
	Photos     PhotoAcquirer
	Normalizer Normalizer
	Store      *directory.Store
	Audit      *directory.Audit

	// ImagesDir and DefaultImage configure photo placement.
	ImagesDir    string
	DefaultImage string

	// Delay is the pause between consecutive lookups.
	Delay time.Duration

	Log zerolog.Logger
}

// Run iterates the store sequentially, enriching each record with a
// parseable Scholar identifier. Per-record lookup failures are logged
// and skipped; the store is persisted after every record so a crash
// mid-run loses no prior progress. Only store I/O failures abort the
// batch.
func (e *Enricher) Run(ctx context.Context) (types.EnrichSummary, error) {
	records, err := e.Store.Load()
	if err != nil {
		return types.EnrichSummary{}, err
	}

	var summary types.EnrichSummary
	date := now().Format(dateLayout)

	for i := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}
		if i > 0 && e.Delay > 0 {
			time.Sleep(e.Delay)
		}

		rec := &records[i]
		id, ok := scholar.ExtractUserID(rec.Scholar)
		if !ok {
			// Not fatal for the batch. A never-enriched record gets its
			// bibliometric fields pinned to their empty initial values.
			if !rec.Enriched() {
				rec.LastUpdate = ""
				rec.CitedBy = 0
			}
			summary.NotFound++
			e.Log.Info().Str("name", rec.Name).Msg("no scholar identifier, not found")
		} else if author, err := e.Source.Lookup(ctx, id); err != nil {
			summary.Failed++
			e.Log.Error().Str("name", rec.Name).Err(err).Msg("lookup failed, skipping record")
		} else {
			e.apply(rec, author, date)
			summary.Enriched++
		}

		if err := e.Store.Save(records); err != nil {
			return summary, fmt.Errorf("persisting store: %w", err)
		}
	}

	if err := e.Store.Save(records); err != nil {
		return summary, fmt.Errorf("persisting store: %w", err)
	}

	e.Log.Info().
		Int("enriched", summary.Enriched).
		Int("not_found", summary.NotFound).
		Int("failed", summary.Failed).
		Msg("enrichment pass complete")
	return summary, nil
}

// apply folds one fetched author into a record under enrichment
// precedence: counters always win, profile fields only fill gaps.
func (e *Enricher) apply(rec *types.Researcher, author scholar.Author, date string) {
	// Bibliometric fields have no "present" gate; a fetched 0 is as
	// valid as any other number. The h-index change is the observable
	// event reviewers care about.
	if author.HIndex != rec.HIndex {
		e.Log.Info().Str("name", rec.Name).
			Int("old", rec.HIndex).Int("new", author.HIndex).
			Msg("h-index changed")
		e.audit(rec.Name, "hindex", strconv.Itoa(rec.HIndex), strconv.Itoa(author.HIndex))
	}
	if author.CitedBy != rec.CitedBy {
		e.audit(rec.Name, "citedby", strconv.Itoa(rec.CitedBy), strconv.Itoa(author.CitedBy))
	}
	rec.HIndex = author.HIndex
	rec.CitedBy = author.CitedBy
	rec.LastUpdate = date

	if sentinel.Absent(rec.Affiliation) && !sentinel.Absent(author.Affiliation) {
		e.Log.Info().Str("name", rec.Name).Str("affiliation", author.Affiliation).Msg("filling affiliation")
		e.audit(rec.Name, "affiliation", rec.Affiliation, author.Affiliation)
		rec.Affiliation = author.Affiliation
	}

	if sentinel.Absent(rec.Photo) || rec.Photo == e.DefaultImage {
		e.acquirePhoto(rec, author.PictureURL)
	}

	if sentinel.Absent(rec.Website) && !sentinel.Absent(author.Homepage) {
		e.Log.Info().Str("name", rec.Name).Str("website", author.Homepage).Msg("filling website")
		e.audit(rec.Name, "website", rec.Website, author.Homepage)
		rec.Website = author.Homepage
	}

	if len(rec.Interests) == 0 && len(author.Interests) > 0 {
		e.audit(rec.Name, "interests", "", strings.Join(author.Interests, ", "))
		rec.Interests = author.Interests
	}

	if len(rec.StandardizedInterests) == 0 && len(author.Interests) > 0 {
		standardized := e.Normalizer.Normalize(author.Interests)
		e.audit(rec.Name, "standardized_interests", "", strings.Join(standardized, ", "))
		rec.StandardizedInterests = standardized
	}
}

// acquirePhoto re-fetches the record's photo from the source picture
// URL. A failed acquisition never downgrades the record: the default
// path is only assigned when the stored photo is absent.
func (e *Enricher) acquirePhoto(rec *types.Researcher, pictureURL string) {
	if sentinel.Absent(pictureURL) {
		return
	}
	e.Log.Info().Str("name", rec.Name).Msg("downloading photo")
	got := e.Photos.Acquire(pictureURL, images.PathFor(e.ImagesDir, rec.Name))
	if got == e.DefaultImage && !sentinel.Absent(rec.Photo) {
		return
	}
	if got != rec.Photo {
		e.audit(rec.Name, "photo", rec.Photo, got)
	}
	rec.Photo = got
}

func (e *Enricher) audit(name, field, oldValue, newValue string) {
	if err := e.Audit.Record("enrich", name, field, oldValue, newValue); err != nil {
		e.Log.Warn().Err(err).Msg("audit write failed")
	}
}
