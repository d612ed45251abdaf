// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// Merge folds update candidates into the canonical records field by field
// and appends new candidates afterwards, in classification order. It
// returns the updated collection; records are never deleted.
//
// Precedence: a candidate field overwrites only when its value is present,
// and a candidate photo equal to defaultImage counts as absent so a
// "no photo submitted this time" never clobbers a previously acquired
// one. HIndex and CitedBy are bibliometric and are only ever written by
// enrichment. An update candidate with no matching name is dropped.
func Merge(records []types.Researcher, classified types.Classification, defaultImage string, audit *Audit, log zerolog.Logger) ([]types.Researcher, types.MergeSummary) {
	var summary types.MergeSummary

	for _, cand := range classified.Updates {
		idx := indexByName(records, cand.Name)
		if idx < 0 {
			summary.Dropped++
			log.Warn().Str("name", cand.Name).Msg("update candidate matches no record, dropping")
			continue
		}
		applyUpdate(&records[idx], cand, defaultImage, func(field, oldValue, newValue string) {
			if err := audit.Record("merge", cand.Name, field, oldValue, newValue); err != nil {
				log.Warn().Err(err).Msg("audit write failed")
			}
		})
		summary.Updated++
		log.Info().Str("name", cand.Name).Msg("updated")
	}

	for _, cand := range classified.New {
		records = append(records, cand)
		summary.Added++
		if err := audit.Record("merge", cand.Name, "record", "", "added"); err != nil {
			log.Warn().Err(err).Msg("audit write failed")
		}
	}

	return records, summary
}

// indexByName returns the first record with an exact name match, or -1.
// Uniqueness makes multiple matches impossible in a healthy store; the
// first-match rule is the tie-break if one is ever corrupted.
func indexByName(records []types.Researcher, name string) int {
	for i := range records {
		if records[i].Name == name {
			return i
		}
	}
	return -1
}

// applyUpdate overwrites the present fields of rec from cand, reporting
// each change through changed.
func applyUpdate(rec *types.Researcher, cand types.Researcher, defaultImage string, changed func(field, oldValue, newValue string)) {
	setScalar := func(field string, dst *string, v string) {
		if sentinel.Absent(v) || *dst == v {
			return
		}
		changed(field, *dst, v)
		*dst = v
	}

	setScalar("affiliation", &rec.Affiliation, cand.Affiliation)
	setScalar("position", &rec.Position, cand.Position)
	setScalar("scholar", &rec.Scholar, cand.Scholar)
	setScalar("linkedin", &rec.LinkedIn, cand.LinkedIn)
	setScalar("twitter", &rec.Twitter, cand.Twitter)
	setScalar("website", &rec.Website, cand.Website)

	// The default image path means "nothing submitted", not a value.
	if cand.Photo != defaultImage {
		setScalar("photo", &rec.Photo, cand.Photo)
	}

	if len(cand.Interests) > 0 {
		changed("interests", strings.Join(rec.Interests, ", "), strings.Join(cand.Interests, ", "))
		rec.Interests = cand.Interests
	}
	if len(cand.StandardizedInterests) > 0 {
		changed("standardized_interests",
			strings.Join(rec.StandardizedInterests, ", "),
			strings.Join(cand.StandardizedInterests, ", "))
		rec.StandardizedInterests = cand.StandardizedInterests
	}
}
