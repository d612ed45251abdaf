// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-directory/internal/images"
	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// timestampLayout matches the form-response timestamp (MM/DD/YYYY HH:MM:SS,
// without zero padding).
const timestampLayout = "1/2/2006 15:04:05"

// Column names for the add group (suffix-less) and the update group
// (".1" suffix). The update group's scholar column carries no suffix
// because its label differs from the add group's - a quirk of the form.
const (
	colTimestamp     = "Timestamp"
	colDiscriminator = "Add or Update"

	colName          = "Name"
	colAffiliation   = "Affiliation"
	colPosition      = "Position"
	colPhoto         = "Personal Photo Link"
	colScholar       = "Google Scholar Profile Link"
	colLinkedIn      = "LinkedIn Profile"
	colTwitter       = "Twitter Profile"
	colWebsite       = "Personal Website"
	colInterests     = "Research Interests"

	colNameU        = "Name.1"
	colAffiliationU = "Affiliation.1"
	colPositionU    = "Position.1"
	colPhotoU       = "Personal Photo Link.1"
	colScholarU     = "Google Scholar Profile"
	colLinkedInU    = "LinkedIn Profile.1"
	colTwitterU     = "Twitter Profile.1"
	colWebsiteU     = "Personal Website.1"
	colInterestsU   = "Research Interests.1"
)

// PhotoAcquirer downloads a submitted photo to a local asset path,
// degrading to the default image path on failure. *images.Fetcher is the
// production implementation.
type PhotoAcquirer interface {
	Acquire(url, destPath string) string
}

// Classifier extracts add/update candidates from sheet rows.
type Classifier struct {
	// Photos acquires submitted photo links during classification.
	Photos PhotoAcquirer

	// ImagesDir is the asset directory photo paths are derived under.
	ImagesDir string

	// Cutoff excludes rows submitted strictly before it.
	Cutoff time.Time

	Log zerolog.Logger
}

// Classify walks rows in order and produces new and update candidate
// lists. existing holds the names already present in the canonical store;
// an add row whose name is already taken emits nothing. A row populating
// both groups is ambiguous and takes the update path.
func (c *Classifier) Classify(rows []Row, existing map[string]struct{}) types.Classification {
	var out types.Classification

	for _, row := range rows {
		ts, err := time.Parse(timestampLayout, strings.TrimSpace(row[colTimestamp]))
		if err != nil {
			c.Log.Warn().Str("timestamp", row[colTimestamp]).Msg("unparseable timestamp, skipping row")
			out.Skipped++
			continue
		}
		if ts.Before(c.Cutoff) {
			out.Skipped++
			continue
		}

		switch c.kindOf(row) {
		case types.RowAmbiguous:
			out.Ambiguous++
			c.Log.Warn().Str("name", strings.TrimSpace(row[colNameU])).
				Msg("row populates both add and update groups, taking update path")
			out.Updates = append(out.Updates, c.buildUpdate(row))
		case types.RowAdd:
			name := strings.TrimSpace(row[colName])
			if _, taken := existing[name]; taken {
				c.Log.Info().Str("name", name).Msg("add candidate already in directory, ignoring")
				continue
			}
			c.Log.Info().Str("name", name).Msg("add candidate")
			out.New = append(out.New, c.buildAdd(row))
		case types.RowUpdate:
			c.Log.Info().Str("name", strings.TrimSpace(row[colNameU])).Msg("update candidate")
			out.Updates = append(out.Updates, c.buildUpdate(row))
		default:
			out.Skipped++
		}
	}
	return out
}

func (c *Classifier) kindOf(row Row) types.RowKind {
	addFlag := strings.TrimSpace(row[colDiscriminator]) == "Add"
	addName := !sentinel.Absent(row[colName])
	updName := !sentinel.Absent(row[colNameU])

	switch {
	case addFlag && addName && updName:
		return types.RowAmbiguous
	case addFlag && addName:
		return types.RowAdd
	case updName:
		return types.RowUpdate
	default:
		return ""
	}
}

func (c *Classifier) buildAdd(row Row) types.Researcher {
	return c.build(row[colName], row[colAffiliation], row[colPosition], row[colPhoto],
		row[colScholar], row[colLinkedIn], row[colTwitter], row[colWebsite], row[colInterests])
}

func (c *Classifier) buildUpdate(row Row) types.Researcher {
	return c.build(row[colNameU], row[colAffiliationU], row[colPositionU], row[colPhotoU],
		row[colScholarU], row[colLinkedInU], row[colTwitterU], row[colWebsiteU], row[colInterestsU])
}

// build assembles a candidate record. Bibliometric fields stay at their
// never-enriched zero values; enrichment has not run for a candidate.
func (c *Classifier) build(name, affiliation, position, photoLink, scholar, linkedin, twitter, website, interests string) types.Researcher {
	trimmed := strings.TrimSpace(name)
	return types.Researcher{
		Name:                  trimmed,
		Affiliation:           sentinel.Clean(affiliation),
		Position:              sentinel.Clean(position),
		HIndex:                types.HIndexUnset,
		CitedBy:               0,
		Photo:                 c.Photos.Acquire(photoLink, images.PathFor(c.ImagesDir, trimmed)),
		Scholar:               sentinel.Clean(scholar),
		LinkedIn:              sentinel.Clean(linkedin),
		Twitter:               sentinel.Clean(twitter),
		Website:               sentinel.Clean(website),
		Interests:             splitInterests(interests),
		StandardizedInterests: []string{},
		LastUpdate:            "",
	}
}

// splitInterests parses a comma-separated interest list, trimming each
// piece. An absent cell yields an empty slice.
func splitInterests(raw string) []string {
	if sentinel.Absent(raw) {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
