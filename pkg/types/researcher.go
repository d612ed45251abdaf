// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HIndexUnset marks a record that has never been successfully enriched
// from the bibliometric source.
const HIndexUnset = -1

// Researcher is one entry in the canonical directory, keyed by Name.
// Scalar fields use "" for absent values and Interests uses an empty
// slice; the store normalizes legacy encodings on load.
type Researcher struct {
	// Name is the identity key, unique within the store.
	Name string `json:"name"`

	// Affiliation is the researcher's current institution.
	Affiliation string `json:"affiliation"`

	// Position is the researcher's role (e.g. "Professor", "PhD Student").
	Position string `json:"position"`

	// HIndex is the h-index from the bibliometric source, or HIndexUnset
	// when the record has never been enriched.
	HIndex int `json:"hindex"`

	// CitedBy is the total citation count from the bibliometric source.
	CitedBy int `json:"citedby"`

	// Photo is a local path under the image asset directory, or the
	// configured default-image path. Never a remote URL.
	Photo string `json:"photo"`

	// Scholar is the Google Scholar profile URL.
	Scholar string `json:"scholar"`

	// LinkedIn, Twitter and Website are optional contact links.
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Website  string `json:"website"`

	// Interests lists self-reported or fetched research interests.
	Interests []string `json:"interests"`

	// StandardizedInterests holds taxonomy-normalized interest labels.
	// Legacy records may lack the key entirely; load normalizes it.
	StandardizedInterests []string `json:"standardized_interests"`

	// LastUpdate is the date of the last successful enrichment in
	// YYYY-MM-DD form, or "" when never enriched.
	LastUpdate string `json:"lastupdate"`
}

// Enriched reports whether the record has ever been successfully
// enriched from the bibliometric source.
func (r *Researcher) Enriched() bool {
	return r.HIndex != HIndexUnset
}

// RowKind classifies one submission row.
type RowKind string

const (
	// RowAdd is a row whose Add discriminator fired with a populated
	// add-group name.
	RowAdd RowKind = "add"

	// RowUpdate is a row with a populated update-group name and no add.
	RowUpdate RowKind = "update"

	// RowAmbiguous is a malformed row where both groups are populated.
	// Policy: treated as an update, logged at warn level.
	RowAmbiguous RowKind = "ambiguous"
)

// Classification holds the output of one submission classification pass.
type Classification struct {
	// New lists candidates for names not yet in the store, in row order.
	New []Researcher

	// Updates lists candidates expected to match existing records, in
	// row order.
	Updates []Researcher

	// Skipped counts rows excluded by the timestamp cutoff or with no
	// usable name in either group.
	Skipped int

	// Ambiguous counts rows that populated both groups.
	Ambiguous int
}

// MergeSummary holds counts from one merge pass over the store.
type MergeSummary struct {
	Updated int
	Dropped int
	Added   int
}

// EnrichSummary holds counts from one enrichment pass over the store.
type EnrichSummary struct {
	Enriched int
	NotFound int
	Failed   int
}

// Total returns the number of records processed.
func (s EnrichSummary) Total() int {
	return s.Enriched + s.NotFound + s.Failed
}
