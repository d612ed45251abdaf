// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/scholar-directory/pkg/types"
)

func sampleRecords() []types.Researcher {
	return []types.Researcher{
		{
			Name:                  "Ada Lovelace",
			Affiliation:           "Analytical Engines",
			Position:              "Countess",
			HIndex:                12,
			CitedBy:               3400,
			Photo:                 "assets/images/ada-lovelace.jpg",
			Scholar:               "https://scholar.google.com/citations?user=ada-123",
			Interests:             []string{"symbolic computation"},
			StandardizedInterests: []string{"Computation"},
			LastUpdate:            "2025-06-01",
		},
		{
			Name:                  "Charles Babbage",
			HIndex:                types.HIndexUnset,
			Photo:                 "./assets/images/default.jpg",
			Interests:             []string{},
			StandardizedInterests: []string{},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researchers.json")
	s := NewStore(types.StoreConfig{Path: path})

	want := sampleRecords()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadNormalizesLegacyRecords(t *testing.T) {
	// A legacy record: sentinel blanks, nil interests, and no
	// standardized_interests key at all.
	legacy := `[{"name":" Ada Lovelace ","affiliation":"nan","position":"NaN",
		"hindex":-1,"citedby":0,"photo":"","scholar":"","linkedin":"",
		"twitter":"","website":" ","lastupdate":""}]`

	path := filepath.Join(t.TempDir(), "researchers.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(types.StoreConfig{Path: path}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	r := got[0]
	if r.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want trimmed", r.Name)
	}
	if r.Affiliation != "" || r.Position != "" || r.Website != "" {
		t.Errorf("sentinel scalars not blanked: %+v", r)
	}
	if r.Interests == nil || len(r.Interests) != 0 {
		t.Errorf("Interests = %#v, want empty slice", r.Interests)
	}
	if r.StandardizedInterests == nil || len(r.StandardizedInterests) != 0 {
		t.Errorf("StandardizedInterests = %#v, want empty slice", r.StandardizedInterests)
	}
}

func TestLoadMissingFileIsStructuralFailure(t *testing.T) {
	s := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "nope.json")})
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error for missing store file")
	}
}

func TestLoadMalformedJSONIsStructuralFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researchers.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(types.StoreConfig{Path: path}).Load(); err == nil {
		t.Fatal("expected error for malformed store file")
	}
}

func TestNames(t *testing.T) {
	names := Names(sampleRecords())
	if len(names) != 2 {
		t.Fatalf("len(names) = %d, want 2", len(names))
	}
	if _, ok := names["Ada Lovelace"]; !ok {
		t.Error("missing Ada Lovelace")
	}
	if _, ok := names["Charles Babbage"]; !ok {
		t.Error("missing Charles Babbage")
	}
}
