// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

const testDefaultImage = "./assets/images/default.jpg"

// fakePhotos mimics the acquisition contract: absent URL degrades to the
// default path, anything else "succeeds" at the destination path.
type fakePhotos struct {
	calls []string
}

func (f *fakePhotos) Acquire(url, destPath string) string {
	f.calls = append(f.calls, url)
	if sentinel.Absent(url) {
		return testDefaultImage
	}
	return destPath
}

func newClassifier(cutoff string) (*Classifier, *fakePhotos) {
	photos := &fakePhotos{}
	t, _ := time.Parse("1/2/2006", cutoff)
	return &Classifier{
		Photos:    photos,
		ImagesDir: "assets/images",
		Cutoff:    t,
		Log:       zerolog.Nop(),
	}, photos
}

func addRow(name string) Row {
	return Row{
		colTimestamp:     "6/18/2025 14:01:10",
		colDiscriminator: "Add",
		colName:          name,
		colAffiliation:   "Analytical Engines",
		colPosition:      "Countess",
		colPhoto:         "https://example.com/ada.png",
		colScholar:       "https://scholar.google.com/citations?user=ada-123",
		colLinkedIn:      "nan",
		colTwitter:       "",
		colWebsite:       "https://ada.example.com",
		colInterests:     "symbolic computation, analytical engines ",
	}
}

func updateRow(name string) Row {
	return Row{
		colTimestamp:     "6/19/2025 09:30:00",
		colDiscriminator: "Update",
		colNameU:         name,
		colAffiliationU:  "Difference Engines Ltd",
		colPositionU:     "",
		colPhotoU:        "",
		colScholarU:      "https://scholar.google.com/citations?user=cb-456",
		colLinkedInU:     "NaN",
		colTwitterU:      "@babbage",
		colWebsiteU:      "nan",
		colInterestsU:    "",
	}
}

func TestClassifyAddRow(t *testing.T) {
	c, photos := newClassifier("1/1/2025")

	out := c.Classify([]Row{addRow("Ada Lovelace")}, map[string]struct{}{})

	if len(out.New) != 1 || len(out.Updates) != 0 {
		t.Fatalf("got %d new, %d updates, want 1 new, 0 updates", len(out.New), len(out.Updates))
	}
	got := out.New[0]
	if got.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.HIndex != types.HIndexUnset || got.CitedBy != 0 || got.LastUpdate != "" {
		t.Errorf("bibliometric fields not at never-enriched values: %+v", got)
	}
	if got.LinkedIn != "" {
		t.Errorf("LinkedIn = %q, want blank for sentinel cell", got.LinkedIn)
	}
	if got.Photo != "assets/images/ada-lovelace.jpg" {
		t.Errorf("Photo = %q", got.Photo)
	}
	want := []string{"symbolic computation", "analytical engines"}
	if len(got.Interests) != 2 || got.Interests[0] != want[0] || got.Interests[1] != want[1] {
		t.Errorf("Interests = %v, want %v", got.Interests, want)
	}
	if len(photos.calls) != 1 {
		t.Errorf("photo acquisitions = %d, want 1", len(photos.calls))
	}
}

func TestClassifyAddExistingNameIgnored(t *testing.T) {
	c, _ := newClassifier("1/1/2025")

	existing := map[string]struct{}{"Ada Lovelace": {}}
	out := c.Classify([]Row{addRow("Ada Lovelace")}, existing)

	if len(out.New) != 0 {
		t.Fatalf("got %d new candidates, want 0 for existing name", len(out.New))
	}
	if len(out.Updates) != 0 {
		t.Fatalf("got %d update candidates, want 0", len(out.Updates))
	}
}

func TestClassifyUpdateRow(t *testing.T) {
	c, _ := newClassifier("1/1/2025")

	// No existence check on the update path: matching is the merger's job.
	out := c.Classify([]Row{updateRow("Charles Babbage")}, map[string]struct{}{})

	if len(out.Updates) != 1 || len(out.New) != 0 {
		t.Fatalf("got %d updates, %d new, want 1 update, 0 new", len(out.Updates), len(out.New))
	}
	got := out.Updates[0]
	if got.Name != "Charles Babbage" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Scholar != "https://scholar.google.com/citations?user=cb-456" {
		t.Errorf("Scholar = %q", got.Scholar)
	}
	if got.Photo != testDefaultImage {
		t.Errorf("Photo = %q, want default for blank link", got.Photo)
	}
	if got.Website != "" || got.LinkedIn != "" {
		t.Errorf("sentinel cells not blanked: website=%q linkedin=%q", got.Website, got.LinkedIn)
	}
	if len(got.Interests) != 0 {
		t.Errorf("Interests = %v, want empty", got.Interests)
	}
}

func TestClassifyTimestampCutoff(t *testing.T) {
	c, _ := newClassifier("11/24/2025")

	rows := []Row{addRow("Ada Lovelace"), updateRow("Charles Babbage")}
	out := c.Classify(rows, map[string]struct{}{})

	if len(out.New) != 0 || len(out.Updates) != 0 {
		t.Fatalf("rows before cutoff must be excluded, got %d new, %d updates", len(out.New), len(out.Updates))
	}
	if out.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", out.Skipped)
	}
}

func TestClassifyMalformedTimestampSkips(t *testing.T) {
	c, _ := newClassifier("1/1/2025")

	row := addRow("Ada Lovelace")
	row[colTimestamp] = "yesterday"
	out := c.Classify([]Row{row}, map[string]struct{}{})

	if len(out.New) != 0 || out.Skipped != 1 {
		t.Errorf("malformed timestamp should skip row: %+v", out)
	}
}

func TestClassifyAmbiguousRowTakesUpdatePath(t *testing.T) {
	c, _ := newClassifier("1/1/2025")

	row := addRow("Ada Lovelace")
	for k, v := range updateRow("Charles Babbage") {
		if k == colTimestamp || k == colDiscriminator {
			continue
		}
		row[k] = v
	}
	out := c.Classify([]Row{row}, map[string]struct{}{})

	if len(out.New) != 0 {
		t.Errorf("ambiguous row must not yield a new candidate")
	}
	if len(out.Updates) != 1 || out.Updates[0].Name != "Charles Babbage" {
		t.Fatalf("ambiguous row should take update path, got %+v", out.Updates)
	}
	if out.Ambiguous != 1 {
		t.Errorf("Ambiguous = %d, want 1", out.Ambiguous)
	}
}

func TestClassifyEmptyRowSkipped(t *testing.T) {
	c, _ := newClassifier("1/1/2025")

	row := Row{colTimestamp: "6/18/2025 14:01:10", colDiscriminator: "Add", colName: "nan"}
	out := c.Classify([]Row{row}, map[string]struct{}{})

	if len(out.New) != 0 || len(out.Updates) != 0 || out.Skipped != 1 {
		t.Errorf("row with no usable name should be skipped: %+v", out)
	}
}
