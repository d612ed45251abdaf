// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"path/filepath"
	"testing"
)

func TestAuditRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	audit, err := OpenAudit(path)
	if err != nil {
		t.Fatalf("OpenAudit: %v", err)
	}
	defer audit.Close()

	if err := audit.Record("merge", "Ada Lovelace", "affiliation", "MIT", "Stanford"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := audit.Record("enrich", "Ada Lovelace", "hindex", "30", "31"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := audit.Record("merge", "Grace Hopper", "position", "", "Rear Admiral"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	changes, err := audit.Changes("Ada Lovelace")
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2", len(changes))
	}
	if changes[0].Field != "affiliation" || changes[0].NewValue != "Stanford" {
		t.Errorf("changes[0] = %+v", changes[0])
	}
	if changes[1].Stage != "enrich" || changes[1].Field != "hindex" {
		t.Errorf("changes[1] = %+v", changes[1])
	}
}

func TestAuditReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	first, err := OpenAudit(path)
	if err != nil {
		t.Fatalf("OpenAudit: %v", err)
	}
	if err := first.Record("merge", "Ada Lovelace", "twitter", "", "@ada"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	first.Close()

	second, err := OpenAudit(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	changes, err := second.Changes("Ada Lovelace")
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(changes) != 1 {
		t.Errorf("len(changes) = %d, want 1 after reopen", len(changes))
	}
}

func TestNilAuditIsSafe(t *testing.T) {
	var audit *Audit
	if err := audit.Record("merge", "x", "y", "", ""); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if _, err := audit.Changes("x"); err != nil {
		t.Errorf("nil Changes: %v", err)
	}
	if err := audit.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
