package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/georgiajedi/catalog/internal/models"
)

const sampleJSON = `[
  {"id": "1", "acquired": "2023-05-01", "name/brand": "Mark Hamill Photo", "franchise": "Star Wars", "original_cost": "25.00", "current_value": 150, "is_verified": true, "image": "OPIX_Hamill"},
  {"id": 2, "acquired": "", "name/brand": "Mystery Item", "franchise": "Star Trek", "original_cost": "", "current_value": "n/a", "is_verified": "no", "image": ""}
]`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "autographs.json"), []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return NewStore(dir)
}

func TestRecordsLoadsLooseTypes(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Records("autographs")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].IsVerified.String() != "true" {
		t.Errorf("boolean is_verified should decode as %q, got %q", "true", records[0].IsVerified)
	}
	if !records[0].Verified() {
		t.Error("record 1 should be verified")
	}
	if records[1].ID.String() != "2" {
		t.Errorf("numeric id should decode as %q, got %q", "2", records[1].ID)
	}
	if records[1].Verified() {
		t.Error("record 2 should not be verified")
	}
	if records[0].CurrentValue.String() != "150" {
		t.Errorf("numeric current_value should decode as %q, got %q", "150", records[0].CurrentValue)
	}
}

func TestRecordsUnknownCollection(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Records("nope"); err == nil {
		t.Error("expected error for missing collection file")
	}
	if _, err := store.Records("../etc/passwd"); err == nil {
		t.Error("expected error for invalid collection name")
	}
}

func TestFind(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Find("autographs", "1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.NameBrand != "Mark Hamill Photo" {
		t.Errorf("unexpected record: %+v", rec)
	}

	if _, err := store.Find("autographs", "99"); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestNextID(t *testing.T) {
	store := newTestStore(t)
	next, err := store.NextID("autographs")
	if err != nil {
		t.Fatal(err)
	}
	if next != 3 {
		t.Errorf("NextID = %d, want 3", next)
	}
}

func TestUpsertReplaceAndAppend(t *testing.T) {
	store := newTestStore(t)

	// Replace by id
	updated, err := store.Upsert("autographs", models.Record{ID: "1", NameBrand: "Renamed", Franchise: "Star Wars"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID.String() != "1" {
		t.Errorf("replacement changed id: %q", updated.ID)
	}

	// Append with assigned id
	added, err := store.Upsert("autographs", models.Record{NameBrand: "Brand New"})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID.String() != "3" {
		t.Errorf("appended record id = %q, want 3", added.ID)
	}

	records, err := store.Records("autographs")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records after upserts, got %d", len(records))
	}
	if records[0].NameBrand != "Renamed" {
		t.Errorf("replace did not stick: %q", records[0].NameBrand)
	}

	// The file on disk reflects the change and stays valid JSON.
	fresh := NewStore(store.dataDir)
	reloaded, err := fresh.Records("autographs")
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != 3 || reloaded[2].NameBrand != "Brand New" {
		t.Errorf("reloaded file mismatch: %+v", reloaded)
	}

	data, err := os.ReadFile(filepath.Join(store.dataDir, "autographs.json"))
	if err != nil {
		t.Fatal(err)
	}
	var check []map[string]any
	if err := json.Unmarshal(data, &check); err != nil {
		t.Errorf("rewritten file is not valid JSON: %v", err)
	}
}
