package service

import (
	"os"
	"path/filepath"
	"testing"

	"dye-atelier/match"
)

const twoDyeCatalog = `[
	{"id": 1, "externalId": 9001, "name": "Test Red", "hex": "#FF0000", "category": "Red", "acquisition": "vendor", "cost": 40},
	{"id": 2, "externalId": 9002, "name": "Test Blue", "hex": "#0000FF", "category": "Blue", "acquisition": "vendor", "cost": 40}
]`

func TestCatalogServiceFallsBackToEmbedded(t *testing.T) {
	cs := testCatalogService(t)
	if cs.Catalog().Len() < 100 {
		t.Errorf("embedded catalog has %d dyes, expected the full set", cs.Catalog().Len())
	}
}

func TestCatalogServicePrefersSyncedFile(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "dyes.json"), []byte(twoDyeCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	cs, err := NewCatalogService(dataDir)
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	if cs.Catalog().Len() != 2 {
		t.Errorf("catalog has %d dyes, want 2 from the synced file", cs.Catalog().Len())
	}
}

func TestCatalogServiceReloadSwapsFinder(t *testing.T) {
	dataDir := t.TempDir()
	cs, err := NewCatalogService(dataDir)
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	embedded := cs.Catalog().Len()

	if err := os.WriteFile(filepath.Join(dataDir, "dyes.json"), []byte(twoDyeCatalog), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cs.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	cat, finder := cs.Current()
	if cat.Len() != 2 {
		t.Errorf("catalog has %d dyes after reload (was %d), want 2", cat.Len(), embedded)
	}

	matches := finder.FindClosest("#FF0101", match.Options{Limit: 1})
	if len(matches) != 1 || matches[0].Dye.Name != "Test Red" {
		t.Errorf("FindClosest after reload = %+v, want Test Red", matches)
	}
}
