package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dye-atelier/models"
)

// fakePriceRepo is an in-memory PriceRepositoryInterface for tests.
type fakePriceRepo struct {
	recorded  []models.PriceSnapshot
	latest    *models.PriceSnapshot
	recordErr error
}

func (r *fakePriceRepo) Record(_ context.Context, snapshot models.PriceSnapshot) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.recorded = append(r.recorded, snapshot)
	return nil
}

func (r *fakePriceRepo) LatestForDye(_ context.Context, dyeID int, world string) (*models.PriceSnapshot, error) {
	if r.latest != nil && r.latest.DyeID == dyeID && r.latest.World == world {
		return r.latest, nil
	}
	return nil, nil
}

func testCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	cs, err := NewCatalogService(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return cs
}

func TestGetPriceLiveThenCache(t *testing.T) {
	cs := testCatalogService(t)
	dye := cs.Catalog().All()[0]

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		want := fmt.Sprintf("/v2/prices/Ragnarok/%d", dye.ExternalID)
		if r.URL.Path != want {
			t.Errorf("request path = %q, want %q", r.URL.Path, want)
		}
		json.NewEncoder(w).Encode(models.MarketListing{
			ItemID:       dye.ExternalID,
			World:        "Ragnarok",
			PricePerUnit: 216,
			Quantity:     3,
		})
	}))
	defer server.Close()

	repo := &fakePriceRepo{}
	svc := NewMarketService(server.URL, time.Minute, repo, cs)

	quote, err := svc.GetPrice(context.Background(), dye.ID, "Ragnarok")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if quote.Source != "live" {
		t.Errorf("first lookup source = %q, want live", quote.Source)
	}
	if quote.Price != 216 {
		t.Errorf("price = %d, want 216", quote.Price)
	}
	if len(repo.recorded) != 1 {
		t.Fatalf("recorded %d snapshots, want 1", len(repo.recorded))
	}
	if repo.recorded[0].Price != 216 || repo.recorded[0].DyeID != dye.ID {
		t.Errorf("snapshot = %+v", repo.recorded[0])
	}

	quote, err = svc.GetPrice(context.Background(), dye.ID, "Ragnarok")
	if err != nil {
		t.Fatalf("GetPrice (cached): %v", err)
	}
	if quote.Source != "cache" {
		t.Errorf("second lookup source = %q, want cache", quote.Source)
	}
	if hits != 1 {
		t.Errorf("external API hit %d times, want 1", hits)
	}
}

func TestGetPriceSnapshotFallback(t *testing.T) {
	cs := testCatalogService(t)
	dye := cs.Catalog().All()[0]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	repo := &fakePriceRepo{
		latest: &models.PriceSnapshot{DyeID: dye.ID, World: "Ragnarok", Price: 199, FetchedAt: "2026-08-01T00:00:00Z"},
	}
	svc := NewMarketService(server.URL, time.Minute, repo, cs)

	quote, err := svc.GetPrice(context.Background(), dye.ID, "Ragnarok")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if quote.Source != "snapshot" {
		t.Errorf("source = %q, want snapshot", quote.Source)
	}
	if quote.Price != 199 {
		t.Errorf("price = %d, want 199", quote.Price)
	}
}

func TestGetPriceNoSnapshotPropagatesError(t *testing.T) {
	cs := testCatalogService(t)
	dye := cs.Catalog().All()[0]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewMarketService(server.URL, time.Minute, &fakePriceRepo{}, cs)
	if _, err := svc.GetPrice(context.Background(), dye.ID, "Ragnarok"); err == nil {
		t.Fatal("expected error when API is down and no snapshot exists")
	}
}

func TestGetPriceUnknownDye(t *testing.T) {
	cs := testCatalogService(t)
	svc := NewMarketService("http://unused", time.Minute, &fakePriceRepo{}, cs)

	if _, err := svc.GetPrice(context.Background(), 999999, "Ragnarok"); err == nil {
		t.Fatal("expected error for unknown dye id")
	}
}

func TestGetPricesSkipsFailures(t *testing.T) {
	cs := testCatalogService(t)
	dyes := cs.Catalog().All()
	good := dyes[0]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := fmt.Sprintf("/v2/prices/Ragnarok/%d", good.ExternalID)
		if r.URL.Path != want {
			http.Error(w, "unknown item", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(models.MarketListing{PricePerUnit: 40})
	}))
	defer server.Close()

	svc := NewMarketService(server.URL, time.Minute, &fakePriceRepo{}, cs)

	quotes := svc.GetPrices(context.Background(), []int{good.ID, dyes[1].ID, 999999}, "Ragnarok")
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(quotes))
	}
	if quotes[0].DyeID != good.ID {
		t.Errorf("quote dye = %d, want %d", quotes[0].DyeID, good.ID)
	}
}
