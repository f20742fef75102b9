package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"dye-atelier/harmony"
	"dye-atelier/match"
	"dye-atelier/service"
)

func testMatchController(t *testing.T) *MatchController {
	t.Helper()
	catalogService, err := service.NewCatalogService(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return NewMatchController(catalogService)
}

func TestFindClosestEndpoint(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/closest?hex=%23FF0000&limit=3", nil)
	rec := httptest.NewRecorder()
	c.FindClosest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var matches []match.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &matches); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("matches not sorted: %f before %f", matches[i-1].Distance, matches[i].Distance)
		}
	}
}

func TestFindClosestRejectsBadHex(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/closest?hex=red", nil)
	rec := httptest.NewRecorder()
	c.FindClosest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFindClosestHonorsExclusions(t *testing.T) {
	c := testMatchController(t)

	// First find the best match, then exclude it and expect it gone.
	req := httptest.NewRequest(http.MethodGet, "/api/match/closest?hex=%23FF0000&limit=1", nil)
	rec := httptest.NewRecorder()
	c.FindClosest(rec, req)

	var first []match.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	bestID := first[0].Dye.ID

	req = httptest.NewRequest(http.MethodGet, "/api/match/closest?hex=%23FF0000&limit=1&excludeIds="+strconv.Itoa(bestID), nil)
	rec = httptest.NewRecorder()
	c.FindClosest(rec, req)

	var second []match.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second[0].Dye.ID == bestID {
		t.Errorf("excluded dye %d still returned", bestID)
	}
}

func TestBlendEndpoint(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/blend?a=1&b=2&limit=4", nil)
	rec := httptest.NewRecorder()
	c.Blend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var response blendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(response.BlendedHex) != 7 || response.BlendedHex[0] != '#' {
		t.Errorf("blended hex = %q", response.BlendedHex)
	}
	for _, m := range response.Matches {
		if m.Dye.ID == 1 || m.Dye.ID == 2 {
			t.Errorf("source dye %d returned as blend match", m.Dye.ID)
		}
	}
}

func TestBlendUnknownDye(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/blend?a=1&b=999999", nil)
	rec := httptest.NewRecorder()
	c.Blend(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGradientEndpoint(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/gradient?start=1&end=2&steps=5&space=hsv", nil)
	rec := httptest.NewRecorder()
	c.Gradient(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var response gradientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(response.Steps) != 5 {
		t.Errorf("got %d steps, want 5", len(response.Steps))
	}
	if response.Steps[0].TheoreticalHex != response.Start.Hex {
		t.Errorf("first step %s != start %s", response.Steps[0].TheoreticalHex, response.Start.Hex)
	}
	if response.Steps[4].TheoreticalHex != response.End.Hex {
		t.Errorf("last step %s != end %s", response.Steps[4].TheoreticalHex, response.End.Hex)
	}
}

func TestGradientRejectsBadSpace(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/gradient?start=1&end=2&space=cmyk", nil)
	rec := httptest.NewRecorder()
	c.Gradient(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHarmonyEndpoint(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/harmony?hex=%233366CC&type=triadic", nil)
	rec := httptest.NewRecorder()
	c.Harmony(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var palette harmony.Palette
	if err := json.Unmarshal(rec.Body.Bytes(), &palette); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if palette.Type != harmony.Triadic {
		t.Errorf("type = %s, want triadic", palette.Type)
	}
	if len(palette.Swatches) != 3 {
		t.Errorf("got %d swatches, want 3", len(palette.Swatches))
	}
}

func TestHarmonyUnknownType(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/harmony?hex=%233366CC&type=vaporwave", nil)
	rec := httptest.NewRecorder()
	c.Harmony(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHarmonyTypesEndpoint(t *testing.T) {
	c := testMatchController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/harmony/types", nil)
	rec := httptest.NewRecorder()
	c.HarmonyTypes(rec, req)

	var types []harmony.Type
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(types) != 6 {
		t.Errorf("got %d harmony types, want 6", len(types))
	}
}
