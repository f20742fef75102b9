package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dye-atelier/models"
	"dye-atelier/service"
)

type fakeSyncService struct {
	result *models.SyncResult
}

func (s *fakeSyncService) SyncDataFiles(_ context.Context, _ string) (*models.SyncResult, error) {
	return s.result, nil
}

func testSyncController(t *testing.T, sync service.SyncServiceInterface) *SyncController {
	t.Helper()
	catalogService, err := service.NewCatalogService(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	localeService, err := service.NewLocaleService(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocaleService: %v", err)
	}
	return NewSyncController(sync, catalogService, localeService)
}

func TestSyncDataReloadsAfterDownloads(t *testing.T) {
	sync := &fakeSyncService{result: &models.SyncResult{Downloaded: 2, Total: 2, Files: []string{"dyes.json", "names_ja.json"}}}
	c := testSyncController(t, sync)

	req := httptest.NewRequest(http.MethodPost, "/admin/sync?folderId=abc", nil)
	rec := httptest.NewRecorder()
	c.SyncData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var result models.SyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Reloaded {
		t.Error("catalog not reloaded after downloads")
	}
}

func TestSyncDataSkipsReloadWhenNothingChanged(t *testing.T) {
	sync := &fakeSyncService{result: &models.SyncResult{Skipped: 2, Total: 2}}
	c := testSyncController(t, sync)

	req := httptest.NewRequest(http.MethodPost, "/admin/sync?folderId=abc", nil)
	rec := httptest.NewRecorder()
	c.SyncData(rec, req)

	var result models.SyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Reloaded {
		t.Error("reload reported although nothing was downloaded")
	}
}

func TestSyncDataUnavailableWithoutService(t *testing.T) {
	c := testSyncController(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/sync?folderId=abc", nil)
	rec := httptest.NewRecorder()
	c.SyncData(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSyncDataRequiresFolderID(t *testing.T) {
	t.Setenv("DRIVE_FOLDER_ID", "")

	sync := &fakeSyncService{result: &models.SyncResult{}}
	c := testSyncController(t, sync)

	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	rec := httptest.NewRecorder()
	c.SyncData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
