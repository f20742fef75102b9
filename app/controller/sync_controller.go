package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"dye-atelier/service"
)

type SyncController struct {
	syncService    service.SyncServiceInterface
	catalogService *service.CatalogService
	localeService  *service.LocaleService
}

func NewSyncController(syncService service.SyncServiceInterface, catalogService *service.CatalogService, localeService *service.LocaleService) *SyncController {
	return &SyncController{
		syncService:    syncService,
		catalogService: catalogService,
		localeService:  localeService,
	}
}

// SyncData handles POST /admin/sync?folderId=
// It pulls updated data files from Drive and, when anything changed,
// reloads the catalog and the locale tables.
func (c *SyncController) SyncData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.syncService == nil {
		http.Error(w, "Data sync is not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		folderID = os.Getenv("DRIVE_FOLDER_ID")
	}
	if folderID == "" {
		http.Error(w, "Parameter 'folderId' is required", http.StatusBadRequest)
		return
	}

	log.Printf("🔄 Data sync requested for folder %s", folderID)

	result, err := c.syncService.SyncDataFiles(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ Data sync failed: %v", err)
		http.Error(w, "Data sync failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if result.Downloaded > 0 {
		if err := c.catalogService.Reload(); err != nil {
			log.Printf("⚠️ Catalog reload after sync failed: %v", err)
		} else if err := c.localeService.Reload(); err != nil {
			log.Printf("⚠️ Locale reload after sync failed: %v", err)
		} else {
			result.Reloaded = true
		}
	}

	log.Printf("🎉 Data sync finished: %d downloaded, %d skipped", result.Downloaded, result.Skipped)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ Error encoding sync response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
