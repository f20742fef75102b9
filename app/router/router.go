package router

import (
	"net/http"

	"dye-atelier/app/controller"
)

type Controllers struct {
	Dye        *controller.DyeController
	Match      *controller.MatchController
	Palette    *controller.PaletteController
	Collection *controller.CollectionController
	Market     *controller.MarketController
	Export     *controller.ExportController
	Sync       *controller.SyncController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Dye catalog routes
	http.HandleFunc("/api/dyes", controllers.Dye.ListDyes)
	http.HandleFunc("/api/dyes/categories", controllers.Dye.GetCategories)
	http.HandleFunc("/api/dyes/compare", controllers.Dye.CompareDyes)

	// Dye by id (must come after the fixed /api/dyes/ subpaths)
	http.HandleFunc("/api/dyes/", controllers.Dye.GetDye)

	// Matching routes
	http.HandleFunc("/api/match/closest", controllers.Match.FindClosest)
	http.HandleFunc("/api/match/blend", controllers.Match.Blend)
	http.HandleFunc("/api/match/gradient", controllers.Match.Gradient)
	http.HandleFunc("/api/match/harmony", controllers.Match.Harmony)
	http.HandleFunc("/api/match/harmony/types", controllers.Match.HarmonyTypes)

	// Palette extraction from uploaded images
	http.HandleFunc("/api/palette/extract", controllers.Palette.Extract)

	// Collections - handles both GET (list) and POST (create)
	http.HandleFunc("/api/collections", controllers.Collection.Collections)

	// Collection by id, including its dyes subresource
	http.HandleFunc("/api/collections/", controllers.Collection.CollectionByID)

	// Market routes
	http.HandleFunc("/api/market/prices", controllers.Market.GetPrices)
	http.HandleFunc("/api/market/board", controllers.Market.GetBoard)

	// Export routes
	http.HandleFunc("/api/export/pdf", controllers.Export.ExportPDF)
	http.HandleFunc("/api/export/png", controllers.Export.ExportPNG)

	// Internal page headless Chrome renders for the export endpoints
	http.HandleFunc("/admin/export/render", controllers.Export.RenderSheet)

	// Data sync from Drive
	http.HandleFunc("/admin/sync", controllers.Sync.SyncData)
}
