package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"dye-atelier/match"
	"dye-atelier/models"
	"dye-atelier/service"
	"dye-atelier/utils"
)

// defaultWorld is used when a market request names no world.
const defaultWorld = "Ragnarok"

type MarketController struct {
	marketService  service.MarketServiceInterface
	catalogService *service.CatalogService
}

func NewMarketController(marketService service.MarketServiceInterface, catalogService *service.CatalogService) *MarketController {
	return &MarketController{
		marketService:  marketService,
		catalogService: catalogService,
	}
}

// GetPrices handles GET /api/market/prices?ids=&world=
func (c *MarketController) GetPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids, err := utils.ParseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		http.Error(w, "Invalid 'ids' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}

	world := r.URL.Query().Get("world")
	if world == "" {
		world = defaultWorld
	}

	quotes := c.marketService.GetPrices(r.Context(), ids, world)

	log.Printf("💰 Price lookup on %s: %d/%d quotes", world, len(quotes), len(ids))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(quotes); err != nil {
		log.Printf("❌ Error encoding prices response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetBoard handles GET /api/market/board?hex=&limit=&world=
// The board lists the dyes closest to a target color together with their
// current market prices.
func (c *MarketController) GetBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hex := r.URL.Query().Get("hex")
	if !utils.IsValidHex(hex) {
		http.Error(w, "Parameter 'hex' must be a hex color like #A1B2C3", http.StatusBadRequest)
		return
	}

	world := r.URL.Query().Get("world")
	if world == "" {
		world = defaultWorld
	}
	limit, err := utils.ParseIntQuery(r.URL.Query().Get("limit"), 5)
	if err != nil {
		http.Error(w, "Invalid 'limit' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}

	matches := c.catalogService.Finder().FindClosest(hex, match.Options{Limit: limit})

	entries := make([]models.BoardEntry, 0, len(matches))
	for _, m := range matches {
		entry := models.BoardEntry{Dye: m.Dye, Distance: m.Distance}
		if quote, err := c.marketService.GetPrice(r.Context(), m.Dye.ID, world); err == nil {
			entry.Quote = quote
		} else {
			log.Printf("⚠️ No price for dye %d on %s: %v", m.Dye.ID, world, err)
		}
		entries = append(entries, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("❌ Error encoding board response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
