package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
	"dye-atelier/models"
	"dye-atelier/service"
	"dye-atelier/utils"
)

type DyeController struct {
	catalogService *service.CatalogService
	localeService  *service.LocaleService
}

func NewDyeController(catalogService *service.CatalogService, localeService *service.LocaleService) *DyeController {
	return &DyeController{
		catalogService: catalogService,
		localeService:  localeService,
	}
}

// ListDyes handles GET /api/dyes?category=&lang=
func (c *DyeController) ListDyes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("📥 ListDyes request received")

	cat := c.catalogService.Catalog()
	lang := r.URL.Query().Get("lang")

	dyes := cat.All()
	if category := r.URL.Query().Get("category"); category != "" {
		dyes = cat.ByCategory(category)
	}

	views := make([]models.DyeView, 0, len(dyes))
	for _, d := range dyes {
		view := models.DyeView{Dye: d}
		if lang != "" {
			view.LocalizedName = c.localeService.Name(lang, d)
		}
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		log.Printf("❌ Error encoding dyes response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Returned %d dyes", len(views))
}

// GetCategories handles GET /api/dyes/categories
func (c *DyeController) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := c.catalogService.Catalog()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cat.Categories()); err != nil {
		log.Printf("❌ Error encoding categories response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetDye handles GET /api/dyes/{id}?lang=
func (c *DyeController) GetDye(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/dyes/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid dye ID", http.StatusBadRequest)
		return
	}

	cat := c.catalogService.Catalog()
	dye, ok := cat.ByID(id)
	if !ok {
		http.Error(w, "Dye not found", http.StatusNotFound)
		return
	}

	view := models.DyeView{Dye: *dye}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		view.LocalizedName = c.localeService.Name(lang, *dye)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("❌ Error encoding dye response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// CompareDyes handles GET /api/dyes/compare?a=&b=
// Both parameters accept a dye ID or a hex color.
func (c *DyeController) CompareDyes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dyeA, err := c.resolveDye(r.URL.Query().Get("a"))
	if err != nil {
		http.Error(w, "Invalid parameter 'a': "+err.Error(), http.StatusBadRequest)
		return
	}
	dyeB, err := c.resolveDye(r.URL.Query().Get("b"))
	if err != nil {
		http.Error(w, "Invalid parameter 'b': "+err.Error(), http.StatusBadRequest)
		return
	}

	result := models.NewCompareResult(dyeA, dyeB)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ Error encoding compare response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// resolveDye turns a dye ID or hex string into a comparable dye. A raw
// hex yields an ad-hoc dye carrying only its color.
func (c *DyeController) resolveDye(value string) (catalog.Dye, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return catalog.Dye{}, errMissingColor
	}

	if id, err := strconv.Atoi(value); err == nil {
		dye, ok := c.catalogService.Catalog().ByID(id)
		if !ok {
			return catalog.Dye{}, errUnknownDye
		}
		return *dye, nil
	}

	if !utils.IsValidHex(value) {
		return catalog.Dye{}, errInvalidHex
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	hex := strings.ToUpper(value)
	rgb := colorspace.HexToRGB(hex)
	return catalog.Dye{Hex: hex, RGB: rgb, HSV: colorspace.RGBToHSV(rgb.R, rgb.G, rgb.B)}, nil
}
