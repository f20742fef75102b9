package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dye-atelier/catalog"
	"dye-atelier/harmony"
	"dye-atelier/match"
	"dye-atelier/service"
	"dye-atelier/utils"
)

type MatchController struct {
	catalogService *service.CatalogService
}

func NewMatchController(catalogService *service.CatalogService) *MatchController {
	return &MatchController{catalogService: catalogService}
}

// FindClosest handles GET /api/match/closest?hex=&limit=&excludeIds=&excludeCategories=
func (c *MatchController) FindClosest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hex := r.URL.Query().Get("hex")
	if !utils.IsValidHex(hex) {
		http.Error(w, "Parameter 'hex' must be a hex color like #A1B2C3", http.StatusBadRequest)
		return
	}

	limit, err := utils.ParseIntQuery(r.URL.Query().Get("limit"), 5)
	if err != nil {
		http.Error(w, "Invalid 'limit' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := match.Options{Limit: limit}
	if raw := r.URL.Query().Get("excludeIds"); raw != "" {
		ids, err := utils.ParseIDList(raw)
		if err != nil {
			http.Error(w, "Invalid 'excludeIds' parameter: "+err.Error(), http.StatusBadRequest)
			return
		}
		opts.ExcludeIDs = make(map[int]bool, len(ids))
		for _, id := range ids {
			opts.ExcludeIDs[id] = true
		}
	}
	if raw := r.URL.Query().Get("excludeCategories"); raw != "" {
		opts.ExcludeCategories = make(map[string]bool)
		for _, category := range strings.Split(raw, ",") {
			if category = strings.TrimSpace(category); category != "" {
				opts.ExcludeCategories[category] = true
			}
		}
	}

	matches := c.catalogService.Finder().FindClosest(hex, opts)

	log.Printf("🔍 Closest match for %s: %d candidates", hex, len(matches))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(matches); err != nil {
		log.Printf("❌ Error encoding closest response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// blendResponse is the payload of the blend endpoint.
type blendResponse struct {
	BlendedHex string        `json:"blended_hex"`
	Matches    []match.Match `json:"matches"`
}

// Blend handles GET /api/match/blend?a=&b=&limit=
// a and b are dye IDs; the response holds the blended color and the dyes
// closest to it, the two source dyes excluded.
func (c *MatchController) Blend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat, finder := c.catalogService.Current()

	idA, err := strconv.Atoi(r.URL.Query().Get("a"))
	if err != nil {
		http.Error(w, "Parameter 'a' must be a dye ID", http.StatusBadRequest)
		return
	}
	idB, err := strconv.Atoi(r.URL.Query().Get("b"))
	if err != nil {
		http.Error(w, "Parameter 'b' must be a dye ID", http.StatusBadRequest)
		return
	}

	dyeA, ok := cat.ByID(idA)
	if !ok {
		http.Error(w, "Dye not found: "+strconv.Itoa(idA), http.StatusNotFound)
		return
	}
	dyeB, ok := cat.ByID(idB)
	if !ok {
		http.Error(w, "Dye not found: "+strconv.Itoa(idB), http.StatusNotFound)
		return
	}

	limit, err := utils.ParseIntQuery(r.URL.Query().Get("limit"), 5)
	if err != nil {
		http.Error(w, "Invalid 'limit' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}

	blended := match.Blend(*dyeA, *dyeB)
	matches := finder.MatchBlend(blended, map[int]bool{idA: true, idB: true}, limit)

	log.Printf("🎨 Blend %s + %s = %s", dyeA.Name, dyeB.Name, blended)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(blendResponse{BlendedHex: blended, Matches: matches}); err != nil {
		log.Printf("❌ Error encoding blend response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// gradientResponse is the payload of the gradient endpoint.
type gradientResponse struct {
	Start catalog.Dye  `json:"start"`
	End   catalog.Dye  `json:"end"`
	Space match.Space  `json:"space"`
	Steps []match.Step `json:"steps"`
}

// Gradient handles GET /api/match/gradient?start=&end=&steps=&space=
// start and end are dye IDs; space is "rgb" (default) or "hsv".
func (c *MatchController) Gradient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat, finder := c.catalogService.Current()

	startID, err := strconv.Atoi(r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "Parameter 'start' must be a dye ID", http.StatusBadRequest)
		return
	}
	endID, err := strconv.Atoi(r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "Parameter 'end' must be a dye ID", http.StatusBadRequest)
		return
	}

	start, ok := cat.ByID(startID)
	if !ok {
		http.Error(w, "Dye not found: "+strconv.Itoa(startID), http.StatusNotFound)
		return
	}
	end, ok := cat.ByID(endID)
	if !ok {
		http.Error(w, "Dye not found: "+strconv.Itoa(endID), http.StatusNotFound)
		return
	}

	space := match.SpaceRGB
	switch r.URL.Query().Get("space") {
	case "", "rgb":
	case "hsv":
		space = match.SpaceHSV
	default:
		http.Error(w, "Parameter 'space' must be 'rgb' or 'hsv'", http.StatusBadRequest)
		return
	}

	stepCount, err := utils.ParseIntQuery(r.URL.Query().Get("steps"), 5)
	if err != nil {
		http.Error(w, "Invalid 'steps' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}
	steps := finder.Interpolate(*start, *end, stepCount, space, nil)

	log.Printf("🌈 Gradient %s to %s: %d steps in %s", start.Name, end.Name, len(steps), space)

	response := gradientResponse{Start: *start, End: *end, Space: space, Steps: steps}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Error encoding gradient response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Harmony handles GET /api/match/harmony?hex=&type=
func (c *MatchController) Harmony(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hex := r.URL.Query().Get("hex")
	if !utils.IsValidHex(hex) {
		http.Error(w, "Parameter 'hex' must be a hex color like #A1B2C3", http.StatusBadRequest)
		return
	}

	harmonyType := harmony.Type(r.URL.Query().Get("type"))
	if harmonyType == "" {
		harmonyType = harmony.Complementary
	}

	palette, err := harmony.Generate(hex, harmonyType, c.catalogService.Finder())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(palette); err != nil {
		log.Printf("❌ Error encoding harmony response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// HarmonyTypes handles GET /api/match/harmony/types
func (c *MatchController) HarmonyTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(harmony.Types()); err != nil {
		log.Printf("❌ Error encoding harmony types response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
