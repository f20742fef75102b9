package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"dye-atelier/service"
	"dye-atelier/utils"
)

// maxUploadSize caps palette uploads at 10 MB.
const maxUploadSize = 10 << 20

type PaletteController struct {
	paletteService *service.PaletteService
}

func NewPaletteController(paletteService *service.PaletteService) *PaletteController {
	return &PaletteController{paletteService: paletteService}
}

// Extract handles POST /api/palette/extract?colors=
// The request body is multipart form data with the image under "image".
func (c *PaletteController) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("📥 Palette extraction request received")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing 'image' file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	count, err := utils.ParseIntQuery(r.URL.Query().Get("colors"), 0)
	if err != nil {
		http.Error(w, "Invalid 'colors' parameter: "+err.Error(), http.StatusBadRequest)
		return
	}

	response, err := c.paletteService.Extract(file, count)
	if err != nil {
		log.Printf("❌ Error extracting palette from %s: %v", header.Filename, err)
		http.Error(w, "Could not extract palette: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	log.Printf("✅ Extracted %d colors from %s", len(response.Colors), header.Filename)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Error encoding palette response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
