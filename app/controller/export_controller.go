package controller

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"dye-atelier/catalog"
	"dye-atelier/service"
	"dye-atelier/utils"
)

type ExportController struct {
	exportService  *service.ExportService
	catalogService *service.CatalogService
}

func NewExportController(exportService *service.ExportService, catalogService *service.CatalogService) *ExportController {
	return &ExportController{
		exportService:  exportService,
		catalogService: catalogService,
	}
}

// resolveDyes turns the ids query parameter into catalog dyes. An empty
// parameter means the whole catalog.
func (c *ExportController) resolveDyes(idsParam string) ([]catalog.Dye, error) {
	cat := c.catalogService.Catalog()
	if idsParam == "" {
		return cat.All(), nil
	}

	ids, err := utils.ParseIDList(idsParam)
	if err != nil {
		return nil, err
	}

	dyes := make([]catalog.Dye, 0, len(ids))
	for _, id := range ids {
		dye, ok := cat.ByID(id)
		if !ok {
			return nil, fmt.Errorf("dye with id %d does not exist", id)
		}
		dyes = append(dyes, *dye)
	}
	return dyes, nil
}

// RenderSheet handles GET /admin/export/render?ids=&lang=
// It serves the HTML page headless Chrome screenshots or prints.
func (c *ExportController) RenderSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dyes, err := c.resolveDyes(r.URL.Query().Get("ids"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := c.exportService.RenderSheetHTML(dyes, r.URL.Query().Get("lang"))
	if err != nil {
		log.Printf("❌ Error rendering swatch sheet: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// ExportPDF handles GET /api/export/pdf?ids=&lang=
func (c *ExportController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idsParam := r.URL.Query().Get("ids")
	if _, err := c.resolveDyes(idsParam); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("📄 PDF export requested (ids=%q)", idsParam)

	pdf, err := c.exportService.GeneratePDF(r.Context(), idsParam, r.URL.Query().Get("lang"))
	if err != nil {
		log.Printf("❌ Error generating PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("dye-swatches-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ Error writing PDF response: %v", err)
	}
}

// ExportPNG handles GET /api/export/png?ids=&lang=
func (c *ExportController) ExportPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idsParam := r.URL.Query().Get("ids")
	if _, err := c.resolveDyes(idsParam); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("🖼️ PNG export requested (ids=%q)", idsParam)

	png, err := c.exportService.GeneratePNG(r.Context(), idsParam, r.URL.Query().Get("lang"))
	if err != nil {
		log.Printf("❌ Error generating PNG: %v", err)
		http.Error(w, "Failed to generate PNG", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("dye-swatches-%s.png", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(png); err != nil {
		log.Printf("❌ Error writing PNG response: %v", err)
	}
}
