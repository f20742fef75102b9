package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dye-atelier/models"
	"dye-atelier/repository"
	"dye-atelier/service"
)

type CollectionController struct {
	collectionRepo repository.CollectionRepositoryInterface
	catalogService *service.CatalogService
}

func NewCollectionController(collectionRepo repository.CollectionRepositoryInterface, catalogService *service.CatalogService) *CollectionController {
	return &CollectionController{
		collectionRepo: collectionRepo,
		catalogService: catalogService,
	}
}

// Collections handles /api/collections: GET lists collections, POST
// creates one.
func (c *CollectionController) Collections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.list(w, r)
	case http.MethodPost:
		c.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *CollectionController) list(w http.ResponseWriter, _ *http.Request) {
	collections, err := c.collectionRepo.List(context.Background())
	if err != nil {
		log.Printf("❌ Error listing collections: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(collections); err != nil {
		log.Printf("❌ Error encoding collections response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (c *CollectionController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Collection name is required", http.StatusBadRequest)
		return
	}

	collection, err := c.collectionRepo.Create(context.Background(), req.Name)
	if err != nil {
		log.Printf("❌ Error creating collection: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Collection created: %s (ID %d)", collection.Name, collection.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(collection); err != nil {
		log.Printf("❌ Error encoding collection response: %v", err)
	}
}

// CollectionByID handles /api/collections/{id}[/dyes[/{dyeID}]].
func (c *CollectionController) CollectionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/collections/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid collection ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			c.get(w, r, id)
		case http.MethodDelete:
			c.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "dyes":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.addDye(w, r, id)
	case len(parts) == 3 && parts[1] == "dyes":
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		dyeID, err := strconv.Atoi(parts[2])
		if err != nil || dyeID <= 0 {
			http.Error(w, "Invalid dye ID", http.StatusBadRequest)
			return
		}
		c.removeDye(w, r, id, dyeID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (c *CollectionController) get(w http.ResponseWriter, _ *http.Request, id int) {
	detail, err := c.collectionRepo.GetByID(context.Background(), id)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ Error fetching collection %d: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Resolve the stored dye IDs against the current catalog. A dye that
	// vanished from the catalog keeps its row but carries no details.
	cat := c.catalogService.Catalog()
	for i := range detail.Dyes {
		if dye, ok := cat.ByID(detail.Dyes[i].DyeID); ok {
			detail.Dyes[i].Dye = dye
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(detail); err != nil {
		log.Printf("❌ Error encoding collection response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (c *CollectionController) delete(w http.ResponseWriter, _ *http.Request, id int) {
	if err := c.collectionRepo.Delete(context.Background(), id); err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ Error deleting collection %d: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("🗑️ Collection %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *CollectionController) addDye(w http.ResponseWriter, r *http.Request, collectionID int) {
	var req models.AddCollectionDyeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, ok := c.catalogService.Catalog().ByID(req.DyeID); !ok {
		http.Error(w, "Dye not found: "+strconv.Itoa(req.DyeID), http.StatusBadRequest)
		return
	}

	entry, err := c.collectionRepo.AddDye(context.Background(), collectionID, req.DyeID)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ Error adding dye %d to collection %d: %v", req.DyeID, collectionID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Dye %d added to collection %d at position %d", req.DyeID, collectionID, entry.Position)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("❌ Error encoding collection dye response: %v", err)
	}
}

func (c *CollectionController) removeDye(w http.ResponseWriter, _ *http.Request, collectionID, dyeID int) {
	if err := c.collectionRepo.RemoveDye(context.Background(), collectionID, dyeID); err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ Error removing dye %d from collection %d: %v", dyeID, collectionID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("🗑️ Dye %d removed from collection %d", dyeID, collectionID)
	w.WriteHeader(http.StatusNoContent)
}
