package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"dye-atelier/app/controller"
	"dye-atelier/app/router"
	"dye-atelier/db"
	"dye-atelier/repository"
	"dye-atelier/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Load catalog and translation tables
	catalogService, err := service.NewCatalogService(dataDir)
	if err != nil {
		return err
	}
	localeService, err := service.NewLocaleService(dataDir)
	if err != nil {
		return err
	}

	// Initialize repositories
	collectionRepo := repository.NewCollectionRepository()
	priceRepo := repository.NewPriceRepository()

	// Market price lookups
	marketURL := os.Getenv("MARKET_API_URL")
	if marketURL == "" {
		marketURL = "https://market.dye-atelier.dev"
	}
	var cacheTTL time.Duration
	if raw := os.Getenv("MARKET_CACHE_TTL"); raw != "" {
		cacheTTL, err = time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid MARKET_CACHE_TTL: %w", err)
		}
	}
	marketService := service.NewMarketService(marketURL, cacheTTL, priceRepo, catalogService)

	// Palette extraction from uploaded images
	paletteService := service.NewPaletteService(catalogService)

	// Swatch sheet export (headless Chrome renders pages served by this
	// process, so it needs our own base URL)
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	exportService := service.NewExportService(catalogService, localeService, baseURL)

	// Drive data sync is optional; without credentials the sync endpoint
	// reports itself unavailable and everything else still works.
	var syncService service.SyncServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		syncService = service.NewSyncService(driveService, dataDir)
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, data sync disabled")
	}

	// Create controllers
	controllers := &router.Controllers{
		Dye:        controller.NewDyeController(catalogService, localeService),
		Match:      controller.NewMatchController(catalogService),
		Palette:    controller.NewPaletteController(paletteService),
		Collection: controller.NewCollectionController(collectionRepo, catalogService),
		Market:     controller.NewMarketController(marketService, catalogService),
		Export:     controller.NewExportController(exportService, catalogService),
		Sync:       controller.NewSyncController(syncService, catalogService, localeService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
