package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"dye-atelier/models"
	"dye-atelier/repository"
)

const (
	defaultMarketTimeout = 10 * time.Second
	defaultCacheTTL      = 5 * time.Minute
)

// MarketService looks up dye prices on an external market API. Successful
// lookups are cached in memory for a TTL and persisted as snapshots; when
// the external API fails, the most recent snapshot is served instead.
type MarketService struct {
	baseURL        string
	client         *http.Client
	cacheTTL       time.Duration
	priceRepo      repository.PriceRepositoryInterface
	catalogService *CatalogService

	mu    sync.RWMutex
	cache map[cacheKey]cachedQuote
}

type cacheKey struct {
	dyeID int
	world string
}

type cachedQuote struct {
	quote     models.PriceQuote
	expiresAt time.Time
}

// Ensure MarketService implements MarketServiceInterface
var _ MarketServiceInterface = (*MarketService)(nil)

// NewMarketService creates a new MarketService
func NewMarketService(baseURL string, cacheTTL time.Duration, priceRepo repository.PriceRepositoryInterface, catalogService *CatalogService) *MarketService {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &MarketService{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: defaultMarketTimeout},
		cacheTTL:       cacheTTL,
		priceRepo:      priceRepo,
		catalogService: catalogService,
		cache:          make(map[cacheKey]cachedQuote),
	}
}

// GetPrice returns the current price of one dye on one world.
func (s *MarketService) GetPrice(ctx context.Context, dyeID int, world string) (*models.PriceQuote, error) {
	dye, ok := s.catalogService.Catalog().ByID(dyeID)
	if !ok {
		return nil, fmt.Errorf("dye with id %d does not exist", dyeID)
	}

	// Cache hit
	key := cacheKey{dyeID: dyeID, world: world}
	s.mu.RLock()
	cached, found := s.cache[key]
	s.mu.RUnlock()
	if found && time.Now().Before(cached.expiresAt) {
		quote := cached.quote
		quote.Source = "cache"
		return &quote, nil
	}

	listing, err := s.fetchListing(ctx, dye.ExternalID, world)
	if err != nil {
		log.Printf("⚠️  Market lookup failed for dye %d: %v", dyeID, err)
		return s.snapshotFallback(ctx, dyeID, world, err)
	}

	quote := models.PriceQuote{
		DyeID:     dyeID,
		World:     world,
		Price:     listing.PricePerUnit,
		Source:    "live",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.cache[key] = cachedQuote{quote: quote, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()

	// Snapshot persistence is best effort; a failed insert must not fail
	// the lookup.
	if s.priceRepo != nil {
		snapshot := models.PriceSnapshot{DyeID: dyeID, World: world, Price: quote.Price}
		if err := s.priceRepo.Record(ctx, snapshot); err != nil {
			log.Printf("⚠️  Failed to persist price snapshot for dye %d: %v", dyeID, err)
		}
	}

	return &quote, nil
}

// GetPrices returns quotes for several dyes at once. Dyes whose lookup
// fails entirely (no live price, no snapshot) are omitted from the
// result rather than failing the whole request.
func (s *MarketService) GetPrices(ctx context.Context, dyeIDs []int, world string) []models.PriceQuote {
	var quotes []models.PriceQuote
	for _, id := range dyeIDs {
		quote, err := s.GetPrice(ctx, id, world)
		if err != nil {
			log.Printf("⚠️  Skipping dye %d in price list: %v", id, err)
			continue
		}
		quotes = append(quotes, *quote)
	}
	return quotes
}

// fetchListing calls the external price API for a single item.
func (s *MarketService) fetchListing(ctx context.Context, externalID int, world string) (*models.MarketListing, error) {
	url := fmt.Sprintf("%s/v2/prices/%s/%d", s.baseURL, world, externalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build market request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach market API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market API returned status %d", resp.StatusCode)
	}

	var listing models.MarketListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}
	return &listing, nil
}

// snapshotFallback serves the most recent persisted price when the
// external API is unavailable.
func (s *MarketService) snapshotFallback(ctx context.Context, dyeID int, world string, cause error) (*models.PriceQuote, error) {
	if s.priceRepo == nil {
		return nil, cause
	}

	snapshot, err := s.priceRepo.LatestForDye(ctx, dyeID, world)
	if err != nil || snapshot == nil {
		return nil, cause
	}

	log.Printf("📼 Serving snapshot price for dye %d (fetched %s)", dyeID, snapshot.FetchedAt)
	return &models.PriceQuote{
		DyeID:     dyeID,
		World:     world,
		Price:     snapshot.Price,
		Source:    "snapshot",
		FetchedAt: snapshot.FetchedAt,
	}, nil
}
