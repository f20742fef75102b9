package service

import (
	"context"

	"dye-atelier/models"
)

// MarketServiceInterface defines the contract for market price lookups
type MarketServiceInterface interface {
	GetPrice(ctx context.Context, dyeID int, world string) (*models.PriceQuote, error)
	GetPrices(ctx context.Context, dyeIDs []int, world string) []models.PriceQuote
}
