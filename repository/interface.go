package repository

import (
	"context"

	"dye-atelier/models"
)

// CollectionRepositoryInterface defines the contract for collection repository operations
type CollectionRepositoryInterface interface {
	Create(ctx context.Context, name string) (*models.Collection, error)
	List(ctx context.Context) ([]models.Collection, error)
	GetByID(ctx context.Context, id int) (*models.CollectionDetail, error)
	Delete(ctx context.Context, id int) error
	AddDye(ctx context.Context, collectionID, dyeID int) (*models.CollectionDye, error)
	RemoveDye(ctx context.Context, collectionID, dyeID int) error
}

// PriceRepositoryInterface defines the contract for price snapshot operations
type PriceRepositoryInterface interface {
	Record(ctx context.Context, snapshot models.PriceSnapshot) error
	LatestForDye(ctx context.Context, dyeID int, world string) (*models.PriceSnapshot, error)
}
