package service

import (
	"context"

	"dye-atelier/models"
)

// SyncServiceInterface defines the contract for catalog data synchronization
type SyncServiceInterface interface {
	SyncDataFiles(ctx context.Context, folderID string) (*models.SyncResult, error)
}
