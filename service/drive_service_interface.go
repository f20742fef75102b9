package service

import "dye-atelier/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListDataFiles(folderID string) ([]models.DataFile, error)
	Download(fileID string) ([]byte, error)
}
