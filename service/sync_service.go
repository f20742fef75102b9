package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dye-atelier/models"
)

// SyncService pulls dye catalog and locale data files from Google Drive
// into the local data directory, so the catalog can be updated without a
// new build.
type SyncService struct {
	driveService DriveServiceInterface
	dataDir      string
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, dataDir string) *SyncService {
	return &SyncService{
		driveService: driveService,
		dataDir:      dataDir,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncDataFiles downloads every JSON data file in the folder whose
// checksum differs from the local copy. downloaded = files written,
// skipped = files already up to date, total = data files seen in Drive.
func (s *SyncService) SyncDataFiles(ctx context.Context, folderID string) (*models.SyncResult, error) {
	log.Printf("🔄 Starting data sync for folder: %s", folderID)

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	files, err := s.driveService.ListDataFiles(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list data files from Drive: %w", err)
	}

	log.Printf("📦 Processing %d data files from Google Drive", len(files))

	result := &models.SyncResult{Total: len(files)}
	for _, file := range files {
		localPath := filepath.Join(s.dataDir, filepath.Base(file.Name))

		if file.MD5Checksum != "" && localChecksum(localPath) == file.MD5Checksum {
			log.Printf("⏭️  Skipping %s (unchanged)", file.Name)
			result.Skipped++
			continue
		}

		log.Printf("🆕 Downloading %s (drive_file_id: %s)", file.Name, file.DriveFileID)
		data, err := s.driveService.Download(file.DriveFileID)
		if err != nil {
			log.Printf("❌ Error downloading %s: %v", file.Name, err)
			continue
		}

		if err := os.WriteFile(localPath, data, 0644); err != nil {
			log.Printf("❌ Error writing %s: %v", localPath, err)
			continue
		}

		result.Downloaded++
		result.Files = append(result.Files, file.Name)
		log.Printf("✅ Synced %s (%d bytes)", file.Name, len(data))
	}

	log.Printf("🎉 Data sync completed: %d downloaded, %d skipped, %d total",
		result.Downloaded, result.Skipped, result.Total)
	return result, nil
}

// localChecksum returns the md5 of a local file, or "" when it cannot be
// read (missing file means a download is needed anyway).
func localChecksum(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
