package models

// DataFile is a catalog or locale data file discovered in the remote
// data folder.
type DataFile struct {
	DriveFileID string `json:"driveFileId"`
	Name        string `json:"name"`
	MD5Checksum string `json:"md5Checksum"`
}

// SyncResult reports the outcome of a catalog data synchronization.
type SyncResult struct {
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Total      int      `json:"total"`
	Files      []string `json:"files"`
	Reloaded   bool     `json:"reloaded"`
}
