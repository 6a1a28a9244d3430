package models

import "time"

// File describes metadata for an uploaded binary payload. The content
// itself lives in object storage under StorageKey; URL is the externally
// resolvable retrieval address recorded at upload time.
type File struct {
	ID           int64
	OriginalName string
	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string
	MimeType   string
	SizeBytes  int64
	URL        string
	// UserID is the owner of the file.
	UserID int64
	// FolderID is nil for loose files (the default bucket).
	FolderID  *int64
	CreatedAt time.Time
}
