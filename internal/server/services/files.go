package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/logging"
	"github.com/eperalta/filedrawer/internal/server/blob"
	"github.com/eperalta/filedrawer/internal/server/config"
	"github.com/eperalta/filedrawer/internal/server/models"
	"github.com/eperalta/filedrawer/internal/server/repositories/repomanager"
)

type FileService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	blobs          BlobStore
	logger         logging.Logger
	maxUploadBytes int64
	blobTimeout    time.Duration
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, cfg *config.Config, logger logging.Logger) *FileService {
	return &FileService{
		db:             db,
		repomanager:    m,
		blobs:          blobs,
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		blobTimeout:    cfg.BlobRequestTimeout,
	}
}

// Upload pushes the payload to the blob store and records its metadata.
// A nil folderID files the upload under the default bucket; a non-nil one
// is validated against the owner before anything is stored, so a foreign
// folder reads as not found.
func (s *FileService) Upload(ctx context.Context, ownerID int64, folderID *int64, originalName, mimeType string, data []byte) (*models.File, error) {

	if originalName == "" || len(data) == 0 {
		return nil, common.ErrorValidation
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, common.ErrPayloadTooLarge
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	if folderID != nil {
		if _, err := s.repomanager.Folders(s.db).GetByOwner(ctx, ownerID, *folderID); err != nil {
			return nil, err
		}
	}

	key := blob.StorageKey(ownerID, originalName)

	// The blob store is the only unbounded external dependency; cap it.
	uploadCtx, cancel := context.WithTimeout(ctx, s.blobTimeout)
	defer cancel()

	url, err := s.blobs.Upload(uploadCtx, data, mimeType, key)
	if err != nil {
		s.logger.Error(ctx, "blob upload failed", "key", key, "error", err.Error())
		return nil, err
	}

	file := &models.File{
		OriginalName: originalName,
		StorageKey:   key,
		MimeType:     mimeType,
		SizeBytes:    int64(len(data)),
		URL:          url,
		UserID:       ownerID,
		FolderID:     folderID,
	}

	file, err = s.repomanager.Files(s.db).Create(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("error recording file: %w", err)
	}

	return file, nil
}

func (s *FileService) Get(ctx context.Context, ownerID, fileID int64) (*models.File, error) {
	return s.repomanager.Files(s.db).GetByOwner(ctx, ownerID, fileID)
}

// List returns the owner's files in a folder, newest first. A nil folderID
// selects loose files (the default bucket).
func (s *FileService) List(ctx context.Context, ownerID int64, folderID *int64) ([]*models.File, error) {
	return s.repomanager.Files(s.db).ListByFolder(ctx, ownerID, folderID)
}

// DownloadURL returns a presigned retrieval URL for an owned file.
func (s *FileService) DownloadURL(ctx context.Context, ownerID, fileID int64) (string, error) {

	file, err := s.repomanager.Files(s.db).GetByOwner(ctx, ownerID, fileID)
	if err != nil {
		return "", err
	}

	presignCtx, cancel := context.WithTimeout(ctx, s.blobTimeout)
	defer cancel()

	return s.blobs.PresignedGetURL(presignCtx, file.StorageKey)
}
