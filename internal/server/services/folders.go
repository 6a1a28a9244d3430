package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/dbx"
	"github.com/eperalta/filedrawer/internal/logging"
	"github.com/eperalta/filedrawer/internal/server/models"
	"github.com/eperalta/filedrawer/internal/server/repositories/repomanager"
)

// BlobStore is the object-store surface the services need. Implemented by
// blob.Uploader.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, mimeType, key string) (string, error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobStore
	logger      logging.Logger
}

func NewFolderService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, logger logging.Logger) *FolderService {
	return &FolderService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      logger,
	}
}

func (s *FolderService) Create(ctx context.Context, ownerID int64, name string) (*models.Folder, error) {

	if name == "" {
		return nil, common.ErrorValidation
	}

	folder := &models.Folder{
		Name:   name,
		UserID: ownerID,
	}

	repo := s.repomanager.Folders(s.db)

	folder, err := repo.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}

	return folder, nil
}

func (s *FolderService) List(ctx context.Context, ownerID int64) ([]*models.Folder, error) {
	return s.repomanager.Folders(s.db).ListByOwner(ctx, ownerID)
}

func (s *FolderService) Get(ctx context.Context, ownerID, folderID int64) (*models.Folder, error) {
	return s.repomanager.Folders(s.db).GetByOwner(ctx, ownerID, folderID)
}

func (s *FolderService) Rename(ctx context.Context, ownerID, folderID int64, name string) error {

	if name == "" {
		return common.ErrorValidation
	}

	return s.repomanager.Folders(s.db).Rename(ctx, ownerID, folderID, name)
}

// Delete removes a folder and its files in one transaction; the files'
// rows go via the FK cascade. Blob objects are removed best-effort after
// the commit, so a crash can leak objects but never DB state.
func (s *FolderService) Delete(ctx context.Context, ownerID, folderID int64) error {

	var storageKeys []string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		keys, err := s.repomanager.Files(tx).ListStorageKeysByFolder(ctx, ownerID, folderID)
		if err != nil {
			return err
		}
		storageKeys = keys

		return s.repomanager.Folders(tx).Delete(ctx, ownerID, folderID)
	})
	if err != nil {
		return err
	}

	if len(storageKeys) > 0 {
		if err := s.blobs.Delete(ctx, storageKeys...); err != nil {
			s.logger.Warn(ctx, "blob cleanup after folder delete failed", "folder_id", folderID, "error", err.Error())
		}
	}

	return nil
}
