package files

import (
	"context"

	"github.com/eperalta/filedrawer/internal/server/models"
)

// Repository is the ownership-scoped file-metadata store. A nil folderID
// in ListByFolder selects loose files (the default bucket).
type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByOwner(ctx context.Context, userID, fileID int64) (*models.File, error)
	ListByFolder(ctx context.Context, userID int64, folderID *int64) ([]*models.File, error)
	ListStorageKeysByFolder(ctx context.Context, userID, folderID int64) ([]string, error)
}
