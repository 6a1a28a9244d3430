package folders

import (
	"context"

	"github.com/eperalta/filedrawer/internal/server/models"
)

// Repository is the ownership-scoped folder store. Every lookup and
// mutation takes the owner's user id as part of the key, so a foreign
// folder is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	ListByOwner(ctx context.Context, userID int64) ([]*models.Folder, error)
	GetByOwner(ctx context.Context, userID, folderID int64) (*models.Folder, error)
	Rename(ctx context.Context, userID, folderID int64, name string) error
	Delete(ctx context.Context, userID, folderID int64) error
}
