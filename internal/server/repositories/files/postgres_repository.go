package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/dbx"
	"github.com/eperalta/filedrawer/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (original_name, storage_key, mime_type, size_bytes, url, user_id, folder_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.OriginalName, file.StorageKey, file.MimeType, file.SizeBytes,
		file.URL, file.UserID, file.FolderID).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, userID, fileID int64) (*models.File, error) {
	query :=
		`SELECT id, original_name, storage_key, mime_type, size_bytes, url, user_id, folder_id, created_at FROM files
		 WHERE id = $1 AND user_id = $2
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, fileID, userID).Scan(
		&file.ID, &file.OriginalName, &file.StorageKey, &file.MimeType,
		&file.SizeBytes, &file.URL, &file.UserID, &file.FolderID, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// ListByFolder returns the owner's files in a folder, newest first.
// A nil folderID selects loose files.
func (r *PostgresRepository) ListByFolder(ctx context.Context, userID int64, folderID *int64) ([]*models.File, error) {

	query :=
		`SELECT id, original_name, storage_key, mime_type, size_bytes, url, user_id, folder_id, created_at FROM files
		 WHERE user_id = $1 AND folder_id IS NOT DISTINCT FROM $2
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}

	var result []*models.File

	defer rows.Close()
	for rows.Next() {
		var item = models.File{}
		err := rows.Scan(&item.ID, &item.OriginalName, &item.StorageKey, &item.MimeType,
			&item.SizeBytes, &item.URL, &item.UserID, &item.FolderID, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListStorageKeysByFolder collects the blob keys of a folder's files so the
// objects can be removed after a cascading folder delete commits.
func (r *PostgresRepository) ListStorageKeysByFolder(ctx context.Context, userID, folderID int64) ([]string, error) {

	query :=
		`SELECT storage_key FROM files
		 WHERE user_id = $1 AND folder_id = $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to select storage keys: %w", err)
	}

	var result []string

	defer rows.Close()
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		result = append(result, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
