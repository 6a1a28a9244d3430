package folders

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

func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {

	query :=
		`INSERT INTO folders (name, user_id)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		folder.Name, folder.UserID).Scan(&folder.ID, &folder.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.Folder, error) {
	query :=
		`SELECT id, name, user_id, created_at FROM folders
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}

	var result []*models.Folder

	defer rows.Close()
	for rows.Next() {
		var item = models.Folder{}
		err := rows.Scan(&item.ID, &item.Name, &item.UserID, &item.CreatedAt)
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

func (r *PostgresRepository) GetByOwner(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	query :=
		`SELECT id, name, user_id, created_at FROM folders
		 WHERE id = $1 AND user_id = $2
		 `

	folder := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, folderID, userID).Scan(&folder.ID, &folder.Name, &folder.UserID, &folder.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

func (r *PostgresRepository) Rename(ctx context.Context, userID, folderID int64, name string) error {

	query := `UPDATE folders SET name = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, name, folderID, userID)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, folderID int64) error {

	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
