package folders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+folders`).
		WithArgs("Receipts", int64(7)).
		WillReturnRows(rows)

	f, err := repo.Create(context.Background(), &models.Folder{Name: "Receipts", UserID: 7})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if f.ID != 10 {
		t.Fatalf("unexpected folder: %+v", f)
	}
}

func TestListByOwner_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*name,\s*user_id,\s*created_at\s+FROM\s+folders\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "user_id", "created_at"}).
		AddRow(int64(2), "newer", int64(7), now).
		AddRow(int64(1), "older", int64(7), now.Add(-time.Hour))
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "newer" || got[1].Name != "older" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetByOwner_ScopesToOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*name,\s*user_id,\s*created_at\s+FROM\s+folders\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`

	// bob (user 8) asking for alice's folder 10 gets zero rows
	mock.ExpectQuery(q).WithArgs(int64(10), int64(8)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByOwner(context.Background(), 8, 10)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound for foreign folder, got %v", err)
	}
}

func TestRename_NotFoundWhenNoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+folders\s+SET\s+name`).
		WithArgs("New", int64(10), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Rename(context.Background(), 8, 10, "New")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestRename_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+folders\s+SET\s+name`).
		WithArgs("New", int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Rename(context.Background(), 7, 10, "New"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
}

func TestDelete_NotFoundWhenNoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+folders`).
		WithArgs(int64(10), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 8, 10)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+folders`).
		WithArgs(int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7, 10); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
