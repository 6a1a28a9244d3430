package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/dbx"
	"github.com/eperalta/filedrawer/internal/logging"
	"github.com/eperalta/filedrawer/internal/server/models"
	filesrepo "github.com/eperalta/filedrawer/internal/server/repositories/files"
	foldersrepo "github.com/eperalta/filedrawer/internal/server/repositories/folders"
	sessionsrepo "github.com/eperalta/filedrawer/internal/server/repositories/sessions"
	usersrepo "github.com/eperalta/filedrawer/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fake repositories ---

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	byUsername map[string]*models.User
	byID       map[int64]*models.User
	getErr     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeSessionsRepo struct {
	createdUserID int64
	createdToken  string
	createdFor    time.Duration
	createErr     error

	findOut *models.Session
	findErr error

	deleted []string

	sweepN   int64
	sweepErr error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdUserID = userID
	f.createdToken = token
	f.createdFor = validity
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.sweepN, f.sweepErr
}

type fakeFoldersRepo struct {
	created   *models.Folder
	createErr error

	listOut []*models.Folder
	listErr error

	getOut *models.Folder
	getErr error

	renameErr error

	deletedID int64
	deleteErr error
}

func (f *fakeFoldersRepo) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	folder.ID = 10
	f.created = folder
	return folder, nil
}

func (f *fakeFoldersRepo) ListByOwner(ctx context.Context, userID int64) ([]*models.Folder, error) {
	return f.listOut, f.listErr
}

func (f *fakeFoldersRepo) GetByOwner(ctx context.Context, userID, folderID int64) (*models.Folder, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeFoldersRepo) Rename(ctx context.Context, userID, folderID int64, name string) error {
	return f.renameErr
}

func (f *fakeFoldersRepo) Delete(ctx context.Context, userID, folderID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = folderID
	return nil
}

type fakeFilesRepo struct {
	created   *models.File
	createErr error

	getOut *models.File
	getErr error

	listOut []*models.File
	listErr error

	keysOut []string
	keysErr error
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = 100
	f.created = file
	return file, nil
}

func (f *fakeFilesRepo) GetByOwner(ctx context.Context, userID, fileID int64) (*models.File, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeFilesRepo) ListByFolder(ctx context.Context, userID int64, folderID *int64) ([]*models.File, error) {
	return f.listOut, f.listErr
}

func (f *fakeFilesRepo) ListStorageKeysByFolder(ctx context.Context, userID, folderID int64) ([]string, error) {
	return f.keysOut, f.keysErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	fo *fakeFoldersRepo
	fi *fakeFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *fakeRepoManager) Folders(db dbx.DBTX) foldersrepo.Repository   { return m.fo }
func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository       { return m.fi }

// --- fake blob store ---

type fakeBlobStore struct {
	uploadedData []byte
	uploadedMime string
	uploadedKey  string
	uploadURL    string
	uploadErr    error

	presignOut string
	presignErr error

	deletedKeys []string
	deleteErr   error
}

func (f *fakeBlobStore) Upload(ctx context.Context, data []byte, mimeType, key string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedData = data
	f.uploadedMime = mimeType
	f.uploadedKey = key
	return f.uploadURL, nil
}

func (f *fakeBlobStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	return f.presignOut, f.presignErr
}

func (f *fakeBlobStore) Delete(ctx context.Context, keys ...string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	return f.deleteErr
}
