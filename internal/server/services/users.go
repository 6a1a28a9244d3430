package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/logging"
	"github.com/eperalta/filedrawer/internal/server/config"
	"github.com/eperalta/filedrawer/internal/server/models"
	"github.com/eperalta/filedrawer/internal/server/repositories/repomanager"
)

const sessionTokenBytes = 32

// dummyHash keeps the bcrypt comparison cost roughly even for unknown
// usernames, so login timing does not reveal whether the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	logger          logging.Logger
	sessionValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		logger:          logger,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a new account with a bcrypt-hashed password. Duplicate
// usernames surface as common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords both return common.ErrorUnauthorized; the distinction is
// only logged.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Session, error) {

	if username == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.Info(ctx, "login rejected", "reason", "unknown username", "username", username)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info(ctx, "login rejected", "reason", "bad password", "username", username)
		return nil, common.ErrorUnauthorized
	}

	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}

	sessionRepo := s.repomanager.Sessions(s.db)

	if err := sessionRepo.Create(ctx, user.ID, token, s.sessionValidity); err != nil {
		return nil, common.ErrorInternal
	}

	return &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionValidity),
	}, nil
}

// ResolveSession maps a cookie token to its user. Expired sessions are
// deleted lazily; missing and expired tokens both come back as
// common.ErrorUnauthorized.
func (s *UserService) ResolveSession(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	sessionRepo := s.repomanager.Sessions(s.db)

	session, err := sessionRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if session.ExpiresAt.Before(time.Now()) {
		_ = sessionRepo.Delete(ctx, token)
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Logout destroys the session behind token. Unknown tokens are a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repomanager.Sessions(s.db).Delete(ctx, token)
}

// SweepExpiredSessions removes expired session rows. The app runs it on a
// ticker.
func (s *UserService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions(s.db).DeleteExpired(ctx, time.Now())
}
