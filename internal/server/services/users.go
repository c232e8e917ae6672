// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and access-token checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/cryptox"
	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Session is what register and login hand back to the caller.
type Session struct {
	UserID      string
	UserName    string
	AccessToken string
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a user whose credential is stored only as a salted
// argon2id verifier. Empty fields yield common.ErrorInvalidInput, a taken
// username common.ErrorDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, credential string) (*Session, error) {
	if username == "" || credential == "" {
		return nil, common.ErrorInvalidInput
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		ID:       uuid.NewString(),
		UserName: username,
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(credential), salt),
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(user)
}

// Login checks credential against the stored verifier. Unknown usernames
// and mismatches both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, credential string) (*Session, error) {
	if username == "" || credential == "" {
		return nil, common.ErrorInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same work as a real check
			cryptox.CheckCredential([]byte(credential), cryptox.NewSalt(), nil)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !cryptox.CheckCredential([]byte(credential), user.Salt, user.Verifier) {
		return nil, common.ErrorInvalidCredentials
	}

	return s.newSession(user)
}

// UserIDFromToken resolves a bearer token to the owner identifier it was
// issued for.
func (s *UserService) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &Session{UserID: user.ID, UserName: user.UserName, AccessToken: token}, nil
}
