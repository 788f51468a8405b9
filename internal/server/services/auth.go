// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, sign-in, token verification and
// whole-account session invalidation on top of the users repository, the
// password hasher and the token signer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authd/internal/common"
	"authd/internal/server/auth"
	"authd/internal/server/config"
	"authd/internal/server/credentials"
	"authd/internal/server/models"
	"authd/internal/server/repositories/repomanager"
	"authd/internal/server/validation"
)

// RegisterRequest carries the raw registration input. Phone and Image are
// optional and stored only when non-empty.
type RegisterRequest struct {
	Login    string
	Email    string
	Password string
	IsPublic bool
	Phone    string
	Image    string
}

// Profile is the public projection of a created account. It never carries
// the password or its hash.
type Profile struct {
	Login    string
	Email    string
	IsPublic bool
	Phone    string
	Image    string
}

// AuthService provides authentication-related operations:
//   - Register: validate input and create accounts
//   - SignIn: verify credentials, bump the sign-in counter and mint a token
//   - Authenticate: full token verification including the counter match
//   - InvalidateSessions: kill every outstanding token for an account
type AuthService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                credentials.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h credentials.Hasher, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                    db,
		repomanager:           m,
		hasher:                h,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// internalError keeps the sentinel matchable with errors.Is while preserving
// the underlying cause for server-side logs.
func internalError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}

// Register validates the request, checks the three identity fields for
// collisions, hashes the password and inserts the account.
//
// The pre-insert lookup is a fast path only: a concurrent registration can
// still hit the storage unique constraint, which also maps to
// common.ErrorAlreadyExists rather than an internal error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	if err := validation.Registration(req.Login, req.Email, req.Password, req.Phone, req.Image); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByIdentity(ctx, req.Login, req.Email, req.Phone)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, internalError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, internalError(err)
	}

	user := &models.User{
		Login:        req.Login,
		Email:        req.Email,
		PasswordHash: hash,
		IsPublic:     req.IsPublic,
		Phone:        req.Phone,
		Image:        req.Image,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, internalError(err)
	}

	return &Profile{
		Login:    created.Login,
		Email:    created.Email,
		IsPublic: created.IsPublic,
		Phone:    created.Phone,
		Image:    created.Image,
	}, nil
}

// SignIn verifies the password for login and returns a signed bearer token.
//
// Unknown login and wrong password both yield common.ErrorUnauthorized so
// callers cannot probe which logins exist. The update_token bump is
// persisted before the token is signed, so the issued token always embeds
// the current counter value.
func (s *AuthService) SignIn(ctx context.Context, login, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	creds, err := repo.GetCredentialsByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", internalError(err)
	}

	if !s.hasher.Verify(password, creds.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	updateToken, err := repo.IncrementUpdateToken(ctx, login)
	if err != nil {
		return "", internalError(err)
	}

	token, err := auth.GenerateToken(login, creds.TokenNumber, updateToken, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", internalError(err)
	}

	return token, nil
}

// Authenticate fully verifies a bearer token: signature, expiry, and an
// exact match of the embedded counters against current storage. A token
// issued before either counter was bumped is rejected even when its
// signature and expiry are fine.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	creds, err := repo.GetCredentialsByLogin(ctx, claims.Login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, internalError(err)
	}

	if claims.TokenNumber != creds.TokenNumber || claims.UpdateToken != creds.UpdateToken {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// InvalidateSessions bumps the account-wide token_number counter, which
// invalidates every previously issued token for login.
func (s *AuthService) InvalidateSessions(ctx context.Context, login string) error {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.IncrementTokenNumber(ctx, login); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return internalError(err)
	}
	return nil
}
