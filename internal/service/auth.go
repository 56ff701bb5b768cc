// Package service contains the application services: authentication, roles,
// orders and catalog management.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "orderhub/internal/crypto"
	"orderhub/internal/errs"
	"orderhub/internal/model"
	"orderhub/internal/repository"
	"orderhub/internal/token"
	"orderhub/internal/tokenstore"
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = "USER"

const specialChars = "#?!@$%^&*-"

// AuthService orchestrates register/login/refresh over the credential store,
// the role ledger, the token issuer and the refresh-token store.
type AuthService struct {
	users      repository.UserRepository
	roles      *RoleService
	issuer     *token.Issuer
	store      tokenstore.Store
	refreshTTL time.Duration
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, roles *RoleService, issuer *token.Issuer, store tokenstore.Store, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, roles: roles, issuer: issuer, store: store, refreshTTL: refreshTTL}
}

// Register creates a user with the default role in a single transaction and
// issues a token pair.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.AuthResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		return model.AuthResult{}, errs.ErrInvalidInput
	}
	if !passwordStrong(password) {
		return model.AuthResult{}, errs.ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.AuthResult{}, errs.ErrEmailExists
	}

	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.AuthResult{}, err
	}

	u := &model.User{
		ID:           uid,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.users.CreateWithRole(ctx, u, DefaultRole); err != nil {
		return model.AuthResult{}, err
	}

	roles := []string{DefaultRole}
	tokens, err := s.issuePair(ctx, uid, roles)
	if err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{User: *u, Roles: roles, Tokens: tokens}, nil
}

// Login authenticates by email and password and issues a fresh token pair.
// Unknown email and wrong password fail identically; prior sessions stay valid.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return model.AuthResult{}, errs.ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return model.AuthResult{}, errs.ErrInvalidCredentials
	}

	roles, err := s.roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return model.AuthResult{}, err
	}
	tokens, err := s.issuePair(ctx, u.ID, roles)
	if err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{User: *u, Roles: roles, Tokens: tokens}, nil
}

// Refresh rotates a refresh token: the new pair is stored before the consumed
// token is deleted, so a partial failure can leave two valid tokens but never
// zero. The delete reports whether the old token was still present; a caller
// that loses a concurrent rotation on the same token has its fresh pair
// revoked and gets ErrInvalidToken, so only the first rotation wins.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	userID, err := s.store.Get(ctx, refreshToken)
	if err != nil {
		return model.Tokens{}, err
	}
	if userID == "" {
		return model.Tokens{}, errs.ErrInvalidToken
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return model.Tokens{}, errs.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return model.Tokens{}, errs.ErrInvalidToken
	}
	roles, err := s.roles.NamesForUser(ctx, u.ID)
	if err != nil {
		return model.Tokens{}, err
	}

	tokens, err := s.issuePair(ctx, u.ID, roles)
	if err != nil {
		return model.Tokens{}, err
	}
	removed, err := s.store.Delete(ctx, refreshToken)
	if err != nil {
		return model.Tokens{}, err
	}
	if !removed {
		// another rotation consumed the token between our Get and Delete
		_, _ = s.store.Delete(ctx, tokens.RefreshToken)
		return model.Tokens{}, errs.ErrInvalidToken
	}
	return tokens, nil
}

// issuePair mints an access token, generates a refresh token and stores it.
func (s *AuthService) issuePair(ctx context.Context, userID uuid.UUID, roles []string) (model.Tokens, error) {
	access, exp, err := s.issuer.AccessToken(userID, roles)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, err := s.issuer.RefreshToken()
	if err != nil {
		return model.Tokens{}, err
	}
	if err := s.store.Save(ctx, refresh, userID.String(), s.refreshTTL); err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// passwordStrong checks length >= 8 and at least one upper, lower, digit and
// special character.
func passwordStrong(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
