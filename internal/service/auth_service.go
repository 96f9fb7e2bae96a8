package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/config"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/persistence"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// AuthService coordinates sign-up, sign-in and password flows.
type AuthService struct {
	profiles   repository.ProfileRepository
	cache      *persistence.ProfileCache
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles what the auth service needs.
type AuthDependencies struct {
	ProfileRepo  repository.ProfileRepository
	ProfileCache *persistence.ProfileCache
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		cache:      deps.ProfileCache,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries the fields accepted at sign-up. Accounts created
// through this path are always requesters; agent accounts are provisioned
// out of band.
type RegisterInput struct {
	FullName  string
	Email     string
	Password  string
	CompanyID *string
}

// Register creates a requester profile and signs it in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.UserProfile, string, time.Time, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.FullName == "" || input.Email == "" {
		return nil, "", time.Time{}, errorutil.NewValidationError("full name and email are required", nil)
	}
	if len(input.Password) < 8 {
		return nil, "", time.Time{}, errorutil.NewValidationError("password must have at least 8 characters", nil)
	}

	if _, err := s.profiles.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, errorutil.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, errorutil.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, errorutil.NewInternalError(err)
	}

	profile := &domain.UserProfile{
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         domain.RoleRequester,
		CompanyID:    input.CompanyID,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", time.Time{}, errorutil.MapError(err)
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(profile)
	if err != nil {
		return nil, "", time.Time{}, errorutil.NewInternalError(err)
	}
	return profile, token, expiresAt, nil
}

// Login authenticates by email and password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserProfile, string, time.Time, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, errorutil.MapError(err)
	}
	if !profile.IsActive {
		return nil, "", time.Time{}, errorutil.NewForbidden("account disabled")
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(profile)
	if err != nil {
		return nil, "", time.Time{}, errorutil.NewInternalError(err)
	}
	return profile, token, expiresAt, nil
}

// Logout drops the cached profile. Tokens stay valid until expiry; the
// cache entry is what binds the session-scoped profile to requests.
func (s *AuthService) Logout(ctx context.Context, profileID string) error {
	if profileID == "" {
		return nil
	}
	if err := s.cache.Invalidate(ctx, profileID); err != nil {
		return errorutil.NewInternalError(err)
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, profileID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return errorutil.NewValidationError("password must have at least 8 characters", nil)
	}
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return errorutil.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, currentPassword); err != nil {
		return errorutil.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return errorutil.NewInternalError(err)
	}
	profile.PasswordHash = hash
	if err := s.profiles.Update(ctx, profile); err != nil {
		return errorutil.MapError(err)
	}
	_ = s.cache.Invalidate(ctx, profileID)
	return nil
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
