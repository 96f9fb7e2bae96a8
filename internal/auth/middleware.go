package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/persistence"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	apperrors "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the session-scoped identity resolved once per request after
// token verification and passed down explicitly to handlers.
type Principal struct {
	Profile *domain.UserProfile
}

// IsAgent reports whether the caller carries agent capability.
func (p *Principal) IsAgent() bool {
	return p != nil && p.Profile.IsAgent()
}

// AuthMiddleware validates bearer tokens and loads profiles, consulting the
// cache before the database.
type AuthMiddleware struct {
	tokens   *TokenManager
	profiles repository.ProfileRepository
	cache    *persistence.ProfileCache
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, profiles repository.ProfileRepository, cache *persistence.ProfileCache) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, profiles: profiles, cache: cache}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	profile, err := m.loadProfile(c.Context(), claims.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("profile not found")
		}
		return apperrors.MapError(err)
	}
	if !profile.IsActive {
		return apperrors.NewForbidden("profile deactivated")
	}

	c.Locals(principalKey, &Principal{Profile: profile})
	return c.Next()
}

func (m *AuthMiddleware) loadProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	if cached, err := m.cache.Get(ctx, id); err == nil {
		return cached, nil
	}
	profile, err := m.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = m.cache.Set(ctx, profile)
	return profile, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
