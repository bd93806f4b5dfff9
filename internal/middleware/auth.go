package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// UnavailableHandler answers a request whose identity provider could not be reached.
type UnavailableHandler func(c *fiber.Ctx, err error) error

// RequireIdentity authenticates the bearer token with provider. A missing or
// rejected token is answered with 401; onUnavailable answers provider failures.
func RequireIdentity(provider identity.Provider, timeout time.Duration, onUnavailable UnavailableHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := identity.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return authFailed(c)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		user, err := provider.ValidateToken(ctx, token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				return authFailed(c)
			}
			slog.Error("identity provider unavailable", "action", "validate_token", "request_id", RequestID(c), "error", err.Error())
			return onUnavailable(c, err)
		}

		c.Locals(identityKey, user)
		return c.Next()
	}
}

// JWTIdentity verifies tokens locally (shared secret and/or JWKS) instead of
// asking the identity provider per request.
func JWTIdentity(cfg *config.Config) fiber.Handler {
	jc := jwtware.Config{
		JWKSetURLs: cfg.JWKSURLs,
		SuccessHandler: func(c *fiber.Ctx) error {
			user, err := userFromToken(c.Locals("user"))
			if err != nil {
				return authFailed(c)
			}
			c.Locals(identityKey, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return authFailed(c)
		},
	}
	if cfg.SupabaseJWTSecret != "" {
		jc.SigningKey = jwtware.SigningKey{Key: []byte(cfg.SupabaseJWTSecret)}
	}
	return jwtware.New(jc)
}

// CurrentUser returns the identity stored by the authentication middleware.
func CurrentUser(c *fiber.Ctx) (*identity.User, bool) {
	user, ok := c.Locals(identityKey).(*identity.User)
	return user, ok && user != nil
}

func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func userFromToken(v interface{}) (*identity.User, error) {
	token, ok := v.(*jwt.Token)
	if !ok || token == nil {
		return nil, identity.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return &identity.User{ID: id, Email: email}, nil
}

func authFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authentication failed"})
}
