package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDLocal = "userID"

// RequireAuth accepts an HS256 bearer token and stores its subject as the
// caller's user id.
func RequireAuth(cfg *config.AuthConfig) fiber.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	secret := []byte(cfg.JWTSecret)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return util.HandleError(c, util.Unauthenticated("missing bearer token"))
		}

		var claims jwt.RegisteredClaims
		_, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(t *jwt.Token) (any, error) {
			if len(secret) == 0 {
				return nil, errors.New("JWT_SECRET not set")
			}
			return secret, nil
		})
		if err != nil {
			return util.HandleError(c, &util.AppError{
				Kind:    util.KindUnauthenticated,
				Message: "invalid token",
				Err:     err,
			})
		}
		if claims.Subject == "" {
			return util.HandleError(c, util.Unauthenticated("token has no subject"))
		}

		c.Locals(userIDLocal, claims.Subject)
		return c.Next()
	}
}

// UserID returns the caller set by RequireAuth.
func UserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(userIDLocal).(string)
	if !ok || id == "" {
		return "", util.Unauthenticated("authentication required")
	}
	return id, nil
}

// SignToken issues a token for userID. Used by jobctl and tests.
func SignToken(cfg *config.AuthConfig, userID string, claims jwt.RegisteredClaims) (string, error) {
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}
	claims.Subject = userID
	if cfg.Issuer != "" {
		claims.Issuer = cfg.Issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}
