package middleware

import (
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// IdentityMiddleware verifies the Firebase bearer token and resolves the
// full caller identity (id, role, verified) from the linked user row. The
// identity is resolved once here; handlers and services read it from the
// context instead of re-checking tokens or roles.
func IdentityMiddleware(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperrors.Unauthenticated("authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return apperrors.Unauthenticated("authorization header must be in Bearer format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return apperrors.Unauthenticated("invalid or expired ID token")
			}

			user, err := userRepo.GetUserByFirebaseUID(token.UID)
			if err != nil {
				return apperrors.Unauthenticated("authenticated user is not registered")
			}

			c.Set("firebaseUID", token.UID)
			c.Set(identityContextKey, models.Identity{
				UserID:   user.ID,
				Name:     user.Name,
				Role:     user.Role,
				Verified: user.IsVerified,
			})

			return next(c)
		}
	}
}

// GetIdentity returns the identity resolved by IdentityMiddleware.
// It must only be called on routes behind that middleware.
func GetIdentity(c echo.Context) models.Identity {
	identity, _ := c.Get(identityContextKey).(models.Identity)
	return identity
}
