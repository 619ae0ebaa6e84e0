package handlers

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"github.com/0xSujith18/Talkit/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler links Firebase-authenticated callers to application users and
// exposes the account lifecycle endpoints. Credential checking and token
// issuance live entirely in the external auth collaborator.
type AuthHandler struct {
	userRepository repositories.UserRepository
	accountService *services.AccountService
	authClient     *auth.Client
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, accountService *services.AccountService, authClient *auth.Client) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		accountService: accountService,
		authClient:     authClient,
	}
}

// RegisterAuthRoutes registers the unprotected registration route
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
}

// RegisterAccountRoutes registers the identity-protected account routes
func (h *AuthHandler) RegisterAccountRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
	g.DELETE("/auth/account", h.RequestDeletion)
}

// Register creates the application user row for a Firebase-authenticated
// caller. The token is verified here directly because the identity
// middleware requires the user row this endpoint is about to create.
func (h *AuthHandler) Register(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return apperrors.Unauthenticated("authorization header must be in Bearer format")
	}

	token, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
	if err != nil {
		return apperrors.Unauthenticated("invalid or expired ID token")
	}

	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &models.User{
		FirebaseUID: token.UID,
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        models.RoleCitizen,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return apperrors.Conflict("user already registered")
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the caller's profile, including any pending deletion schedule
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	user, err := h.userRepository.GetUserByID(identity.UserID)
	if err != nil {
		return apperrors.NotFound("user not found")
	}
	return c.JSON(http.StatusOK, user)
}

// RequestDeletion schedules the caller's account for removal after the
// grace period
func (h *AuthHandler) RequestDeletion(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	at, err := h.accountService.RequestDeletion(identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":               "Account scheduled for deletion",
		"deletion_scheduled_at": at,
	})
}
