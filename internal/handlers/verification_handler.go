package handlers

import (
	"net/http"
	"strconv"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/services"
	"github.com/labstack/echo/v4"
)

// VerificationHandler handles HTTP requests for the verified-badge workflow
type VerificationHandler struct {
	verificationService *services.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// RegisterVerificationRoutes registers verification-related routes
func (h *VerificationHandler) RegisterVerificationRoutes(g *echo.Group) {
	g.POST("/verification/requests", h.Request)
	g.GET("/verification/requests", h.ListPending)
	g.POST("/verification/requests/:id/approve", h.Approve)
	g.POST("/verification/requests/:id/reject", h.Reject)
}

// Request files a verification application for the caller
func (h *VerificationHandler) Request(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.RequestVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	request, err := h.verificationService.Request(identity, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

// ListPending returns the admin verification queue
func (h *VerificationHandler) ListPending(c echo.Context) error {
	requests, err := h.verificationService.ListPending(middleware.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Approve grants the verified badge
func (h *VerificationHandler) Approve(c echo.Context) error {
	requestID, err := requestIDParam(c)
	if err != nil {
		return err
	}
	request, err := h.verificationService.Approve(middleware.GetIdentity(c), requestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Reject declines the application
func (h *VerificationHandler) Reject(c echo.Context) error {
	requestID, err := requestIDParam(c)
	if err != nil {
		return err
	}
	request, err := h.verificationService.Reject(middleware.GetIdentity(c), requestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

func requestIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.Validation("invalid verification request id")
	}
	return uint(id), nil
}
