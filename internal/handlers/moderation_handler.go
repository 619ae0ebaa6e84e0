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

// ModerationHandler handles HTTP requests for the moderation workflow
type ModerationHandler struct {
	moderationService *services.ModerationService
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterModerationRoutes registers moderation-related routes
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.POST("/moderation/report", h.FileReport)
	g.GET("/moderation/reports", h.ListPending)
	g.PATCH("/moderation/reports/:id", h.Review)
}

// FileReport files a moderation report against content
func (h *ModerationHandler) FileReport(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.FileModerationReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.moderationService.File(identity, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// ListPending returns the admin review queue
func (h *ModerationHandler) ListPending(c echo.Context) error {
	reports, err := h.moderationService.ListPending(middleware.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Review resolves a moderation report, possibly removing its target
func (h *ModerationHandler) Review(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.Validation("invalid moderation report id")
	}

	var req models.ReviewModerationReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.moderationService.Review(c.Request().Context(), identity, uint(reportID), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
