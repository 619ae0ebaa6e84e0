package handlers

import (
	"net/http"

	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/services"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles HTTP requests related to civic reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterReportRoutes registers report-related routes. createLimiter
// throttles report creation per identity.
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group, createLimiter echo.MiddlewareFunc) {
	g.POST("/reports", h.CreateReport, createLimiter)
	g.GET("/reports", h.ListReports)
	g.GET("/reports/analytics/summary", h.AnalyticsSummary)
	g.GET("/reports/:id", h.GetReport)
	g.PATCH("/reports/:id/status", h.UpdateStatus)
	g.POST("/reports/:id/publish", h.Publish)
}

// CreateReport files a new civic report
func (h *ReportHandler) CreateReport(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.reportService.CreateReport(identity, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// GetReport retrieves a report by its public id, privacy-gated
func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.reportService.GetReport(middleware.GetIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ListReports returns a role-scoped page of reports
func (h *ReportHandler) ListReports(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	page, limit := pagination(c, 20)

	reports, total, pages, err := h.reportService.ListReports(identity, c.QueryParam("category"), c.QueryParam("status"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reports": reports,
		"total":   total,
		"pages":   pages,
	})
}

// UpdateStatus moves a report through the resolution workflow
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.UpdateReportStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.reportService.UpdateStatus(identity, c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Publish promotes a report into the public feed (owner only, one-shot)
func (h *ReportHandler) Publish(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	report, post, err := h.reportService.Publish(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"report": report,
		"post":   post,
	})
}

// AnalyticsSummary returns report counts by status and category
func (h *ReportHandler) AnalyticsSummary(c echo.Context) error {
	summary, err := h.reportService.Analytics(middleware.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
