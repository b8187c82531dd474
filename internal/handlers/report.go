package handlers

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// ReportHandler handles the reporting API requests
type ReportHandler struct {
	repo repositories.ReportRepo
}

// NewReportHandler creates a new report handler
func NewReportHandler(repo repositories.ReportRepo) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	reports := g.Group("/reports")
	reports.GET("/pipeline", h.Pipeline)
	reports.GET("/earnings", h.Earnings)
}

// Pipeline handles GET /reports/pipeline
func (h *ReportHandler) Pipeline(c echo.Context) error {
	var filter models.PipelineFilter

	if raw := c.QueryParam("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return BadRequest("invalid client_id: must be a valid UUID")
		}
		filter.ClientID = &id
	}

	if raw := c.QueryParam("recruiter_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return BadRequest("invalid recruiter_id: must be a valid UUID")
		}
		filter.RecruiterID = &id
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		filter.Status = &status
	}

	filter.Search = c.QueryParam("search")
	if filter.Search == "" {
		// q kept as an alias
		filter.Search = c.QueryParam("q")
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return BadRequest("invalid limit: must be an integer")
		}
		filter.Limit = limit
	}

	rows, err := h.repo.Pipeline(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return SuccessResponse(c, rows)
}

// Earnings handles GET /reports/earnings
func (h *ReportHandler) Earnings(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return BadRequest("invalid year: must be an integer")
	}

	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return BadRequest("invalid month: must be an integer")
	}

	report, err := h.repo.Earnings(c.Request().Context(), year, month)
	if err != nil {
		return err
	}

	return SuccessResponse(c, report)
}
