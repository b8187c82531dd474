package handlers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// VacancyHandler handles vacancy-related API requests
type VacancyHandler struct {
	repo repositories.VacancyRepo
}

// NewVacancyHandler creates a new vacancy handler
func NewVacancyHandler(repo repositories.VacancyRepo) *VacancyHandler {
	return &VacancyHandler{repo: repo}
}

// RegisterRoutes registers the vacancy routes
func (h *VacancyHandler) RegisterRoutes(g *echo.Group) {
	vacancies := g.Group("/vacancies")
	vacancies.POST("", h.Create)
	vacancies.GET("", h.List)
	vacancies.GET("/:id", h.Get)
	vacancies.DELETE("/:id", h.Delete)
}

// Create handles POST /vacancies
func (h *VacancyHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateVacancyRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vacancy, err := h.repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, vacancy)
}

// List handles GET /vacancies with an optional client_id filter
func (h *VacancyHandler) List(c echo.Context) error {
	var clientID *uuid.UUID
	if raw := c.QueryParam("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return BadRequest("invalid client_id: must be a valid UUID")
		}
		clientID = &id
	}

	vacancies, err := h.repo.List(c.Request().Context(), clientID)
	if err != nil {
		return err
	}

	return SuccessResponse(c, vacancies)
}

// Get handles GET /vacancies/:id
func (h *VacancyHandler) Get(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	vacancy, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, vacancy)
}

// Delete handles DELETE /vacancies/:id
func (h *VacancyHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
