package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// RecruiterHandler handles recruiter-related API requests
type RecruiterHandler struct {
	repo repositories.RecruiterRepo
}

// NewRecruiterHandler creates a new recruiter handler
func NewRecruiterHandler(repo repositories.RecruiterRepo) *RecruiterHandler {
	return &RecruiterHandler{repo: repo}
}

// RegisterRoutes registers the recruiter routes
func (h *RecruiterHandler) RegisterRoutes(g *echo.Group) {
	recruiters := g.Group("/recruiters")
	recruiters.POST("", h.Create)
	recruiters.GET("", h.List)
	recruiters.GET("/:id", h.Get)
	recruiters.DELETE("/:id", h.Delete)
}

// Create handles POST /recruiters
func (h *RecruiterHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateRecruiterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recruiter, err := h.repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, recruiter)
}

// List handles GET /recruiters
func (h *RecruiterHandler) List(c echo.Context) error {
	recruiters, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return SuccessResponse(c, recruiters)
}

// Get handles GET /recruiters/:id
func (h *RecruiterHandler) Get(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	recruiter, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, recruiter)
}

// Delete handles DELETE /recruiters/:id. Fails with 409 while applications
// still reference the recruiter.
func (h *RecruiterHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
