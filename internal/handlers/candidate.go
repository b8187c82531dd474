package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// CandidateHandler handles candidate-related API requests
type CandidateHandler struct {
	repo repositories.CandidateRepo
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(repo repositories.CandidateRepo) *CandidateHandler {
	return &CandidateHandler{repo: repo}
}

// RegisterRoutes registers the candidate routes
func (h *CandidateHandler) RegisterRoutes(g *echo.Group) {
	candidates := g.Group("/candidates")
	candidates.POST("", h.Create)
	candidates.GET("", h.List)
	candidates.GET("/:id", h.Get)
	candidates.DELETE("/:id", h.Delete)
}

// Create handles POST /candidates
func (h *CandidateHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateCandidateRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	candidate, err := h.repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, candidate)
}

// List handles GET /candidates with an optional q search over name, phone
// and email.
func (h *CandidateHandler) List(c echo.Context) error {
	candidates, err := h.repo.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return SuccessResponse(c, candidates)
}

// Get handles GET /candidates/:id
func (h *CandidateHandler) Get(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	candidate, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, candidate)
}

// Delete handles DELETE /candidates/:id
func (h *CandidateHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
