package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// ClientHandler handles client-related API requests
type ClientHandler struct {
	repo repositories.ClientRepo
}

// NewClientHandler creates a new client handler
func NewClientHandler(repo repositories.ClientRepo) *ClientHandler {
	return &ClientHandler{repo: repo}
}

// RegisterRoutes registers the client routes
func (h *ClientHandler) RegisterRoutes(g *echo.Group) {
	clients := g.Group("/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/:id", h.Get)
	clients.DELETE("/:id", h.Delete)
}

// Create handles POST /clients
func (h *ClientHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, client)
}

// List handles GET /clients
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return SuccessResponse(c, clients)
}

// Get handles GET /clients/:id
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	client, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, client)
}

// Delete handles DELETE /clients/:id
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
