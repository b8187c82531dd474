package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

// ApplicationHandler handles application lifecycle API requests
type ApplicationHandler struct {
	repo     repositories.ApplicationRepo
	payments repositories.PaymentRepo
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(repo repositories.ApplicationRepo, payments repositories.PaymentRepo) *ApplicationHandler {
	return &ApplicationHandler{repo: repo, payments: payments}
}

// RegisterRoutes registers the application routes
func (h *ApplicationHandler) RegisterRoutes(g *echo.Group) {
	applications := g.Group("/applications")
	applications.POST("", h.Create)
	applications.GET("/:id", h.Get)
	applications.PATCH("/:id", h.Update)
	applications.DELETE("/:id", h.Delete)
	applications.GET("/:id/payments", h.ListPayments)
	applications.POST("/:id/payments", h.CreatePayment)
}

// Create handles POST /applications
func (h *ApplicationHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.repo.Create(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, app)
}

// Get handles GET /applications/:id
func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, app)
}

// Update handles PATCH /applications/:id. Only the fields present in the
// body change; the merged record is validated before anything is written.
func (h *ApplicationHandler) Update(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}

	app, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, app)
}

// Delete handles DELETE /applications/:id
func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// ListPayments handles GET /applications/:id/payments
func (h *ApplicationHandler) ListPayments(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	payments, err := h.payments.ListByApplication(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, payments)
}

// CreatePayment handles POST /applications/:id/payments
func (h *ApplicationHandler) CreatePayment(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.payments.Create(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, payment)
}
