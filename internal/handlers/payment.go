package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/repositories"
)

// PaymentHandler handles payment ledger API requests not scoped to an
// application.
type PaymentHandler struct {
	repo repositories.PaymentRepo
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(repo repositories.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{repo: repo}
}

// RegisterRoutes registers the payment routes
func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	payments := g.Group("/payments")
	payments.DELETE("/:id", h.Delete)
}

// Delete handles DELETE /payments/:id. The owning application's payment
// cache is recomputed in the same transaction.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := ParseUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
