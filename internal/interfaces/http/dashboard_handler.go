package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/application/sandbox"
)

// DashboardHandler maneja el endpoint de contadores.
type DashboardHandler struct {
	svc *sandbox.RecordService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc *sandbox.RecordService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Counts devuelve los seis totales.
// GET /api/dashboard-counts
//
// Claves del contrato: "product" en singular y "order-item" con guion.
func (h *DashboardHandler) Counts(c *fiber.Ctx) error {
	counts, err := h.svc.Counts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(counts)
}
