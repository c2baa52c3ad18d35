package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del resumen de facturación.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen anual de facturación.
// GET /api/dashboard?year=2025
//
// Respuesta: DashboardSummaryDTO (invoice_count, total_billed, outstanding, by_status,
// monthly[12], top_clients[5]). Sin year se usa el año en curso.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	if year < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year inválido"})
	}
	summary, err := h.uc.GetSummary(c.Context(), GetUserID(c), year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
