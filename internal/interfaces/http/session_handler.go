package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/application/session"
)

// SessionHandler guarda y devuelve la última ruta visitada por el usuario.
type SessionHandler struct {
	uc *session.UseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *session.UseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// GetLastRoute GET /api/session/last-route. Devuelve route vacío si no hay ninguna guardada.
func (h *SessionHandler) GetLastRoute(c *fiber.Ctx) error {
	route, err := h.uc.LastRoute(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LastRouteDTO{Route: route})
}

// SaveLastRoute PUT /api/session/last-route
func (h *SessionHandler) SaveLastRoute(c *fiber.Ctx) error {
	var in dto.LastRouteDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SaveLastRoute(c.Context(), GetUserID(c), in.Route); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
