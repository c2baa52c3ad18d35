package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

// CompanyHandler maneja el perfil de empresa del usuario (datos del emisor).
type CompanyHandler struct {
	uc *billing.CompanySettingsUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *billing.CompanySettingsUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener perfil de empresa
// @Tags         company-settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company-settings [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar perfil de empresa
// @Tags         company-settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TemplateRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company-settings [put]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
