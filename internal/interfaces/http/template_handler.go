package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

// TemplateHandler CRUD de plantillas de clientes.
type TemplateHandler struct {
	store *billing.TemplateStore
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(store *billing.TemplateStore) *TemplateHandler {
	return &TemplateHandler{store: store}
}

// List godoc
// @Summary      Listar plantillas
// @Description  La primera consulta de un usuario sin plantillas siembra las tres de ejemplo.
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TemplateResponse
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	list, err := h.store.List(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, billing.ToTemplateResponse(t))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plantilla
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TemplateRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.store.Add(c.Context(), GetUserID(c), billing.FromTemplateRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToTemplateResponse(t))
}

// Update godoc
// @Summary      Actualizar plantilla
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Template ID"
// @Param        body  body  dto.TemplateRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t := billing.FromTemplateRequest(in)
	t.ID = c.Params("id")
	out, err := h.store.Update(c.Context(), GetUserID(c), t)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToTemplateResponse(out))
}

// Delete godoc
// @Summary      Eliminar plantilla
// @Tags         templates
// @Security     BearerAuth
// @Param        id  path  string  true  "Template ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
