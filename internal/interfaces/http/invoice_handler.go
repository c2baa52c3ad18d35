package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	bulk     *billing.BulkGenerateUseCase
	exporter *export.UseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, bulk *billing.BulkGenerateUseCase, exporter *export.UseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, bulk: bulk, exporter: exporter}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        deleted  query  bool  false  "true = papelera"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.invoices.List(c.Context(), GetUserID(c), c.QueryBool("deleted", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura
// @Description  Sin invoice_number se asigna el siguiente INV-n. Los importes se calculan en el servidor.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Invoice ID"
// @Param        body  body  dto.InvoiceRequest  true  "Factura"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SoftDelete godoc
// @Summary      Mover factura a la papelera
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) SoftDelete(c *fiber.Ctx) error {
	out, err := h.invoices.SoftDelete(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar factura de la papelera
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/restore [post]
func (h *InvoiceHandler) Restore(c *fiber.Ctx) error {
	out, err := h.invoices.Restore(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HardDelete godoc
// @Summary      Eliminar factura definitivamente
// @Tags         invoices
// @Security     BearerAuth
// @Param        id  path  string  true  "Invoice ID"
// @Success      204
// @Router       /api/invoices/{id}/permanent [delete]
func (h *InvoiceHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.invoices.HardDelete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkUpdate godoc
// @Summary      Edición masiva de fechas y notas
// @Description  No atómica: cada factura se actualiza por separado y los fallos se informan en errors.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkUpdateRequest  true  "ids y campos a cambiar"
// @Success      200   {object}  dto.BulkUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/bulk [patch]
func (h *InvoiceHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.BulkUpdate(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkGenerate godoc
// @Summary      Generación masiva de facturas pagadas
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkGenerateRequest  true  "Filas plantilla/importe"
// @Success      201   {object}  dto.BulkGenerateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/bulk-generate [post]
func (h *InvoiceHandler) BulkGenerate(c *fiber.Ctx) error {
	var in dto.BulkGenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bulk.Generate(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Export godoc
// @Summary      Exportar facturas en un ZIP
// @Tags         invoices
// @Accept       json
// @Produce      application/zip
// @Security     BearerAuth
// @Param        body  body  dto.ExportRequest  true  "ids y formato (pdf|xml)"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/export [post]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.exporter.ExportArchive(c.Context(), GetUserID(c), in.IDs, in.Format)
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// Document godoc
// @Summary      Descargar documento de una factura
// @Tags         invoices
// @Produce      application/pdf
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id      path   string  true   "Invoice ID"
// @Param        format  query  string  false  "pdf|xml"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/document [get]
func (h *InvoiceHandler) Document(c *fiber.Ctx) error {
	doc, err := h.exporter.RenderOne(c.Context(), GetUserID(c), c.Params("id"), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *export.Document) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Data)
}
