package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura (descripción, cantidad, tarifa). El importe lo calcula el servidor.
type InvoiceItemRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// ClientInfoDTO datos del cliente embebidos en la factura.
type ClientInfoDTO struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Email      string `json:"email,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// InvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// El cliente sale de TemplateID o de Client (inline). La empresa emisora sale de Company
// o, si va vacía, del perfil de empresa del usuario.
type InvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number,omitempty"` // opcional; vacío = se asigna INV-n
	Date          string               `json:"date"`                     // YYYY-MM-DD
	DueDate       string               `json:"due_date"`                 // YYYY-MM-DD
	TemplateID    string               `json:"template_id,omitempty"`
	Client        *ClientInfoDTO       `json:"client,omitempty"`
	Company       *TemplateRequest     `json:"company,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
	Notes         string               `json:"notes,omitempty"`
	Terms         string               `json:"terms,omitempty"`
	Currency      string               `json:"currency,omitempty"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	Status        string               `json:"status,omitempty"` // draft|sent|paid
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	Date          string                `json:"date"`
	DueDate       string                `json:"due_date"`
	Company       TemplateResponse      `json:"company"`
	Client        ClientInfoDTO         `json:"client"`
	Items         []InvoiceItemResponse `json:"items"`
	Notes         string                `json:"notes"`
	Terms         string                `json:"terms"`
	Currency      string                `json:"currency"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TaxRate       decimal.Decimal       `json:"tax_rate"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	Status        string                `json:"status"`
	Deleted       bool                  `json:"deleted"`
	DeletedAt     *time.Time            `json:"deleted_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// BulkUpdateRequest body para PATCH /api/invoices/bulk. Solo se aplican los campos presentes.
type BulkUpdateRequest struct {
	IDs     []string `json:"ids"`
	Date    *string  `json:"date,omitempty"`
	DueDate *string  `json:"due_date,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

// BulkItemErrorDTO fallo de una factura concreta.
type BulkItemErrorDTO struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BulkUpdateResponse resumen de la edición masiva.
type BulkUpdateResponse struct {
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Errors  []BulkItemErrorDTO `json:"errors,omitempty"`
}

// BulkGenerateRowRequest una fila de la generación masiva: plantilla destino e importe.
// Amount llega como texto; las filas sin importe numérico positivo se descartan.
type BulkGenerateRowRequest struct {
	TemplateID  string `json:"template_id"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// BulkGenerateRequest body para POST /api/invoices/bulk-generate.
type BulkGenerateRequest struct {
	Date        string                   `json:"date"`
	DueDate     string                   `json:"due_date"`
	Description string                   `json:"description,omitempty"` // si no está vacía, reemplaza la de cada fila
	Rows        []BulkGenerateRowRequest `json:"rows"`
}

// BulkGenerateResponse resumen de la generación masiva.
type BulkGenerateResponse struct {
	Requested int               `json:"requested"`
	Accepted  int               `json:"accepted"`
	Created   int               `json:"created"`
	Failed    int               `json:"failed"`
	Invoices  []InvoiceResponse `json:"invoices"`
}

// ExportRequest body para POST /api/invoices/export.
type ExportRequest struct {
	IDs    []string `json:"ids"`
	Format string   `json:"format,omitempty"` // pdf (por defecto) | xml
}
