package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

// ValidInvoiceStatus indica si s es uno de los estados admitidos.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// InvoiceItem representa una línea de la factura. Amount se deriva siempre de Quantity × Rate.
type InvoiceItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// ClientInfo es la copia de los datos del cliente embebida en la factura al crearla.
type ClientInfo struct {
	Name       string
	Address    string
	City       string
	PostalCode string
	Country    string
	Email      string
	Currency   string
}

// Invoice representa una factura con sus líneas y las copias de empresa y cliente.
// Los cambios posteriores en las plantillas no alteran facturas ya emitidas.
type Invoice struct {
	ID            string
	UserID        string
	InvoiceNumber string
	Date          time.Time
	DueDate       time.Time
	Company       CompanyTemplate
	Client        ClientInfo
	Items         []InvoiceItem
	Notes         string
	Terms         string
	Currency      string
	TotalAmount   decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje; cero = sin impuesto
	TaxAmount     decimal.Decimal
	Status        string
	Deleted       bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone devuelve una copia profunda (líneas y DeletedAt incluidos).
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Items = append([]InvoiceItem(nil), inv.Items...)
	if inv.DeletedAt != nil {
		t := *inv.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

// InvoicePatch actualización parcial usada por la edición masiva: solo se aplican los campos no nil.
type InvoicePatch struct {
	Date    *time.Time
	DueDate *time.Time
	Notes   *string
}

// IsEmpty indica que el patch no modifica ningún campo.
func (p InvoicePatch) IsEmpty() bool {
	return p.Date == nil && p.DueDate == nil && p.Notes == nil
}

// ApplyTo copia en inv únicamente los campos presentes.
func (p InvoicePatch) ApplyTo(inv *Invoice) {
	if p.Date != nil {
		inv.Date = *p.Date
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
	}
}
