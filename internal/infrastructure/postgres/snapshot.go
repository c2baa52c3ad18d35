package postgres

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Copias embebidas en las columnas JSONB de invoices (company, client, items).
// Un JSON ilegible se lee como valor vacío en lugar de fallar el listado completo.

type companySnapshot struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Logo        string `json:"logo,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Description string `json:"description,omitempty"`
	IsEU        bool   `json:"is_eu,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

type clientSnapshot struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Email      string `json:"email,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

type itemSnapshot struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

func encodeCompany(c entity.CompanyTemplate) ([]byte, error) {
	return json.Marshal(companySnapshot{
		ID: c.ID, Name: c.Name, Address: c.Address, City: c.City, PostalCode: c.PostalCode,
		Country: c.Country, Phone: c.Phone, Email: c.Email, Logo: c.Logo, TaxID: c.TaxID,
		Description: c.Description, IsEU: c.IsEU, Notes: c.Notes, Currency: c.Currency,
	})
}

func decodeCompany(raw []byte) entity.CompanyTemplate {
	var s companySnapshot
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return entity.CompanyTemplate{}
	}
	return entity.CompanyTemplate{
		ID: s.ID, Name: s.Name, Address: s.Address, City: s.City, PostalCode: s.PostalCode,
		Country: s.Country, Phone: s.Phone, Email: s.Email, Logo: s.Logo, TaxID: s.TaxID,
		Description: s.Description, IsEU: s.IsEU, Notes: s.Notes, Currency: s.Currency,
	}
}

func encodeClient(c entity.ClientInfo) ([]byte, error) {
	return json.Marshal(clientSnapshot(c))
}

func decodeClient(raw []byte) entity.ClientInfo {
	var s clientSnapshot
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return entity.ClientInfo{}
	}
	return entity.ClientInfo(s)
}

func encodeItems(items []entity.InvoiceItem) ([]byte, error) {
	out := make([]itemSnapshot, 0, len(items))
	for _, it := range items {
		out = append(out, itemSnapshot(it))
	}
	return json.Marshal(out)
}

func decodeItems(raw []byte) []entity.InvoiceItem {
	var s []itemSnapshot
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return []entity.InvoiceItem{}
	}
	out := make([]entity.InvoiceItem, 0, len(s))
	for _, it := range s {
		out = append(out, entity.InvoiceItem(it))
	}
	return out
}

// invoiceRow fila cruda de invoices tal como sale del SELECT.
type invoiceRow struct {
	ID            string
	UserID        string
	InvoiceNumber string
	Date          time.Time
	DueDate       time.Time
	Company       []byte
	Client        []byte
	Items         []byte
	Notes         string
	Terms         string
	Currency      string
	TotalAmount   decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	Status        string
	Deleted       bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r invoiceRow) toEntity() *entity.Invoice {
	status := r.Status
	if !entity.ValidInvoiceStatus(status) {
		status = entity.InvoiceStatusDraft
	}
	inv := &entity.Invoice{
		ID:            r.ID,
		UserID:        r.UserID,
		InvoiceNumber: r.InvoiceNumber,
		Date:          r.Date,
		DueDate:       r.DueDate,
		Company:       decodeCompany(r.Company),
		Client:        decodeClient(r.Client),
		Items:         decodeItems(r.Items),
		Notes:         r.Notes,
		Terms:         r.Terms,
		Currency:      r.Currency,
		TotalAmount:   r.TotalAmount,
		TaxRate:       r.TaxRate,
		TaxAmount:     r.TaxAmount,
		Status:        status,
		Deleted:       r.Deleted,
		DeletedAt:     r.DeletedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	// Las columnas numéricas pueden venir redondeadas; las líneas JSONB son la fuente.
	domainbilling.ApplyTotals(inv)
	return inv
}
