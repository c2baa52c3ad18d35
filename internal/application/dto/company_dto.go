package dto

import "time"

// TemplateRequest entrada para crear/actualizar una plantilla o el perfil de empresa.
type TemplateRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Logo        string `json:"logo,omitempty"`
	TaxID       string `json:"tax_id"`
	Description string `json:"description"`
	IsEU        bool   `json:"is_eu"`
	Notes       string `json:"notes"`
	Currency    string `json:"currency"`
}

// TemplateResponse salida de una plantilla o del perfil de empresa.
type TemplateResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Logo        string    `json:"logo,omitempty"`
	TaxID       string    `json:"tax_id"`
	Description string    `json:"description"`
	IsEU        bool      `json:"is_eu"`
	Notes       string    `json:"notes"`
	Currency    string    `json:"currency"`
	Sample      bool      `json:"sample,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
