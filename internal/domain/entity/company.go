package entity

import "time"

// CompanyTemplate es un perfil reutilizable de empresa. Se usa tanto como "mi empresa"
// (company_settings) como para las plantillas de clientes facturables (templates).
type CompanyTemplate struct {
	ID          string
	UserID      string
	Name        string
	Address     string
	City        string
	PostalCode  string
	Country     string
	Phone       string
	Email       string
	Logo        string // referencia a la imagen (URL o data URI); opcional
	TaxID       string
	Description string
	IsEU        bool
	Notes       string
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientInfo devuelve la copia de dirección que se embebe en una factura.
func (t CompanyTemplate) ClientInfo() ClientInfo {
	return ClientInfo{
		Name:       t.Name,
		Address:    t.Address,
		City:       t.City,
		PostalCode: t.PostalCode,
		Country:    t.Country,
		Email:      t.Email,
		Currency:   t.Currency,
	}
}
