package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// DateLayout formato de fecha en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate convierte "YYYY-MM-DD" a time.Time (UTC). Una fecha vacía o mal formada es ErrInvalidInput.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// ToInvoiceResponse mapea la entidad al DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
		})
	}
	return dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          formatDate(inv.Date),
		DueDate:       formatDate(inv.DueDate),
		Company:       ToTemplateResponse(&inv.Company),
		Client:        toClientDTO(inv.Client),
		Items:         items,
		Notes:         inv.Notes,
		Terms:         inv.Terms,
		Currency:      domainbilling.ResolveCurrency(inv),
		TotalAmount:   inv.TotalAmount,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		GrandTotal:    domainbilling.InvoiceGrandTotal(inv),
		Status:        inv.Status,
		Deleted:       inv.Deleted,
		DeletedAt:     inv.DeletedAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses mapea una lista.
func ToInvoiceResponses(list []*entity.Invoice) []dto.InvoiceResponse {
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out
}

// ToTemplateResponse mapea una plantilla (o el perfil de empresa) al DTO.
func ToTemplateResponse(t *entity.CompanyTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Address:     t.Address,
		City:        t.City,
		PostalCode:  t.PostalCode,
		Country:     t.Country,
		Phone:       t.Phone,
		Email:       t.Email,
		Logo:        t.Logo,
		TaxID:       t.TaxID,
		Description: t.Description,
		IsEU:        t.IsEU,
		Notes:       t.Notes,
		Currency:    t.Currency,
		Sample:      IsSampleID(t.ID),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromTemplateRequest construye la entidad a partir del DTO de entrada.
func FromTemplateRequest(in dto.TemplateRequest) *entity.CompanyTemplate {
	return &entity.CompanyTemplate{
		Name:        strings.TrimSpace(in.Name),
		Address:     in.Address,
		City:        in.City,
		PostalCode:  in.PostalCode,
		Country:     in.Country,
		Phone:       in.Phone,
		Email:       in.Email,
		Logo:        in.Logo,
		TaxID:       in.TaxID,
		Description: in.Description,
		IsEU:        in.IsEU,
		Notes:       in.Notes,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
	}
}

func toClientDTO(c entity.ClientInfo) dto.ClientInfoDTO {
	return dto.ClientInfoDTO{
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		Email:      c.Email,
		Currency:   c.Currency,
	}
}

func fromClientDTO(c dto.ClientInfoDTO) entity.ClientInfo {
	return entity.ClientInfo{
		Name:       strings.TrimSpace(c.Name),
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		Email:      c.Email,
		Currency:   strings.ToUpper(strings.TrimSpace(c.Currency)),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
