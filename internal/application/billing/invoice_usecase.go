package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// InvoiceUseCase casos de uso de facturas: alta, edición, papelera y edición masiva.
// Valida y arma la entidad; la persistencia y la caché quedan en InvoiceStore.
type InvoiceUseCase struct {
	store     *InvoiceStore
	templates *TemplateStore
	settings  *CompanySettingsUseCase
	numbers   NumberGenerator
	log       zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	store *InvoiceStore,
	templates *TemplateStore,
	settings *CompanySettingsUseCase,
	numbers NumberGenerator,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		store:     store,
		templates: templates,
		settings:  settings,
		numbers:   numbers,
		log:       log,
	}
}

// Create valida la solicitud, asigna número si no viene y guarda la factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = uc.numbers.Next(ctx)
	}
	saved, err := uc.store.Add(ctx, userID, inv)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(saved)
	return &out, nil
}

// Update reemplaza la factura completa. Sin número en la solicitud se conserva el actual.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	current, err := uc.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	inv, err := uc.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	inv.ID = current.ID
	inv.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = current.InvoiceNumber
	}
	saved, err := uc.store.Update(ctx, userID, inv)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(saved)
	return &out, nil
}

// List devuelve las facturas activas (deleted=false) o las de la papelera (deleted=true).
// Si el repositorio falla se devuelven los datos previos de la caché junto al error.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, deleted bool) ([]dto.InvoiceResponse, error) {
	list, err := uc.store.List(ctx, userID)
	return ToInvoiceResponses(FilterDeleted(list, deleted)), err
}

// Get devuelve una factura del usuario.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// SoftDelete mueve la factura a la papelera.
func (uc *InvoiceUseCase) SoftDelete(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.SoftDelete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// Restore saca la factura de la papelera.
func (uc *InvoiceUseCase) Restore(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Restore(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// HardDelete elimina la factura definitivamente.
func (uc *InvoiceUseCase) HardDelete(ctx context.Context, userID, id string) error {
	return uc.store.HardDelete(ctx, userID, id)
}

// BulkUpdate aplica fecha, vencimiento y/o notas a varias facturas. Solo se tocan los campos enviados.
func (uc *InvoiceUseCase) BulkUpdate(ctx context.Context, userID string, in dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	var patch entity.InvoicePatch
	if in.Date != nil {
		t, err := ParseDate("date", *in.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &t
	}
	if in.DueDate != nil {
		t, err := ParseDate("due_date", *in.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = &t
	}
	patch.Notes = in.Notes

	res, err := uc.store.BulkUpdate(ctx, userID, in.IDs, patch)
	if err != nil {
		return nil, err
	}
	out := &dto.BulkUpdateResponse{Updated: res.Updated, Failed: res.Failed}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, dto.BulkItemErrorDTO{ID: e.ID, Message: e.Err.Error()})
	}
	return out, nil
}

// build arma la entidad a partir de la solicitud (sin id ni número).
func (uc *InvoiceUseCase) build(ctx context.Context, userID string, in dto.InvoiceRequest) (*entity.Invoice, error) {
	date, err := ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	due, err := ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: estado %q no admitido", domain.ErrInvalidInput, in.Status)
	}
	if in.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax_rate no puede ser negativo", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con cantidad o tarifa inválida", domain.ErrInvalidInput, i+1)
		}
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		items = append(items, entity.InvoiceItem{
			ID:          id,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}

	company, err := uc.resolveCompany(ctx, userID, in.Company)
	if err != nil {
		return nil, err
	}
	client, err := uc.resolveClient(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	return &entity.Invoice{
		Date:     date,
		DueDate:  due,
		Company:  *company,
		Client:   client,
		Items:    items,
		Notes:    in.Notes,
		Terms:    in.Terms,
		Currency: strings.ToUpper(strings.TrimSpace(in.Currency)),
		TaxRate:  in.TaxRate,
		Status:   status,
	}, nil
}

func (uc *InvoiceUseCase) resolveCompany(ctx context.Context, userID string, inline *dto.TemplateRequest) (*entity.CompanyTemplate, error) {
	if inline != nil && strings.TrimSpace(inline.Name) != "" {
		c := FromTemplateRequest(*inline)
		c.UserID = userID
		return c, nil
	}
	c, err := uc.settings.load(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: configure primero los datos de su empresa", domain.ErrNotFound)
	}
	return c, err
}

func (uc *InvoiceUseCase) resolveClient(ctx context.Context, userID string, in dto.InvoiceRequest) (entity.ClientInfo, error) {
	if in.TemplateID != "" {
		t, err := uc.templates.Get(ctx, userID, in.TemplateID)
		if err != nil {
			return entity.ClientInfo{}, err
		}
		return t.ClientInfo(), nil
	}
	if in.Client == nil || strings.TrimSpace(in.Client.Name) == "" {
		return entity.ClientInfo{}, fmt.Errorf("%w: indique template_id o los datos del cliente", domain.ErrInvalidInput)
	}
	return fromClientDTO(*in.Client), nil
}
