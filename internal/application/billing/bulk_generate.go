package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// BulkGenerateUseCase genera una factura por cada fila (plantilla + importe) con fecha y descripción comunes.
// Las facturas generadas siempre quedan en estado paid.
type BulkGenerateUseCase struct {
	store     *InvoiceStore
	templates *TemplateStore
	settings  *CompanySettingsUseCase
	numbers   NumberGenerator
	log       zerolog.Logger
}

// NewBulkGenerateUseCase construye el caso de uso.
func NewBulkGenerateUseCase(
	store *InvoiceStore,
	templates *TemplateStore,
	settings *CompanySettingsUseCase,
	numbers NumberGenerator,
	log zerolog.Logger,
) *BulkGenerateUseCase {
	return &BulkGenerateUseCase{
		store:     store,
		templates: templates,
		settings:  settings,
		numbers:   numbers,
		log:       log,
	}
}

type acceptedRow struct {
	row    dto.BulkGenerateRowRequest
	amount decimal.Decimal
}

// Generate crea las facturas de forma secuencial, en el orden de las filas.
//
// Retorna:
//   - domain.ErrNoValidRows          si ninguna fila tiene un importe numérico positivo.
//   - domain.ErrNotFound             si el usuario no configuró su empresa.
//   - domain.ErrBulkGenerationFailed si había filas válidas pero no se guardó ninguna factura.
func (uc *BulkGenerateUseCase) Generate(ctx context.Context, userID string, in dto.BulkGenerateRequest) (*dto.BulkGenerateResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	date, err := ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	due, err := ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}

	accepted := filterRows(in.Rows)
	res := &dto.BulkGenerateResponse{
		Requested: len(in.Rows),
		Accepted:  len(accepted),
		Invoices:  []dto.InvoiceResponse{},
	}
	if len(accepted) == 0 {
		return res, domain.ErrNoValidRows
	}

	company, err := uc.settings.load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: configure primero los datos de su empresa", err)
	}

	for _, a := range accepted {
		inv, err := uc.buildRow(ctx, userID, company, date, due, in.Description, a)
		if err == nil {
			inv, err = uc.store.Add(ctx, userID, inv)
		}
		if err != nil {
			res.Failed++
			uc.log.Error().Err(err).Str("user_id", userID).Str("template_id", a.row.TemplateID).Msg("generación masiva: fila no generada")
			continue
		}
		res.Created++
		res.Invoices = append(res.Invoices, ToInvoiceResponse(inv))
	}

	uc.log.Info().Str("user_id", userID).Int("accepted", res.Accepted).Int("created", res.Created).Int("failed", res.Failed).Msg("generación masiva")
	if res.Created == 0 {
		return res, domain.ErrBulkGenerationFailed
	}
	return res, nil
}

// filterRows conserva, en orden, las filas cuyo importe es un número mayor que cero.
func filterRows(rows []dto.BulkGenerateRowRequest) []acceptedRow {
	out := make([]acceptedRow, 0, len(rows))
	for _, r := range rows {
		amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil || !amount.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, acceptedRow{row: r, amount: amount})
	}
	return out
}

func (uc *BulkGenerateUseCase) buildRow(
	ctx context.Context,
	userID string,
	company *entity.CompanyTemplate,
	date, due time.Time,
	globalDescription string,
	a acceptedRow,
) (*entity.Invoice, error) {
	t, err := uc.templates.Get(ctx, userID, a.row.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("plantilla %q: %w", a.row.TemplateID, err)
	}
	description := strings.TrimSpace(globalDescription)
	if description == "" {
		description = strings.TrimSpace(a.row.Description)
	}
	return &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: uc.numbers.Next(ctx),
		Date:          date,
		DueDate:       due,
		Company:       *company,
		Client:        t.ClientInfo(),
		Items: []entity.InvoiceItem{{
			ID:          uuid.New().String(),
			Description: description,
			Quantity:    decimal.NewFromInt(1),
			Rate:        a.amount,
			Amount:      a.amount,
		}},
		Currency: strings.ToUpper(strings.TrimSpace(a.row.Currency)),
		TaxRate:  decimal.Zero,
		Status:   entity.InvoiceStatusPaid,
	}, nil
}
