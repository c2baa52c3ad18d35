package billing_test

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/numbering"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
)

const userID = "user-1"

var errBackend = errors.New("backend caído")

// flakyInvoiceRepo falla en las operaciones marcadas; el resto delega en memoria.
type flakyInvoiceRepo struct {
	*memory.InvoiceRepository
	failList   bool
	failCreate bool
	failIDs    map[string]bool
}

func newFlakyInvoiceRepo() *flakyInvoiceRepo {
	return &flakyInvoiceRepo{InvoiceRepository: memory.NewInvoiceRepository(), failIDs: map[string]bool{}}
}

func (r *flakyInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	if r.failList {
		return nil, errBackend
	}
	return r.InvoiceRepository.ListByUser(ctx, userID)
}

func (r *flakyInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if r.failCreate {
		return errBackend
	}
	return r.InvoiceRepository.Create(ctx, inv)
}

func (r *flakyInvoiceRepo) UpdateFields(ctx context.Context, userID, id string, patch entity.InvoicePatch) error {
	if r.failIDs[id] {
		return errBackend
	}
	return r.InvoiceRepository.UpdateFields(ctx, userID, id, patch)
}

func (r *flakyInvoiceRepo) SetDeleted(ctx context.Context, userID, id string, deletedAt *time.Time) error {
	if r.failIDs[id] {
		return errBackend
	}
	return r.InvoiceRepository.SetDeleted(ctx, userID, id, deletedAt)
}

// flakyTemplateRepo igual que flakyInvoiceRepo para plantillas.
type flakyTemplateRepo struct {
	*memory.TemplateRepository
	failList   bool
	failCreate bool
	deletes    int
}

func newFlakyTemplateRepo() *flakyTemplateRepo {
	return &flakyTemplateRepo{TemplateRepository: memory.NewTemplateRepository()}
}

func (r *flakyTemplateRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CompanyTemplate, error) {
	if r.failList {
		return nil, errBackend
	}
	return r.TemplateRepository.ListByUser(ctx, userID)
}

func (r *flakyTemplateRepo) Create(ctx context.Context, t *entity.CompanyTemplate) error {
	if r.failCreate {
		return errBackend
	}
	return r.TemplateRepository.Create(ctx, t)
}

func (r *flakyTemplateRepo) Delete(ctx context.Context, userID, id string) error {
	r.deletes++
	return r.TemplateRepository.Delete(ctx, userID, id)
}

type fixture struct {
	invoices  *flakyInvoiceRepo
	templates *flakyTemplateRepo
	settings  *memory.CompanySettingsRepository

	store     *billing.InvoiceStore
	tplStore  *billing.TemplateStore
	settingUC *billing.CompanySettingsUseCase
	invoiceUC *billing.InvoiceUseCase
	bulkUC    *billing.BulkGenerateUseCase
}

func newFixture() *fixture {
	f := &fixture{
		invoices:  newFlakyInvoiceRepo(),
		templates: newFlakyTemplateRepo(),
		settings:  memory.NewCompanySettingsRepository(),
	}
	log := zerolog.Nop()
	numbers := numbering.NewGenerator(memory.NewKVStore(), log)
	f.store = billing.NewInvoiceStore(f.invoices, log)
	f.tplStore = billing.NewTemplateStore(f.templates, log)
	f.settingUC = billing.NewCompanySettingsUseCase(f.settings)
	f.invoiceUC = billing.NewInvoiceUseCase(f.store, f.tplStore, f.settingUC, numbers, log)
	f.bulkUC = billing.NewBulkGenerateUseCase(f.store, f.tplStore, f.settingUC, numbers, log)
	return f
}

func (f *fixture) withCompany() *fixture {
	_ = f.settings.Upsert(context.Background(), &entity.CompanyTemplate{
		ID: "company-1", UserID: userID, Name: "Mi Estudio SL", Currency: "EUR",
	})
	return f
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice(number string) *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber: number,
		Date:          time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Client:        entity.ClientInfo{Name: "Acme"},
		Items: []entity.InvoiceItem{
			{Description: "Consultoría", Quantity: d("2"), Rate: d("150")},
		},
		TaxRate: d("21"),
	}
}
