package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

// InvoiceRepository facturas en memoria, en orden de alta.
type InvoiceRepository struct {
	mu   sync.Mutex
	rows []*entity.Invoice
}

// NewInvoiceRepository construye un repositorio vacío.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

func (r *InvoiceRepository) ListByUser(_ context.Context, userID string) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range r.rows {
		if inv.UserID == userID {
			out = append(out, inv.Clone())
		}
	}
	return out, nil
}

func (r *InvoiceRepository) Create(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.rows {
		if inv.ID == invoice.ID {
			return domain.ErrDuplicate
		}
	}
	r.rows = append(r.rows, invoice.Clone())
	return nil
}

func (r *InvoiceRepository) Update(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(invoice.UserID, invoice.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.rows[i] = invoice.Clone()
	return nil
}

func (r *InvoiceRepository) SetDeleted(_ context.Context, userID, id string, deletedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(userID, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.rows[i].Deleted = deletedAt != nil
	r.rows[i].DeletedAt = deletedAt
	return nil
}

func (r *InvoiceRepository) UpdateFields(_ context.Context, userID, id string, patch entity.InvoicePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(userID, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	patch.ApplyTo(r.rows[i])
	return nil
}

func (r *InvoiceRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(userID, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
	return nil
}

func (r *InvoiceRepository) index(userID, id string) int {
	for i, inv := range r.rows {
		if inv.ID == id && inv.UserID == userID {
			return i
		}
	}
	return -1
}
