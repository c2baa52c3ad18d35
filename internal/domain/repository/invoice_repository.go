package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice (tabla invoices).
// Todas las operaciones van acotadas al usuario dueño; las que no encuentran la fila
// (id inexistente o de otro usuario) devuelven domain.ErrNotFound.
type InvoiceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update reemplaza la fila completa (sin semántica de patch).
	Update(ctx context.Context, invoice *entity.Invoice) error
	// SetDeleted marca (deletedAt != nil) o restaura (deletedAt == nil) la factura.
	SetDeleted(ctx context.Context, userID, id string, deletedAt *time.Time) error
	UpdateFields(ctx context.Context, userID, id string, patch entity.InvoicePatch) error
	Delete(ctx context.Context, userID, id string) error
}
