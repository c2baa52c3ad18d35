package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id, user_id, invoice_number, date, due_date, company, client, items,
	COALESCE(notes, ''), COALESCE(terms, ''), COALESCE(currency, ''),
	total_amount, tax_rate, tax_amount, status, deleted, deleted_at, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// ListByUser devuelve todas las facturas del usuario (incluida la papelera) en orden de alta.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at, invoice_number`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Invoice, 0)
	for rows.Next() {
		var row invoiceRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.InvoiceNumber, &row.Date, &row.DueDate,
			&row.Company, &row.Client, &row.Items,
			&row.Notes, &row.Terms, &row.Currency,
			&row.TotalAmount, &row.TaxRate, &row.TaxAmount, &row.Status,
			&row.Deleted, &row.DeletedAt, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

// Create inserta la factura con sus copias embebidas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	company, client, items, err := encodeSnapshots(inv)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (
			id, user_id, invoice_number, date, due_date, company, client, items,
			notes, terms, currency, total_amount, tax_rate, tax_amount, status,
			deleted, deleted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.InvoiceNumber, inv.Date, inv.DueDate, company, client, items,
		nullIfEmpty(inv.Notes), nullIfEmpty(inv.Terms), nullIfEmpty(inv.Currency),
		inv.TotalAmount, inv.TaxRate, inv.TaxAmount, inv.Status,
		inv.Deleted, inv.DeletedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reemplaza la fila completa salvo el estado de papelera y la fecha de alta.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	company, client, items, err := encodeSnapshots(inv)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET invoice_number = $3, date = $4, due_date = $5,
		    company = $6, client = $7, items = $8,
		    notes = $9, terms = $10, currency = $11,
		    total_amount = $12, tax_rate = $13, tax_amount = $14,
		    status = $15, updated_at = $16
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.InvoiceNumber, inv.Date, inv.DueDate, company, client, items,
		nullIfEmpty(inv.Notes), nullIfEmpty(inv.Terms), nullIfEmpty(inv.Currency),
		inv.TotalAmount, inv.TaxRate, inv.TaxAmount, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return expectOne(tag)
}

// SetDeleted marca o restaura la factura.
func (r *InvoiceRepo) SetDeleted(ctx context.Context, userID, id string, deletedAt *time.Time) error {
	query := `
		UPDATE invoices SET deleted = $3, deleted_at = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, id, userID, deletedAt != nil, deletedAt)
	if err != nil {
		return fmt.Errorf("set invoice deleted: %w", err)
	}
	return expectOne(tag)
}

// UpdateFields aplica solo los campos presentes del patch (COALESCE con el valor actual).
func (r *InvoiceRepo) UpdateFields(ctx context.Context, userID, id string, patch entity.InvoicePatch) error {
	query := `
		UPDATE invoices
		SET date       = COALESCE($3, date),
		    due_date   = COALESCE($4, due_date),
		    notes      = COALESCE($5, notes),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, id, userID, patch.Date, patch.DueDate, patch.Notes)
	if err != nil {
		return fmt.Errorf("update invoice fields: %w", err)
	}
	return expectOne(tag)
}

// Delete elimina la fila.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return expectOne(tag)
}

func encodeSnapshots(inv *entity.Invoice) (company, client, items []byte, err error) {
	if company, err = encodeCompany(inv.Company); err != nil {
		return nil, nil, nil, fmt.Errorf("encode company: %w", err)
	}
	if client, err = encodeClient(inv.Client); err != nil {
		return nil, nil, nil, fmt.Errorf("encode client: %w", err)
	}
	if items, err = encodeItems(inv.Items); err != nil {
		return nil, nil, nil, fmt.Errorf("encode items: %w", err)
	}
	return company, client, items, nil
}

// nullIfEmpty guarda NULL en lugar de cadena vacía en columnas opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
