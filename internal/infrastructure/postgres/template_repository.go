package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var (
	_ repository.TemplateRepository        = (*TemplateRepo)(nil)
	_ repository.CompanySettingsRepository = (*CompanySettingsRepo)(nil)
)

const profileColumns = `
	id, user_id, name, COALESCE(address, ''), COALESCE(city, ''), COALESCE(postal_code, ''),
	COALESCE(country, ''), COALESCE(phone, ''), COALESCE(email, ''), COALESCE(logo, ''),
	COALESCE(tax_id, ''), COALESCE(description, ''), is_eu, COALESCE(notes, ''),
	COALESCE(currency, ''), created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.CompanyTemplate, error) {
	var t entity.CompanyTemplate
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Address, &t.City, &t.PostalCode,
		&t.Country, &t.Phone, &t.Email, &t.Logo,
		&t.TaxID, &t.Description, &t.IsEU, &t.Notes,
		&t.Currency, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func profileArgs(t *entity.CompanyTemplate) []any {
	return []any{
		t.ID, t.UserID, t.Name, nullIfEmpty(t.Address), nullIfEmpty(t.City), nullIfEmpty(t.PostalCode),
		nullIfEmpty(t.Country), nullIfEmpty(t.Phone), nullIfEmpty(t.Email), nullIfEmpty(t.Logo),
		nullIfEmpty(t.TaxID), nullIfEmpty(t.Description), t.IsEU, nullIfEmpty(t.Notes),
		nullIfEmpty(t.Currency), t.CreatedAt, t.UpdatedAt,
	}
}

// TemplateRepo implementación de TemplateRepository (tabla templates).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

// ListByUser lista las plantillas del usuario por nombre.
func (r *TemplateRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CompanyTemplate, error) {
	rows, err := r.q.Query(ctx, `SELECT `+profileColumns+` FROM templates WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.CompanyTemplate, 0)
	for rows.Next() {
		t, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

// Create persiste una plantilla.
func (r *TemplateRepo) Create(ctx context.Context, t *entity.CompanyTemplate) error {
	query := `
		INSERT INTO templates (
			id, user_id, name, address, city, postal_code, country, phone, email, logo,
			tax_id, description, is_eu, notes, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	if _, err := r.q.Exec(ctx, query, profileArgs(t)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// Update reemplaza la plantilla (conserva created_at).
func (r *TemplateRepo) Update(ctx context.Context, t *entity.CompanyTemplate) error {
	query := `
		UPDATE templates
		SET name = $3, address = $4, city = $5, postal_code = $6, country = $7, phone = $8,
		    email = $9, logo = $10, tax_id = $11, description = $12, is_eu = $13, notes = $14,
		    currency = $15, updated_at = $16
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.UserID, t.Name, nullIfEmpty(t.Address), nullIfEmpty(t.City), nullIfEmpty(t.PostalCode),
		nullIfEmpty(t.Country), nullIfEmpty(t.Phone), nullIfEmpty(t.Email), nullIfEmpty(t.Logo),
		nullIfEmpty(t.TaxID), nullIfEmpty(t.Description), t.IsEU, nullIfEmpty(t.Notes),
		nullIfEmpty(t.Currency), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return expectOne(tag)
}

// Delete elimina la plantilla del usuario.
func (r *TemplateRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM templates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return expectOne(tag)
}

// CompanySettingsRepo implementación de CompanySettingsRepository (tabla company_settings).
type CompanySettingsRepo struct {
	q Querier
}

// NewCompanySettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanySettingsRepository(q Querier) *CompanySettingsRepo {
	return &CompanySettingsRepo{q: q}
}

// GetByUser devuelve (nil, nil) si el usuario no tiene perfil.
func (r *CompanySettingsRepo) GetByUser(ctx context.Context, userID string) (*entity.CompanyTemplate, error) {
	t, err := scanProfile(r.q.QueryRow(ctx, `SELECT `+profileColumns+` FROM company_settings WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return t, nil
}

// Upsert crea o reemplaza el perfil del usuario.
func (r *CompanySettingsRepo) Upsert(ctx context.Context, t *entity.CompanyTemplate) error {
	query := `
		INSERT INTO company_settings (
			id, user_id, name, address, city, postal_code, country, phone, email, logo,
			tax_id, description, is_eu, notes, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address, city = EXCLUDED.city,
		    postal_code = EXCLUDED.postal_code, country = EXCLUDED.country, phone = EXCLUDED.phone,
		    email = EXCLUDED.email, logo = EXCLUDED.logo, tax_id = EXCLUDED.tax_id,
		    description = EXCLUDED.description, is_eu = EXCLUDED.is_eu, notes = EXCLUDED.notes,
		    currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, profileArgs(t)...); err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
