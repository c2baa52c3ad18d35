package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var (
	_ repository.TemplateRepository        = (*TemplateRepository)(nil)
	_ repository.CompanySettingsRepository = (*CompanySettingsRepository)(nil)
)

// TemplateRepository plantillas de clientes en memoria.
type TemplateRepository struct {
	mu   sync.Mutex
	rows []entity.CompanyTemplate
}

// NewTemplateRepository construye un repositorio vacío.
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{}
}

func (r *TemplateRepository) ListByUser(_ context.Context, userID string) ([]*entity.CompanyTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CompanyTemplate, 0)
	for _, t := range r.rows {
		if t.UserID == userID {
			cp := t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *TemplateRepository) Create(_ context.Context, template *entity.CompanyTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rows {
		if t.ID == template.ID {
			return domain.ErrDuplicate
		}
	}
	r.rows = append(r.rows, *template)
	return nil
}

func (r *TemplateRepository) Update(_ context.Context, template *entity.CompanyTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.rows {
		if t.ID == template.ID && t.UserID == template.UserID {
			cp := *template
			cp.CreatedAt = t.CreatedAt
			r.rows[i] = cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *TemplateRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.rows {
		if t.ID == id && t.UserID == userID {
			r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// CompanySettingsRepository perfil de empresa por usuario en memoria.
type CompanySettingsRepository struct {
	mu   sync.Mutex
	rows map[string]entity.CompanyTemplate
}

// NewCompanySettingsRepository construye un repositorio vacío.
func NewCompanySettingsRepository() *CompanySettingsRepository {
	return &CompanySettingsRepository{rows: make(map[string]entity.CompanyTemplate)}
}

func (r *CompanySettingsRepository) GetByUser(_ context.Context, userID string) (*entity.CompanyTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanySettingsRepository) Upsert(_ context.Context, settings *entity.CompanyTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[settings.UserID] = *settings
	return nil
}
