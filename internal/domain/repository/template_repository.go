package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// TemplateRepository define el puerto de persistencia para las plantillas de clientes (tabla templates).
type TemplateRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.CompanyTemplate, error)
	Create(ctx context.Context, template *entity.CompanyTemplate) error
	Update(ctx context.Context, template *entity.CompanyTemplate) error
	Delete(ctx context.Context, userID, id string) error
}

// CompanySettingsRepository guarda el perfil "mi empresa" de cada usuario (tabla company_settings).
type CompanySettingsRepository interface {
	// GetByUser devuelve (nil, nil) si el usuario aún no configuró su empresa.
	GetByUser(ctx context.Context, userID string) (*entity.CompanyTemplate, error)
	Upsert(ctx context.Context, settings *entity.CompanyTemplate) error
}
