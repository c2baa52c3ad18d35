package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// CompanySettingsUseCase casos de uso del perfil "mi empresa" (emisor de las facturas).
type CompanySettingsUseCase struct {
	repo repository.CompanySettingsRepository
}

// NewCompanySettingsUseCase construye el caso de uso.
func NewCompanySettingsUseCase(repo repository.CompanySettingsRepository) *CompanySettingsUseCase {
	return &CompanySettingsUseCase{repo: repo}
}

// Get devuelve el perfil del usuario. ErrNotFound si aún no lo configuró.
func (uc *CompanySettingsUseCase) Get(ctx context.Context, userID string) (*dto.TemplateResponse, error) {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := ToTemplateResponse(c)
	return &out, nil
}

// Save crea o reemplaza el perfil del usuario.
func (uc *CompanySettingsUseCase) Save(ctx context.Context, userID string, in dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre de la empresa es obligatorio", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	now := time.Now().UTC()
	c := FromTemplateRequest(in)
	c.UserID = userID
	c.UpdatedAt = now
	if existing != nil {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else {
		c.ID = uuid.New().String()
		c.CreatedAt = now
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("guardar empresa: %w", err)
	}
	out := ToTemplateResponse(c)
	return &out, nil
}

// load devuelve la entidad; la usan también la creación de facturas y la generación masiva.
func (uc *CompanySettingsUseCase) load(ctx context.Context, userID string) (*entity.CompanyTemplate, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
