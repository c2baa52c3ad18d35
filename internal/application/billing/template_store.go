package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// SampleIDPrefix prefijo de las plantillas de ejemplo embebidas en el binario.
const SampleIDPrefix = "sample-"

// SampleTemplates devuelve las tres plantillas de ejemplo con sus ids fijos.
// Se usan para sembrar la cuenta de un usuario nuevo y como respaldo si el repositorio falla.
func SampleTemplates() []*entity.CompanyTemplate {
	return []*entity.CompanyTemplate{
		{
			ID:          SampleIDPrefix + "acme",
			Name:        "Acme Corporation",
			Address:     "123 Business Avenue",
			City:        "New York",
			PostalCode:  "10001",
			Country:     "United States",
			Phone:       "+1 212 555 0100",
			Email:       "billing@acme.example",
			TaxID:       "US-12-3456789",
			Description: "Cliente corporativo de ejemplo",
			Currency:    "USD",
		},
		{
			ID:          SampleIDPrefix + "globex",
			Name:        "Globex GmbH",
			Address:     "Friedrichstraße 45",
			City:        "Berlin",
			PostalCode:  "10117",
			Country:     "Germany",
			Phone:       "+49 30 555 0199",
			Email:       "rechnung@globex.example",
			TaxID:       "DE123456789",
			Description: "Cliente de la UE (IVA intracomunitario)",
			IsEU:        true,
			Notes:       "Inversión del sujeto pasivo",
			Currency:    "EUR",
		},
		{
			ID:          SampleIDPrefix + "initech",
			Name:        "Initech Ltd",
			Address:     "7 Market Street",
			City:        "London",
			PostalCode:  "EC1A 1BB",
			Country:     "United Kingdom",
			Phone:       "+44 20 5550 0123",
			Email:       "accounts@initech.example",
			TaxID:       "GB987654321",
			Description: "Cliente de servicios",
			Currency:    "GBP",
		},
	}
}

// IsSampleID indica si id corresponde a una plantilla de ejemplo embebida.
func IsSampleID(id string) bool {
	return strings.HasPrefix(id, SampleIDPrefix)
}

// TemplateStore caché por usuario de las plantillas de clientes delante del repositorio.
// Sigue la misma regla que InvoiceStore: la caché cambia solo tras el éxito del repositorio.
type TemplateStore struct {
	repo repository.TemplateRepository
	log  zerolog.Logger

	mu     sync.Mutex
	cache  map[string][]*entity.CompanyTemplate
	loaded map[string]bool
}

// NewTemplateStore construye el store.
func NewTemplateStore(repo repository.TemplateRepository, log zerolog.Logger) *TemplateStore {
	return &TemplateStore{
		repo:   repo,
		log:    log,
		cache:  make(map[string][]*entity.CompanyTemplate),
		loaded: make(map[string]bool),
	}
}

// List devuelve las plantillas del usuario.
//   - Sin usuario: las plantillas de ejemplo (sin tocar el repositorio).
//   - Cero filas: siembra las tres plantillas de ejemplo en el repositorio y devuelve las sembradas.
//   - Error al leer o al sembrar: las plantillas de ejemplo embebidas.
func (s *TemplateStore) List(ctx context.Context, userID string) ([]*entity.CompanyTemplate, error) {
	if userID == "" {
		return SampleTemplates(), nil
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("listar plantillas, se usan las de ejemplo")
		return s.store(userID, SampleTemplates()), nil
	}
	if len(rows) == 0 {
		seeded, err := s.seed(ctx, userID)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("sembrar plantillas, se usan las de ejemplo")
			return s.store(userID, SampleTemplates()), nil
		}
		rows = seeded
	}
	return s.store(userID, rows), nil
}

// Seed siembra las plantillas de ejemplo para el usuario si todavía no tiene ninguna.
// Devuelve cuántas se crearon.
func (s *TemplateStore) Seed(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrUnauthorized
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listar plantillas: %w", err)
	}
	if len(rows) > 0 {
		return 0, nil
	}
	seeded, err := s.seed(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.store(userID, seeded)
	return len(seeded), nil
}

func (s *TemplateStore) seed(ctx context.Context, userID string) ([]*entity.CompanyTemplate, error) {
	now := time.Now().UTC()
	out := make([]*entity.CompanyTemplate, 0, 3)
	for _, sample := range SampleTemplates() {
		t := *sample
		t.ID = uuid.New().String()
		t.UserID = userID
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := s.repo.Create(ctx, &t); err != nil {
			return nil, fmt.Errorf("sembrar plantilla %q: %w", t.Name, err)
		}
		out = append(out, &t)
	}
	s.log.Info().Str("user_id", userID).Int("count", len(out)).Msg("plantillas de ejemplo sembradas")
	return out, nil
}

// Get devuelve una plantilla del usuario desde la caché.
func (s *TemplateStore) Get(ctx context.Context, userID, id string) (*entity.CompanyTemplate, error) {
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.cache[userID] {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add crea una plantilla del usuario.
func (s *TemplateStore) Add(ctx context.Context, userID string, template *entity.CompanyTemplate) (*entity.CompanyTemplate, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(template.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	t := *template
	if t.ID == "" || IsSampleID(t.ID) {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.UserID = userID
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.repo.Create(ctx, &t); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("guardar plantilla")
		return nil, fmt.Errorf("guardar plantilla: %w", err)
	}
	s.mu.Lock()
	cp := t
	s.cache[userID] = append(s.cache[userID], &cp)
	s.mu.Unlock()
	return &t, nil
}

// Update reemplaza una plantilla del usuario. Las facturas ya emitidas no cambian (copias embebidas).
func (s *TemplateStore) Update(ctx context.Context, userID string, template *entity.CompanyTemplate) (*entity.CompanyTemplate, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if template.ID == "" || strings.TrimSpace(template.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if IsSampleID(template.ID) {
		return nil, fmt.Errorf("%w: las plantillas de ejemplo no se pueden editar", domain.ErrInvalidInput)
	}
	t := *template
	t.UserID = userID
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &t); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("template_id", t.ID).Msg("actualizar plantilla")
		return nil, fmt.Errorf("actualizar plantilla: %w", err)
	}
	s.mu.Lock()
	cp := t
	replaced := false
	for i, cur := range s.cache[userID] {
		if cur.ID == t.ID {
			cp.CreatedAt = cur.CreatedAt
			s.cache[userID][i] = &cp
			replaced = true
			break
		}
	}
	if !replaced {
		s.cache[userID] = append(s.cache[userID], &cp)
	}
	s.mu.Unlock()
	return &cp, nil
}

// Delete elimina una plantilla acotada por id y usuario.
// Con una plantilla de ejemplo o sin usuario no se llama al repositorio y se simula el éxito.
func (s *TemplateStore) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || IsSampleID(id) {
		s.log.Debug().Str("template_id", id).Msg("borrado de plantilla simulado")
		s.removeCached(userID, id)
		return nil
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("template_id", id).Msg("eliminar plantilla")
		return fmt.Errorf("eliminar plantilla: %w", err)
	}
	s.removeCached(userID, id)
	return nil
}

func (s *TemplateStore) removeCached(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cache[userID]
	for i, t := range list {
		if t.ID == id {
			s.cache[userID] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (s *TemplateStore) ensureLoaded(ctx context.Context, userID string) error {
	s.mu.Lock()
	ok := s.loaded[userID]
	s.mu.Unlock()
	if ok {
		return nil
	}
	_, err := s.List(ctx, userID)
	return err
}

func (s *TemplateStore) store(userID string, rows []*entity.CompanyTemplate) []*entity.CompanyTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached := make([]*entity.CompanyTemplate, 0, len(rows))
	out := make([]*entity.CompanyTemplate, 0, len(rows))
	for _, r := range rows {
		a, b := *r, *r
		cached = append(cached, &a)
		out = append(out, &b)
	}
	s.cache[userID] = cached
	s.loaded[userID] = true
	return out
}
