package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturador-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// InvoiceStore mantiene, por usuario, una caché en memoria de sus facturas delante del repositorio.
//
// Regla única para todas las operaciones: la caché solo se modifica después de que la llamada
// al repositorio termina sin error. Si el repositorio falla, la caché queda como estaba.
type InvoiceStore struct {
	repo repository.InvoiceRepository
	log  zerolog.Logger
	now  func() time.Time

	mu     sync.Mutex
	cache  map[string][]*entity.Invoice // userID → facturas en orden de alta
	loaded map[string]bool
}

// NewInvoiceStore construye el store.
func NewInvoiceStore(repo repository.InvoiceRepository, log zerolog.Logger) *InvoiceStore {
	return &InvoiceStore{
		repo:   repo,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		cache:  make(map[string][]*entity.Invoice),
		loaded: make(map[string]bool),
	}
}

// List recarga desde el repositorio todas las facturas del usuario (incluidas las de la papelera).
// Sin usuario devuelve una lista vacía. Si el repositorio falla se devuelve la caché previa junto al error.
func (s *InvoiceStore) List(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	if userID == "" {
		return []*entity.Invoice{}, nil
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("listar facturas")
		return s.snapshot(userID), fmt.Errorf("listar facturas: %w", err)
	}

	s.mu.Lock()
	list := make([]*entity.Invoice, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.Clone())
	}
	s.cache[userID] = list
	s.loaded[userID] = true
	s.mu.Unlock()

	return s.snapshot(userID), nil
}

// Get devuelve una factura de la caché (cargándola si hace falta). domain.ErrNotFound si no está.
func (s *InvoiceStore) Get(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv := s.find(userID, id); inv != nil {
		return inv.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

// GetMany devuelve las facturas pedidas en el orden de ids. Las que no existen se omiten.
func (s *InvoiceStore) GetMany(ctx context.Context, userID string, ids []string) ([]*entity.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(ids))
	for _, id := range ids {
		if inv := s.find(userID, id); inv != nil {
			out = append(out, inv.Clone())
		}
	}
	return out, nil
}

// Add persiste una factura nueva del usuario (deleted=false) y, si tuvo éxito, la agrega a la caché.
// Los importes se recalculan antes de guardar.
func (s *InvoiceStore) Add(ctx context.Context, userID string, invoice *entity.Invoice) (*entity.Invoice, error) {
	if userID == "" {
		s.log.Warn().Msg("alta de factura sin sesión")
		return nil, domain.ErrUnauthorized
	}
	inv := invoice.Clone()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = entity.InvoiceStatusDraft
	}
	now := s.now()
	inv.UserID = userID
	inv.Deleted = false
	inv.DeletedAt = nil
	inv.CreatedAt = now
	inv.UpdatedAt = now
	domainbilling.ApplyTotals(inv)

	if err := s.repo.Create(ctx, inv); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("invoice_number", inv.InvoiceNumber).Msg("guardar factura")
		return nil, fmt.Errorf("guardar factura: %w", err)
	}

	s.mu.Lock()
	s.cache[userID] = append(s.cache[userID], inv.Clone())
	s.mu.Unlock()
	return inv, nil
}

// Update reemplaza la factura completa (misma id). El estado de papelera y la fecha de alta se conservan.
func (s *InvoiceStore) Update(ctx context.Context, userID string, invoice *entity.Invoice) (*entity.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if invoice.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	inv := invoice.Clone()
	inv.UserID = userID
	inv.UpdatedAt = s.now()
	s.mu.Lock()
	if cur := s.find(userID, inv.ID); cur != nil {
		inv.Deleted = cur.Deleted
		inv.DeletedAt = cur.DeletedAt
		inv.CreatedAt = cur.CreatedAt
	}
	s.mu.Unlock()
	if inv.Status == "" {
		inv.Status = entity.InvoiceStatusDraft
	}
	domainbilling.ApplyTotals(inv)

	if err := s.repo.Update(ctx, inv); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("invoice_id", inv.ID).Msg("actualizar factura")
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}

	s.mu.Lock()
	s.replace(userID, inv.Clone())
	s.mu.Unlock()
	return inv, nil
}

// SoftDelete mueve la factura a la papelera (deleted=true + fecha). Sigue en la lista.
func (s *InvoiceStore) SoftDelete(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	now := s.now()
	if err := s.repo.SetDeleted(ctx, userID, id, &now); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("invoice_id", id).Msg("mover factura a la papelera")
		return nil, fmt.Errorf("eliminar factura: %w", err)
	}
	return s.mutateCached(ctx, userID, id, func(inv *entity.Invoice) {
		inv.Deleted = true
		inv.DeletedAt = &now
	})
}

// Restore saca la factura de la papelera.
func (s *InvoiceStore) Restore(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.repo.SetDeleted(ctx, userID, id, nil); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("invoice_id", id).Msg("restaurar factura")
		return nil, fmt.Errorf("restaurar factura: %w", err)
	}
	return s.mutateCached(ctx, userID, id, func(inv *entity.Invoice) {
		inv.Deleted = false
		inv.DeletedAt = nil
	})
}

// HardDelete elimina la factura de forma irreversible.
func (s *InvoiceStore) HardDelete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("invoice_id", id).Msg("eliminar factura definitivamente")
		return fmt.Errorf("eliminar factura: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cache[userID]
	for i, inv := range list {
		if inv.ID == id {
			s.cache[userID] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// BulkItemError error de una factura concreta dentro de una operación masiva.
type BulkItemError struct {
	ID  string
	Err error
}

// BulkResult resumen de una operación masiva no atómica.
type BulkResult struct {
	Updated int
	Failed  int
	Errors  []BulkItemError
}

// BulkUpdate aplica el patch a cada id, en orden y de a una. Un fallo se registra y no detiene el resto.
// En la caché solo se copian los campos presentes en el patch.
func (s *InvoiceStore) BulkUpdate(ctx context.Context, userID string, ids []string, patch entity.InvoicePatch) (*BulkResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(ids) == 0 || patch.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	res := &BulkResult{}
	for _, id := range ids {
		if err := s.repo.UpdateFields(ctx, userID, id, patch); err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Str("invoice_id", id).Msg("edición masiva: factura no actualizada")
			res.Failed++
			res.Errors = append(res.Errors, BulkItemError{ID: id, Err: err})
			continue
		}
		res.Updated++
		s.mu.Lock()
		if inv := s.find(userID, id); inv != nil {
			patch.ApplyTo(inv)
			inv.UpdatedAt = s.now()
		}
		s.mu.Unlock()
	}
	s.log.Info().Str("user_id", userID).Int("updated", res.Updated).Int("failed", res.Failed).Msg("edición masiva")
	return res, nil
}

// FilterDeleted separa facturas activas (deleted=false) de las de la papelera (deleted=true).
func FilterDeleted(list []*entity.Invoice, deleted bool) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(list))
	for _, inv := range list {
		if inv.Deleted == deleted {
			out = append(out, inv)
		}
	}
	return out
}

func (s *InvoiceStore) ensureLoaded(ctx context.Context, userID string) error {
	s.mu.Lock()
	ok := s.loaded[userID]
	s.mu.Unlock()
	if ok {
		return nil
	}
	_, err := s.List(ctx, userID)
	return err
}

func (s *InvoiceStore) mutateCached(ctx context.Context, userID, id string, fn func(*entity.Invoice)) (*entity.Invoice, error) {
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.find(userID, id)
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	fn(inv)
	return inv.Clone(), nil
}

// find requiere s.mu tomado.
func (s *InvoiceStore) find(userID, id string) *entity.Invoice {
	for _, inv := range s.cache[userID] {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

// replace requiere s.mu tomado.
func (s *InvoiceStore) replace(userID string, inv *entity.Invoice) {
	list := s.cache[userID]
	for i := range list {
		if list[i].ID == inv.ID {
			list[i] = inv
			return
		}
	}
	s.cache[userID] = append(list, inv)
}

func (s *InvoiceStore) snapshot(userID string) []*entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cache[userID]
	out := make([]*entity.Invoice, 0, len(list))
	for _, inv := range list {
		out = append(out, inv.Clone())
	}
	return out
}
