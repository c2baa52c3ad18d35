// Package session guarda preferencias de navegación del usuario (última ruta visitada).
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// LastRouteKeyPrefix prefijo de la clave en el KVStore: "last_route:{userID}".
const LastRouteKeyPrefix = "last_route:"

// maxRouteLength límite de longitud de la ruta guardada.
const maxRouteLength = 512

// UseCase lee y escribe la última ruta visitada sobre el KVStore inyectado.
type UseCase struct {
	kv repository.KVStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(kv repository.KVStore) *UseCase {
	return &UseCase{kv: kv}
}

// SaveLastRoute guarda route para el usuario. Debe ser una ruta absoluta de la aplicación ("/invoices").
func (uc *UseCase) SaveLastRoute(ctx context.Context, userID, route string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") || strings.HasPrefix(route, "//") || len(route) > maxRouteLength {
		return fmt.Errorf("%w: ruta no válida", domain.ErrInvalidInput)
	}
	return uc.kv.Set(ctx, key(userID), route)
}

// LastRoute devuelve la última ruta guardada, o "" si no hay ninguna.
func (uc *UseCase) LastRoute(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	v, ok, err := uc.kv.Get(ctx, key(userID))
	if err != nil {
		return "", fmt.Errorf("leer última ruta: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func key(userID string) string {
	return LastRouteKeyPrefix + userID
}
