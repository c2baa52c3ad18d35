package repository

import "context"

// KVStore almacén clave-valor simple (sin transacciones) para estado de proceso:
// contador de facturas y última ruta visitada por usuario.
type KVStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
