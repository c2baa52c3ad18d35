package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("debe iniciar sesión")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrForbidden            = errors.New("acceso denegado")
	ErrNoValidRows          = errors.New("ninguna fila tiene un importe válido")
	ErrBulkGenerationFailed = errors.New("no se pudo generar ninguna factura")
	ErrNothingExported      = errors.New("no se pudo generar ningún documento")
	ErrUnsupportedFormat    = errors.New("formato de exportación no admitido")
)
