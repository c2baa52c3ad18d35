package entity

import "time"

// Estados de cuenta de User.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User representa una cuenta del sistema. Cada factura y plantilla pertenece a exactamente un User.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
