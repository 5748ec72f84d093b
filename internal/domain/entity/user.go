package entity

import "time"

// User representa un usuario interno del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // staff, admin, super admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
