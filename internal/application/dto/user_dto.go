package dto

import (
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
)

// LoginRequest cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token más los datos básicos del usuario autenticado.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// CreateUserRequest cuerpo de POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserRequest cuerpo de PUT /api/users/:id. Password vacío = no cambiar.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password"`
}

// UserDTO usuario en las respuestas (nunca incluye el hash).
type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser convierte la entidad al DTO de respuesta.
func FromUser(u *entity.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}
