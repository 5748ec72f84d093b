package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bountygroup/drinks-inventory-api/internal/application/audit"
	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/role"
)

// UserUseCase administración de usuarios (solo super admin).
type UserUseCase struct {
	repo     repository.UserRepository
	recorder *audit.Recorder
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, recorder *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder}
}

// List devuelve todos los usuarios sin hash, más reciente primero.
func (uc *UserUseCase) List(actor domain.Actor) ([]dto.UserDTO, error) {
	if !role.Allows(actor.Role, role.CapManageUsers) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// Create da de alta un usuario con password hasheado con bcrypt.
func (uc *UserUseCase) Create(actor domain.Actor, in dto.CreateUserRequest) (*dto.UserDTO, error) {
	if !role.Allows(actor.Role, role.CapManageUsers) {
		return nil, domain.ErrForbidden
	}
	if !role.Valid(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "user.create",
		EntityType:  "User",
		EntityID:    user.ID,
		Description: "Usuario creado: " + user.Username,
		Metadata:    map[string]any{"role": user.Role},
	})
	out := dto.FromUser(user)
	return &out, nil
}

// Update cambia username y rol; el password solo si viene no vacío.
func (uc *UserUseCase) Update(actor domain.Actor, id string, in dto.UpdateUserRequest) error {
	if !role.Allows(actor.Role, role.CapManageUsers) {
		return domain.ErrForbidden
	}
	if !role.Valid(in.Role) {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if in.Username != user.Username {
		other, err := uc.repo.GetByUsername(in.Username)
		if err != nil {
			return err
		}
		if other != nil && other.ID != user.ID {
			return domain.ErrDuplicate
		}
	}
	user.Username = in.Username
	user.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "user.update",
		EntityType:  "User",
		EntityID:    user.ID,
		Description: "Usuario actualizado: " + user.Username,
	})
	return nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(actor domain.Actor, id string) error {
	if !role.Allows(actor.Role, role.CapManageUsers) {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "user.delete",
		EntityType:  "User",
		EntityID:    id,
		Description: "Usuario eliminado: " + user.Username,
	})
	return nil
}
