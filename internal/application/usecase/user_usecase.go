package usecase

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// UserUseCase gestión de cuentas (solo ADMIN en la capa HTTP).
type UserUseCase struct {
	users ports.UserRemote
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users ports.UserRemote, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, log: log}
}

// List devuelve las cuentas registradas.
func (uc *UserUseCase) List(ctx context.Context, token string) (*dto.UserListResponse, error) {
	users, err := uc.users.FetchUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return resp, nil
}

// Create da de alta una cuenta. La contraseña se reenvía al remote store
// sin tocar el disco ni los logs.
func (uc *UserUseCase) Create(ctx context.Context, token string, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	created, err := uc.users.CreateUser(ctx, token, entity.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", created.ID).Str("role", created.Role).Msg("cuenta creada")
	return &dto.UserResponse{ID: created.ID, Name: created.Name, Email: created.Email, Role: created.Role}, nil
}

// Update actualización parcial de la cuenta; contraseña vacía significa
// conservar la actual.
func (uc *UserUseCase) Update(ctx context.Context, token, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	current, err := uc.findUser(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Role != nil {
		current.Role = *req.Role
	}
	var password string
	if req.Password != nil {
		password = *req.Password
	}

	updated, err := uc.users.UpdateUser(ctx, token, current, password)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: updated.ID, Name: updated.Name, Email: updated.Email, Role: updated.Role}, nil
}

// Delete elimina la cuenta. El guardia HTTP impide que un admin borre su
// propia sesión activa.
func (uc *UserUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.users.DeleteUser(ctx, token, id); err != nil {
		return err
	}
	uc.log.Info().Str("user", id).Msg("cuenta eliminada")
	return nil
}

func (uc *UserUseCase) findUser(ctx context.Context, token, id string) (entity.User, error) {
	users, err := uc.users.FetchUsers(ctx, token)
	if err != nil {
		return entity.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, domain.ErrNotFound
}
