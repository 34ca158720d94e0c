package application

import (
	"context"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

// UserService is the admin-only CRUD surface over accounts. Route-level
// role gating is backed up by explicit policy checks here.
type UserService struct {
	Users repository.UserRepository
}

func (s *UserService) List(ctx context.Context, p Principal, params repository.ListParams) ([]entity.User, int, error) {
	if err := requireRole(p, "manage users", entity.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.Users.List(ctx, params)
}

func (s *UserService) Get(ctx context.Context, p Principal, id string) (*entity.User, error) {
	if err := requireRole(p, "manage users", entity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, id)
}

type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

func (s *UserService) Create(ctx context.Context, p Principal, in UserInput) (*entity.User, error) {
	if err := requireRole(p, "manage users", entity.RoleAdmin); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.New(apperr.Validation, "invalid role %q", in.Role)
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *entity.Role
}

func (s *UserService) Update(ctx context.Context, p Principal, id string, in UserUpdate) (*entity.User, error) {
	if err := requireRole(p, "manage users", entity.RoleAdmin); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperr.New(apperr.Validation, "invalid role %q", *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, p Principal, id string) error {
	if err := requireRole(p, "manage users", entity.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Users.Delete(ctx, id)
}
