package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

// UserStore is the persistence UserService needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) ([]model.User, error)
	FindByID(ctx context.Context, id uint64) (model.User, error)
}

// UserService registers and authenticates visitors.
type UserService struct {
	store      UserStore
	bcryptCost int
}

func NewUserService(store UserStore, bcryptCost int) *UserService {
	return &UserService{store: store, bcryptCost: bcryptCost}
}

// Register stores a new user with a hashed password.  u.Password holds the
// plain password on input.  A second registration with the same
// (email, phone) yields ErrUserExists.
func (s *UserService) Register(ctx context.Context, u model.User) (model.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = normalizeEmail(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	if u.Name == "" || u.Email == "" || u.Phone == "" || u.Password == "" {
		return model.User{}, fmt.Errorf("%w: name, email, phone and password are required", ErrInvalidInput)
	}
	hash, err := utils.HashPassword(u.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	if err := s.store.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.User{}, ErrUserExists
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user whose email matches exactly and whose
// password verifies.  Anything else is ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, ErrInvalidCredentials
	}
	candidates, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	for _, u := range candidates {
		if utils.VerifyPassword(u.Password, password) {
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

func (s *UserService) Get(ctx context.Context, id uint64) (model.User, error) {
	return s.store.FindByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
