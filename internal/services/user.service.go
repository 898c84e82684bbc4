package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdatePerms(ctx context.Context, id int64, perms model.Permission) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	CountAdmins(ctx context.Context) (int64, error)
}

type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// HashPassword returns the hex sha256 of the password, the same scheme the
// stored hashes use.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Authenticate checks credentials and returns the user on success. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	hash := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, username, password, email string, perms model.Permission) (*model.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	user, err := s.userRepo.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: HashPassword(password),
		Email:        email,
		Perms:        perms,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdatePerms rewrites a user's capability set. Stripping admin from the
// last remaining admin is refused so the system stays administrable.
func (s *UserService) UpdatePerms(ctx context.Context, id int64, perms model.Permission) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Perms&model.PermAdmin != 0 && perms&model.PermAdmin == 0 {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.userRepo.UpdatePerms(ctx, id, perms)
}

func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	err := s.userRepo.UpdatePassword(ctx, id, HashPassword(password))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Delete removes a user. Self-deletion and deleting the last admin are
// refused.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return ErrSelfDelete
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Perms&model.PermAdmin != 0 {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.userRepo.Delete(ctx, id)
}
