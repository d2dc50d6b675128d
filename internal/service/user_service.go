package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mindprofile/internal/model"
	"mindprofile/internal/repository"
)

// UserService is the identity directory: account creation, role and
// status management, listing. Email uniqueness is enforced by the
// storage layer.
type UserService struct {
	userRepo repository.UserRepo
	log      *zap.SugaredLogger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepo, log *zap.SugaredLogger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// Create registers a new account with the given role.
func (s *UserService) Create(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	s.log.Infow("user created", "email", email, "role", role)
	return user, nil
}

// GetByEmail returns the account for email, or nil.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// List returns all directory accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Update changes an account's name and, when password is non-empty,
// its password.
func (s *UserService) Update(ctx context.Context, email, name, password string) error {
	if email == "" || name == "" {
		return ErrMissingFields
	}

	user := &model.User{Email: email, Name: name}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}

	err := s.userRepo.Update(ctx, user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	return err
}

// SetRole grants or revokes the administrator capability.
func (s *UserService) SetRole(ctx context.Context, email string, role model.Role) error {
	err := s.userRepo.SetRole(ctx, email, role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err == nil {
		s.log.Infow("role changed", "email", email, "role", role)
	}
	return err
}

// SetDisabled blocks or unblocks an account.
func (s *UserService) SetDisabled(ctx context.Context, email string, disabled bool) error {
	err := s.userRepo.SetDisabled(ctx, email, disabled)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	return err
}

// Delete removes an account from the directory.
func (s *UserService) Delete(ctx context.Context, email string) error {
	err := s.userRepo.Delete(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	return err
}

// EnsureAdmin creates the bootstrap administrator account if the email
// is not registered yet. Safe to re-run on every startup.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.Create(ctx, "Administrator", email, password, model.RoleAdmin)
	if errors.Is(err, ErrDuplicateUser) {
		return nil
	}
	return err
}
