package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/projectrefind/refind/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrWeakPassword is returned when a registration password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrEmailExists is returned when registering an already-taken email.
	ErrEmailExists = errors.New("email already registered")
	// ErrUserDisabled is returned when a disabled account tries to sign in.
	ErrUserDisabled = errors.New("account is disabled")
)

// UserStorage is the slice of the user store the authenticator needs.
// Keeping it an interface lets login/register handlers run against the
// in-memory store in tests.
type UserStorage interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements email/password authentication with
// bcrypt hashes. Role is never derived from credentials: every account
// registers as a plain user and admins are promoted server-side.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, credential string) (models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return models.User{}, err
	}

	if existing, err := a.storage.GetByEmail(ctx, email); err == nil && existing != nil {
		return models.User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}
	created, err := a.storage.Create(ctx, u)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Authenticate verifies the email and password, returning the user if
// valid and active.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	u, err := a.storage.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Status == models.StatusDisabled {
		return nil, ErrUserDisabled
	}
	return u, nil
}
