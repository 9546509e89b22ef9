// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"newsroom/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required for self-service registration.
type SignupInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Address       string `json:"address"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserInput defines the data for the administrative creation path.
// Unlike signup, it may carry an explicit role and active flag.
type CreateUserInput struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Age           string  `json:"age"`
	Gender        string  `json:"gender"`
	ContactNumber string  `json:"contactNumber"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Address       string  `json:"address"`
	Role          *string `json:"role,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
// Every stored field is updatable here, including role and isActive — there is
// no allow-list on this path.
type UpdateUserInput struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Age           *string `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	Email         *string `json:"email,omitempty"`
	Username      *string `json:"username,omitempty"`
	Password      *string `json:"password,omitempty"`
	Address       *string `json:"address,omitempty"`
	Role          *string `json:"role,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// UpdateUsernameInput defines the data required to rename an account.
type UpdateUsernameInput struct {
	Username string `json:"username"`
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// --- Output DTOs ---

// AuthOutput returns a sanitized user together with a freshly issued token.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// Every returned user is sanitized: the password hash is cleared before it
// leaves the use case layer.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*AuthOutput, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, input *UpdateUsernameInput) (*entity.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, input *ChangePasswordInput) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
