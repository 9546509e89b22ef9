// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"newsroom/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific persistence errors. The application layer matches on these
// instead of database-specific error values.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or update collides with the
	// unique index on email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateUsername is returned when an insert or update collides with
	// the unique index on username.
	ErrDuplicateUsername = errors.New("username already in use")
)

// UserRepository defines the standard operations for user persistence.
// The store's unique indexes on email and username are the authoritative
// uniqueness enforcement; any pre-checks done by callers are advisory only.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user holding the given username,
	// skipping the record identified by excludeID when it is non-nil.
	FindByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (*entity.User, error)

	// Create persists a new user entity to the storage. A collision on the
	// email or username unique index surfaces as ErrDuplicateEmail or
	// ErrDuplicateUsername respectively.
	Create(ctx context.Context, user *entity.User) error

	// Update persists the full state of an existing user entity.
	// Returns ErrUserNotFound if no record matches the entity's ID.
	Update(ctx context.Context, user *entity.User) error

	// UpdateUsername persists only the username column for the given user.
	// Returns ErrUserNotFound if the id is absent.
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*entity.User, error)

	// UpdatePassword persists only the password hash for the given user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes the user with the given id. Deleting an absent id is not
	// an error; the operation is idempotent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll returns every user record. Password hashes are excluded from
	// the projection.
	ListAll(ctx context.Context) ([]*entity.User, error)
}
