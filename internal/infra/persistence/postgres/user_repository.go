// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"newsroom/internal/domain/entity"
	domainerrors "newsroom/internal/domain/errors"
	"newsroom/internal/domain/repository"
	"newsroom/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listColumns is the projection shared by reads that leave the store.
// password_hash is deliberately absent.
var listColumns = []string{
	"id", "first_name", "last_name", "age", "gender", "contact_number",
	"email", "username", "address", "role", "is_active",
}

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves the holder of a username, optionally excluding one id.
// The exclusion supports no-op renames: a user keeping their own username is not a conflict.
func (repo *userRepository) FindByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (*entity.User, error) {
	query := repo.db.WithContext(ctx).Where("username = ?", username)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database. Unique index collisions
// are mapped to the domain's duplicate errors so callers can produce the right conflict.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if column, ok := uniqueViolationTarget(err); ok {
			switch column {
			case "email":
				return repository.ErrDuplicateEmail
			case "username":
				return repository.ErrDuplicateUsername
			default:
				return domainerrors.NewDatabaseExecuteError(err, "unique constraint violated on create")
			}
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate the generated identifier back to the entity.
	user.ID = userM.ID

	return nil
}

// Update persists the full state of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"first_name":     user.FirstName,
			"last_name":      user.LastName,
			"age":            user.Age,
			"gender":         user.Gender,
			"contact_number": user.ContactNumber,
			"email":          user.Email,
			"username":       user.Username,
			"password_hash":  user.PasswordHash,
			"address":        user.Address,
			"role":           user.Role.String(),
			"is_active":      user.IsActive,
		})
	if err := result.Error; err != nil {
		if column, ok := uniqueViolationTarget(err); ok {
			switch column {
			case "email":
				return repository.ErrDuplicateEmail
			case "username":
				return repository.ErrDuplicateUsername
			default:
				return domainerrors.NewDatabaseExecuteError(err, "unique constraint violated on update")
			}
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateUsername persists only the username column and returns the updated record.
func (repo *userRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*entity.User, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("username", username)
	if err := result.Error; err != nil {
		if _, ok := uniqueViolationTarget(err); ok {
			return nil, repository.ErrDuplicateUsername
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update username")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Select(listColumns).Where("id = ?", id).First(&userM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to reload user after username update")
	}

	return toUserDomain(&userM), nil
}

// UpdatePassword persists only the password hash for the given user.
func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user. Deleting an id that is already absent is a success.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	return nil
}

// ListAll returns every user record with the password hash excluded from the projection.
func (repo *userRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	err := repo.db.WithContext(ctx).
		Select(listColumns).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Age:           data.Age,
		Gender:        data.Gender,
		ContactNumber: data.ContactNumber,
		Email:         data.Email,
		Username:      data.Username,
		PasswordHash:  data.PasswordHash,
		Address:       data.Address,
		Role:          entity.RoleFromString(data.Role),
		IsActive:      data.IsActive,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Age:           data.Age,
		Gender:        data.Gender,
		ContactNumber: data.ContactNumber,
		Email:         data.Email,
		Username:      data.Username,
		PasswordHash:  data.PasswordHash,
		Address:       data.Address,
		Role:          data.Role.String(),
		IsActive:      data.IsActive,
	}
}
