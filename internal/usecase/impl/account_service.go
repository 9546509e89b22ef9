// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"newsroom/internal/domain/entity"
	domainerrors "newsroom/internal/domain/errors"
	"newsroom/internal/domain/repository"
	"newsroom/internal/domain/service"
	"newsroom/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Signup orchestrates self-service registration.
//
// The email and username pre-checks exist to surface a friendly conflict before
// attempting the write; two concurrent signups racing on the same value are
// still decided by the store's unique indexes, whose violations map to the
// same conflicts.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Starting user signup", "email", input.Email)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("signup rejected")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("signup failed")
	}

	var registeredUser *entity.User

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Email is checked before username so a request with both taken
		// reports the email conflict.
		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("signup rejected")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		if _, err := userRepo.FindByUsername(ctx, input.Username, nil); err == nil {
			return domainerrors.ErrUsernameTaken.WrapMessage("signup rejected")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username uniqueness")
		}

		newUser := &entity.User{
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Age:           input.Age,
			Gender:        input.Gender,
			ContactNumber: input.ContactNumber,
			Email:         input.Email,
			Username:      input.Username,
			PasswordHash:  hashedPassword,
			Address:       input.Address,
			Role:          entity.RoleEditor,
			IsActive:      true,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return srv.mapDuplicate(err, "signup failed")
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.logger.Warn("Signup failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	token, err := srv.tokens.Issue(registeredUser.ID, registeredUser.Email, registeredUser.Role.String())
	if err != nil {
		srv.logger.Error("Failed to issue token after signup", "error", err)

		return nil, errors.Wrap(err, "failed to issue token after signup")
	}
	srv.logger.Debug("User signed up successfully", "userID", registeredUser.ID)

	return &usecase.AuthOutput{User: sanitize(registeredUser), Token: token}, nil
}

// Login authenticates a user by email and password.
//
// The inactive check deliberately runs before password verification so a
// deactivated account never learns whether its password was accepted. Unknown
// emails report "not found" rather than "invalid credentials"; that existence
// leak is inherited behavior kept on purpose.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Starting user login", "email", input.Email)

	var loggedInUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		if !user.IsActive {
			return domainerrors.ErrAccountInactive.WrapMessage("login failed")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		loggedInUser = user

		return nil
	})
	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	token, err := srv.tokens.Issue(loggedInUser.ID, loggedInUser.Email, loggedInUser.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after login")
	}
	srv.logger.Debug("User logged in successfully", "userID", loggedInUser.ID)

	return &usecase.AuthOutput{User: sanitize(loggedInUser), Token: token}, nil
}

// CreateUser is the administrative creation path. There is no uniqueness
// pre-check here; the store's constraints decide, and no token is issued.
func (srv *accountService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	srv.logger.Info("Creating user", "email", input.Email)

	if input.Password == "" {
		return nil, domainerrors.ErrPasswordRequired.WrapMessage("create user rejected")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("create user failed")
	}

	newUser := &entity.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Age:           input.Age,
		Gender:        input.Gender,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Username:      input.Username,
		PasswordHash:  hashedPassword,
		Address:       input.Address,
		Role:          entity.RoleEditor,
		IsActive:      true,
	}
	if input.Role != nil {
		role := entity.Role(*input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrInvalidRole.WrapMessage("create user rejected")
		}
		newUser.Role = role
	}
	if input.IsActive != nil {
		newUser.IsActive = *input.IsActive
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return srv.mapDuplicate(err, "create user failed")
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Create user failed", "email", input.Email, "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("User created", "userID", newUser.ID)

	return sanitize(newUser), nil
}

// UpdateUser merges every provided field onto the stored record. A provided
// password is treated as a new plaintext value and re-hashed before the merge.
// A fresh token is issued afterwards because the identity claims may have changed.
func (srv *accountService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Updating user", "userID", id)

	var updatedUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("update user failed")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Password != nil && *input.Password != "" {
			hashedPassword, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return domainerrors.ErrPasswordHashFailed.WrapMessage("update user failed")
			}
			user.PasswordHash = hashedPassword
		}

		if err := mergeUserFields(user, input); err != nil {
			return err
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("update user failed")
			}

			return srv.mapDuplicate(err, "update user failed")
		}
		updatedUser = user

		return nil
	})
	if err != nil {
		srv.logger.Warn("Update user failed", "userID", id, "error", err.Error())

		return nil, err
	}

	// Reissue so the token reflects possibly changed identity claims.
	token, err := srv.tokens.Issue(updatedUser.ID, updatedUser.Email, updatedUser.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after update")
	}
	srv.logger.Debug("User updated", "userID", updatedUser.ID)

	return &usecase.AuthOutput{User: sanitize(updatedUser), Token: token}, nil
}

// UpdateUsername renames an account. Renaming to a username already held by a
// different user is a conflict; renaming to one's own current username is a
// no-op success. Unlike UpdateUser, no token is reissued here.
func (srv *accountService) UpdateUsername(ctx context.Context, id uuid.UUID, input *usecase.UpdateUsernameInput) (*entity.User, error) {
	srv.logger.Info("Updating username", "userID", id)

	if input.Username == "" {
		return nil, domainerrors.ErrUsernameRequired.WrapMessage("update username rejected")
	}

	var updatedUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Advisory pre-check; the holder's id is excluded so a same-id rename
		// is not reported as a conflict.
		if _, err := userRepo.FindByUsername(ctx, input.Username, &id); err == nil {
			return domainerrors.ErrUsernameTaken.WrapMessage("update username rejected")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username uniqueness")
		}

		user, err := userRepo.UpdateUsername(ctx, id, input.Username)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrUserNotFound):
				return domainerrors.ErrUserNotFound.WrapMessage("update username failed")
			case errors.Is(err, repository.ErrDuplicateUsername):
				return domainerrors.ErrUsernameTaken.WrapMessage("update username failed")
			default:
				return errors.Wrap(err, "failed to update username")
			}
		}
		updatedUser = user

		return nil
	})
	if err != nil {
		srv.logger.Warn("Update username failed", "userID", id, "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Username updated", "userID", id)

	return sanitize(updatedUser), nil
}

// ChangePassword rotates a password after verifying the current one. A failed
// verification leaves the stored hash untouched.
func (srv *accountService) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing password", "userID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("change password failed")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrCurrentPasswordIncorrect.WrapMessage("change password rejected")
		}

		hashedPassword, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("change password failed")
		}

		if err := userRepo.UpdatePassword(ctx, id, hashedPassword); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("change password failed")
			}

			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Change password failed", "userID", id, "error", err.Error())

		return err
	}
	srv.logger.Debug("Password changed", "userID", id)

	return nil
}

// DeleteUser removes an account. Deleting an id that is already absent is
// treated as success.
func (srv *accountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting user", "userID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		srv.logger.Warn("Delete user failed", "userID", id, "error", err.Error())

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// ListUsers returns every account, sanitized.
func (srv *accountService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		sanitize(user)
	}

	return users, nil
}

// mapDuplicate converts the repository's duplicate errors to the domain
// conflicts; anything else passes through wrapped.
func (srv *accountService) mapDuplicate(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrEmailTaken.WrapMessage(msg)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return domainerrors.ErrUsernameTaken.WrapMessage(msg)
	default:
		return errors.Wrap(err, msg)
	}
}

// mergeUserFields applies every non-nil field of the input onto the entity.
func mergeUserFields(user *entity.User, input *usecase.UpdateUserInput) error {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.ContactNumber != nil {
		user.ContactNumber = *input.ContactNumber
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Role != nil {
		role := entity.Role(*input.Role)
		if !role.IsValid() {
			return domainerrors.ErrInvalidRole.WrapMessage("update user rejected")
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	return nil
}

// sanitize clears the password hash so it never leaves the use case layer.
func sanitize(user *entity.User) *entity.User {
	if user != nil {
		user.PasswordHash = ""
	}

	return user
}
