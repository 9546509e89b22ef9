package impl

import (
	"context"
	"testing"

	"newsroom/internal/domain/entity"
	"newsroom/internal/domain/repository"
	mockRepo "newsroom/internal/mocks/repository"
	"newsroom/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestAccountService_Signup_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Username:  "ada",
		Password:  "Password123!",
	}
	newID := uuid.New()

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				FindByUsername(ctx, input.Username, (*uuid.UUID)(nil)).
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = newID
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.tokenService.EXPECT().
		Issue(newID, input.Email, entity.RoleEditor.String()).
		Return("signed_token", nil)

	output, err := fx.service.Signup(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, newID, output.User.ID)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, entity.RoleEditor, output.User.Role)
	assert.True(t, output.User.IsActive)
	assert.Empty(t, output.User.PasswordHash)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	}
	storedUser := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Username:     "ada",
		PasswordHash: "stored_hash",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(storedUser, nil)

			return fn(mockFactory)
		})

	fx.hasher.EXPECT().Check(input.Password, "stored_hash").Return(true)
	fx.tokenService.EXPECT().
		Issue(storedUser.ID, storedUser.Email, entity.RoleAdmin.String()).
		Return("signed_token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, storedUser.ID, output.User.ID)
	assert.Empty(t, output.User.PasswordHash)
}

func TestAccountService_CreateUser_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Username:  "grace",
		Password:  "Password123!",
		Role:      strPtr("admin"),
		IsActive:  boolPtr(false),
	}
	newID := uuid.New()

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, "hashed_password", user.PasswordHash)
					user.ID = newID
				}).
				Return(nil)

			return fn(mockFactory)
		})

	created, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, newID, created.ID)
	assert.Equal(t, entity.RoleAdmin, created.Role)
	assert.False(t, created.IsActive)
	assert.Empty(t, created.PasswordHash)
}

func TestAccountService_UpdateUser_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	storedUser := &entity.User{
		ID:           userID,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Username:     "ada",
		PasswordHash: "stored_hash",
		Role:         entity.RoleEditor,
		IsActive:     true,
	}
	input := &usecase.UpdateUserInput{
		FirstName: strPtr("Augusta"),
		Email:     strPtr("augusta@example.com"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(storedUser, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, "Augusta", user.FirstName)
					assert.Equal(t, "augusta@example.com", user.Email)
					assert.Equal(t, "Lovelace", user.LastName)
					assert.Equal(t, "stored_hash", user.PasswordHash)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.tokenService.EXPECT().
		Issue(userID, "augusta@example.com", entity.RoleEditor.String()).
		Return("fresh_token", nil)

	output, err := fx.service.UpdateUser(ctx, userID, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "fresh_token", output.Token)
	assert.Equal(t, "Augusta", output.User.FirstName)
	assert.Empty(t, output.User.PasswordHash)
}

func TestAccountService_UpdateUser_RehashesProvidedPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	storedUser := &entity.User{
		ID:           userID,
		Email:        "ada@example.com",
		PasswordHash: "old_hash",
		Role:         entity.RoleEditor,
		IsActive:     true,
	}
	input := &usecase.UpdateUserInput{
		Password: strPtr("NewPassword456!"),
	}

	fx.hasher.EXPECT().Hash("NewPassword456!").Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(storedUser, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, "new_hash", user.PasswordHash)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.tokenService.EXPECT().
		Issue(userID, storedUser.Email, entity.RoleEditor.String()).
		Return("fresh_token", nil)

	output, err := fx.service.UpdateUser(ctx, userID, input)

	require.NoError(t, err)
	assert.Empty(t, output.User.PasswordHash)
}

func TestAccountService_UpdateUsername_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateUsernameInput{Username: "ada_l"}
	renamed := &entity.User{
		ID:       userID,
		Email:    "ada@example.com",
		Username: "ada_l",
		Role:     entity.RoleEditor,
		IsActive: true,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByUsername(ctx, "ada_l", &userID).
				Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				UpdateUsername(ctx, userID, "ada_l").
				Return(renamed, nil)

			return fn(mockFactory)
		})

	updated, err := fx.service.UpdateUsername(ctx, userID, input)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "ada_l", updated.Username)
	assert.Empty(t, updated.PasswordHash)
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	storedUser := &entity.User{
		ID:           userID,
		Email:        "ada@example.com",
		PasswordHash: "old_hash",
		Role:         entity.RoleEditor,
		IsActive:     true,
	}
	input := &usecase.ChangePasswordInput{
		CurrentPassword: "OldPassword123!",
		NewPassword:     "NewPassword456!",
	}

	fx.hasher.EXPECT().Check(input.CurrentPassword, "old_hash").Return(true)
	fx.hasher.EXPECT().Hash(input.NewPassword).Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(storedUser, nil)
			mockUserRepo.EXPECT().UpdatePassword(ctx, userID, "new_hash").Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
}

func TestAccountService_DeleteUser_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().Delete(ctx, userID).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.DeleteUser(ctx, userID)

	require.NoError(t, err)
}

func TestAccountService_ListUsers_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	stored := []*entity.User{
		{ID: uuid.New(), Email: "a@example.com", Username: "a", Role: entity.RoleAdmin, IsActive: true},
		{ID: uuid.New(), Email: "b@example.com", Username: "b", Role: entity.RoleViewer, IsActive: false},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().ListAll(ctx).Return(stored, nil)

			return fn(mockFactory)
		})

	users, err := fx.service.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}
