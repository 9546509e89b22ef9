package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsroom/internal/domain/entity"
	domainerrors "newsroom/internal/domain/errors"
	mockUC "newsroom/internal/mocks/usecase"
	"newsroom/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*UserHandler, *mockUC.MockAccountUsecase) {
	uc := mockUC.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserHandler(uc, logger), uc
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_Signup_Created(t *testing.T) {
	h, uc := newTestHandler(t)

	registered := &entity.User{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Username:  "ada",
		Role:      entity.RoleEditor,
		IsActive:  true,
	}
	uc.EXPECT().
		Signup(mock.Anything, mock.AnythingOfType("*usecase.SignupInput")).
		Return(&usecase.AuthOutput{User: registered, Token: "signed_token"}, nil)

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","username":"ada","password":"Password123!"}`
	c, rec := newJSONContext(http.MethodPost, "/api/users/register", body)

	err := h.Signup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"token":"signed_token"`)
	assert.Contains(t, responseBody, `"email":"ada@example.com"`)
	assert.Contains(t, responseBody, `"role":"editor"`)
	// The wire type has no password field at all.
	assert.NotContains(t, responseBody, "password")
	assert.NotContains(t, responseBody, "Password")
}

func TestUserHandler_Signup_UsecaseErrorPropagates(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().
		Signup(mock.Anything, mock.AnythingOfType("*usecase.SignupInput")).
		Return(nil, domainerrors.ErrEmailTaken.WrapMessage("signup rejected"))

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","username":"ada","password":"Password123!"}`
	c, _ := newJSONContext(http.MethodPost, "/api/users/register", body)

	err := h.Signup(c)

	// The error middleware owns the translation to 409; the handler just
	// propagates.
	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "Email already in use", appErr.Message())
}

func TestUserHandler_Signup_EmptyBody(t *testing.T) {
	h, uc := newTestHandler(t)

	// echo skips body binding entirely on an empty body, leaving the input
	// pointer nil; that must surface as a 400, not reach the usecase.
	c, rec := newJSONContext(http.MethodPost, "/api/users/register", "")

	err := h.Signup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestUserHandler_ChangePassword_EmptyBody(t *testing.T) {
	h, uc := newTestHandler(t)

	userID := uuid.New()
	c, rec := newJSONContext(http.MethodPut, "/api/users/"+userID.String()+"/password", "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.ChangePassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_Login_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	loggedIn := &entity.User{
		ID:       uuid.New(),
		Email:    "ada@example.com",
		Username: "ada",
		Role:     entity.RoleEditor,
		IsActive: true,
	}
	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.AuthOutput{User: loggedIn, Token: "signed_token"}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/login", `{"email":"ada@example.com","password":"Password123!"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed_token"`)
}

func TestUserHandler_CreateUser_Created(t *testing.T) {
	h, uc := newTestHandler(t)

	created := &entity.User{
		ID:       uuid.New(),
		Email:    "grace@example.com",
		Username: "grace",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	uc.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*usecase.CreateUserInput")).
		Return(created, nil)

	body := `{"firstName":"Grace","lastName":"Hopper","email":"grace@example.com","username":"grace","password":"Password123!","role":"admin"}`
	c, rec := newJSONContext(http.MethodPost, "/api/users", body)

	err := h.CreateUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"role":"admin"`)
	assert.NotContains(t, responseBody, `"token"`)
}

func TestUserHandler_UpdateUser_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	userID := uuid.New()
	updated := &entity.User{
		ID:       userID,
		Email:    "augusta@example.com",
		Username: "ada",
		Role:     entity.RoleEditor,
		IsActive: true,
	}
	uc.EXPECT().
		UpdateUser(mock.Anything, userID, mock.AnythingOfType("*usecase.UpdateUserInput")).
		Return(&usecase.AuthOutput{User: updated, Token: "fresh_token"}, nil)

	c, rec := newJSONContext(http.MethodPut, "/api/users/"+userID.String(), `{"email":"augusta@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.UpdateUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"fresh_token"`)
}

func TestUserHandler_UpdateUser_InvalidID(t *testing.T) {
	h, uc := newTestHandler(t)

	c, rec := newJSONContext(http.MethodPut, "/api/users/not-a-uuid", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.UpdateUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_UpdateUsername_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	userID := uuid.New()
	renamed := &entity.User{
		ID:       userID,
		Email:    "ada@example.com",
		Username: "ada_l",
		Role:     entity.RoleEditor,
		IsActive: true,
	}
	uc.EXPECT().
		UpdateUsername(mock.Anything, userID, mock.AnythingOfType("*usecase.UpdateUsernameInput")).
		Return(renamed, nil)

	c, rec := newJSONContext(http.MethodPut, "/api/users/"+userID.String()+"/username", `{"username":"ada_l"}`)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.UpdateUsername(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"username":"ada_l"`)
	// Renames do not mint a new token.
	assert.NotContains(t, responseBody, `"token"`)
}

func TestUserHandler_ChangePassword_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	userID := uuid.New()
	uc.EXPECT().
		ChangePassword(mock.Anything, userID, mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Return(nil)

	c, rec := newJSONContext(http.MethodPut, "/api/users/"+userID.String()+"/password", `{"currentPassword":"old","newPassword":"new"}`)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.ChangePassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password updated successfully")
}

func TestUserHandler_DeleteUser_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	userID := uuid.New()
	uc.EXPECT().DeleteUser(mock.Anything, userID).Return(nil)

	c, rec := newJSONContext(http.MethodDelete, "/api/users/"+userID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.DeleteUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_ListUsers_OK(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().ListUsers(mock.Anything).Return([]*entity.User{
		{ID: uuid.New(), Email: "a@example.com", Username: "a", Role: entity.RoleAdmin, IsActive: true},
		{ID: uuid.New(), Email: "b@example.com", Username: "b", Role: entity.RoleViewer, IsActive: false},
	}, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/users", "")

	err := h.ListUsers(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, "a@example.com")
	assert.Contains(t, responseBody, "b@example.com")
	assert.NotContains(t, responseBody, "password")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
