package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// AuthHandler handles HTTP requests for identity operations.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type passwordResetRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a new user account. The response carries the created user
// with the password digest scrubbed (the hash field is never serialised).
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		Role:  result.Role,
		Email: result.Email,
		ID:    result.ID,
		Name:  result.Name,
	})
}

// Logout acknowledges the request. Tokens are stateless and stay valid until
// expiry; there is nothing to invalidate server-side.
//
// @Summary      Logout (stateless acknowledgement)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout()
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

// ListUsers returns every account. Admin only.
//
// @Summary      List all users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetByEmail returns the account for the given email.
func (h *AuthHandler) GetByEmail(c echo.Context) error {
	user, err := h.authService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByID returns the account for the given id. Admin only.
func (h *AuthHandler) GetByID(c echo.Context) error {
	user, err := h.authService.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

// Update applies a partial account update. Absent fields leave the stored
// values untouched. Public in the legacy contract; a hardened deployment
// would restrict this to self-or-admin.
//
// @Summary      Update a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to overwrite"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /auth/users/{id} [put]
func (h *AuthHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), c.Param("id"), ports.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes the account. Admin only; idempotent.
func (h *AuthHandler) Delete(c echo.Context) error {
	if err := h.authService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// ForgotPassword overwrites the password for the given email.
//
// @Summary      Reset a password by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        email  path      string                true  "Account email"
// @Param        body   body      passwordResetRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      404    {object}  errorResponse
// @Router       /auth/passwordForgot/{email} [put]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), c.Param("email"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated successfully"})
}
