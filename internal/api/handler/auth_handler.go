package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-system/blog-api/internal/api/metrics"
	"github.com/blog-system/blog-api/internal/core/domain"
	"github.com/blog-system/blog-api/internal/core/ports"
)

const timestampLayout = "2006-01-02T15:04:05"

type AuthHandler struct {
	userService ports.UserService
}

func NewAuthHandler(userService ports.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"notblank"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse never carries the password.
type userResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt" example:"2026-10-19T09:30:00"`
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// CheckEmail reports whether an email is already registered.
//
// @Summary      Check email availability
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Email to check"
// @Success      200    {object}  checkEmailResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/auth/check-email [get]
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	if !c.QueryParams().Has("email") {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	exists, err := h.userService.ExistsByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkEmailResponse{Exists: exists})
}
