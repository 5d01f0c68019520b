package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// AuthHandler handles login and access-token refresh.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userInfoResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	PositionName    string `json:"position_name,omitempty"`
	DepartmentID    string `json:"department_id,omitempty"`
	CanEvaluate     bool   `json:"can_evaluate"`
	CanViewAll      bool   `json:"can_view_all"`
	CanFinalApprove bool   `json:"can_final_approve"`
}

type loginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         userInfoResponse `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Login handles POST /v1/auth/login.
//
// @Summary      Authenticate and issue tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         toUserInfo(result.User),
	})
}

// Refresh handles POST /v1/auth/refresh.
//
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: token})
}

func toUserInfo(u *domain.User) userInfoResponse {
	info := userInfoResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role().String(),
		DepartmentID: u.DepartmentID,
		CanEvaluate:  u.CanPerformEvaluation(),
	}
	if u.Position != nil {
		info.PositionName = u.Position.Name
		info.CanViewAll = u.Position.CanViewAll
		info.CanFinalApprove = u.Position.CanFinalApprove
	}
	return info
}
