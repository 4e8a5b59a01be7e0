package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yogapratama/leasedrive/internal/application"
	"github.com/yogapratama/leasedrive/internal/interface/middleware"
	"github.com/yogapratama/leasedrive/pkg/helpers"
	"github.com/yogapratama/leasedrive/pkg/response"
	"github.com/yogapratama/leasedrive/pkg/validation"
)

// AuthHandler exposes registration, login, and the token-based credential
// flows (password reset, account confirmation).
type AuthHandler struct {
	Users   *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(users *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Cookies: cookies, Logger: logger}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email              string `json:"email" binding:"required,email"`
		Name               string `json:"name" binding:"required"`
		Password           string `json:"password" binding:"required"`
		PasswordConfirm    string `json:"password_confirm" binding:"required"`
		ApplyForDealership bool   `json:"apply_for_dealership"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Email:              req.Email,
		Name:               req.Name,
		Password:           req.Password,
		PasswordConfirm:    req.PasswordConfirm,
		ApplyForDealership: req.ApplyForDealership,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	pair, err := h.Users.IssueTokens(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token issuance failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"user_id": u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"role":    u.Role,
	}, "logged in", nil)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, u, err := h.Users.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user_id": u.ID}, "refreshed", nil)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Users.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// ChangePassword POST /api/auth/password (auth required)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Repo.GetByID(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.Users.ChangePassword(c.Request.Context(), u, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "password changed", nil)
}

// ResetInit POST /api/auth/reset/init {email}
// Always responds OK to avoid account enumeration.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Users.IssueResetToken(c.Request.Context(), req.Email); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("email", req.Email).Debug("reset init for unknown or failing account")
	}
	response.Success[any](c, http.StatusOK, nil, "if the account exists, a reset email was sent", nil)
}

// ResetConfirm POST /api/auth/reset/confirm {token, new_password}
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Users.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, application.ErrInvalidToken) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset", nil)
}

// ConfirmInit POST /api/auth/confirm/init (auth required) re-sends the
// confirmation token for the logged-in user.
func (h *AuthHandler) ConfirmInit(c *gin.Context) {
	u, err := h.Users.Repo.GetByID(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if u.IsConfirmed {
		response.Success(c, http.StatusOK, gin.H{"already_confirmed": true}, "already confirmed", nil)
		return
	}
	if _, err := h.Users.IssueConfirmationToken(c.Request.Context(), u); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "confirmation email sent", nil)
}

// ConfirmAccount POST /api/auth/confirm {token}
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Users.ConfirmAccount(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, application.ErrInvalidToken) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"confirmed": true}, "account confirmed", nil)
}
