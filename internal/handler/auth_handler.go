package handler

import (
	"errors"
	"net/http"

	"github.com/coursely/coursely-backend/internal/config"
	"github.com/coursely/coursely-backend/internal/middleware"
	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/coursely/coursely-backend/internal/response"
	"github.com/coursely/coursely-backend/internal/service"
	"github.com/coursely/coursely-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login, logout and profile endpoints.
type AuthHandler struct {
	accountService *service.AccountService
	cfg            *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService *service.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accountService: accountService, cfg: cfg}
}

// bindError renders a bind failure: bodies that failed to parse get a
// generic INVALID_PAYLOAD, field-level failures get the translated map.
func bindError(c *gin.Context, fields map[string]string) {
	if validator.Malformed(fields) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}

// Register godoc
// POST /api/v1/auth/register
// Creates a new admin account and returns its public profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindError(c, fields)
		return
	}

	admin, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, "admin registered successfully", gin.H{"admin": admin})
}

// Login godoc
// POST /api/v1/auth/login
// Verifies credentials, sets the adminSessionId http-only cookie and returns
// the token alongside the admin profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindError(c, fields)
		return
	}

	result, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.SetCookie(middleware.SessionCookieName, result.Token,
		int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)

	response.Success(c, http.StatusOK, "login successful", gin.H{
		"token": result.Token,
		"admin": result.Admin,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the session cookie. Tokens are stateless, so the issued token stays
// cryptographically valid until its natural expiry; logout only discards the
// client-held credential.
func (h *AuthHandler) Logout(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)

	response.Success(c, http.StatusOK, "logged out successfully", nil)
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated admin.
func (h *AuthHandler) Me(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", gin.H{"admin": admin.View()})
}
