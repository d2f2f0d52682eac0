package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/service"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	sessionTTL  time.Duration
	dev         bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessionTTL time.Duration, dev bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL, dev: dev}
}

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Username             string `json:"username" validate:"required"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// SessionResponse reports whether the caller holds a valid session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	ID            uint   `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("invalid request body"), h.dev)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, apperrors.NewValidation(bindingViolations(err)...), h.dev)
	}

	account, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.PasswordConfirmation)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, AccountResponse{ID: account.ID, Username: account.Username})
}

// Login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("invalid request body"), h.dev)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, apperrors.NewValidation(bindingViolations(err)...), h.dev)
	}

	account, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, AccountResponse{ID: account.ID, Username: account.Username})
}

// Logout godoc
// @Summary Log out and invalidate the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Always succeeds: an absent or already-expired session is a no-op.
	_ = h.authService.Logout(c.Request().Context(), sessionToken(c))
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Session godoc
// @Summary Report the current session state
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, ok := h.authService.CurrentSession(c.Request().Context(), sessionToken(c))
	if !ok {
		return c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		ID:            sess.AccountID,
		Username:      sess.Username,
	})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
