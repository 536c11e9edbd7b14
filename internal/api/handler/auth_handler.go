package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/api/metrics"
	"github.com/innsight/hotel-admin/internal/api/middleware"
	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	gate          *auth.Gate
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, gate *auth.Gate, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		gate:          gate,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string               `json:"token,omitempty"`
	User  *domain.UserListItem `json:"user,omitempty"`
}

type sessionResponse struct {
	User *domain.Session `json:"user"`
}

// SignIn authenticates a staff member and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  badRequestResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err)
	}

	token, user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		}
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.cookie(token, time.Now().Add(h.sessionTTL)))
	item := user.ListItem()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: &item})
}

// SignOut ends the session by expiring the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	ck := h.cookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's session. The route is gated by
// middleware.RequireAPI, so an anonymous caller only gets here when the
// gate is bypassed.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  domain.ActionResult
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s, err := h.gate.CurrentSession(c.Request().Context())
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{User: s})
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
