package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// SetupChecker is the slice of the setup service the bootstrap routes need.
type SetupChecker interface {
	AdminExists(ctx context.Context) (bool, error)
	ValidateSecret(secret string) error
}

// FormSubmitter runs a form through the dispatch pipeline.
type FormSubmitter interface {
	Submit(ctx context.Context, formID string, raw domain.Values) domain.ActionResult
}

type SetupHandler struct {
	setup  SetupChecker
	forms  FormSubmitter
	formID string
}

// NewSetupHandler routes create-admin requests to the form registered as formID.
func NewSetupHandler(setup SetupChecker, forms FormSubmitter, formID string) *SetupHandler {
	return &SetupHandler{setup: setup, forms: forms, formID: formID}
}

type setupCheckResponse struct {
	AdminExists bool `json:"adminExists"`
}

type validateSecretRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type createAdminRequest struct {
	Secret          string `json:"secret"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// Check reports whether a super admin exists.
//
// @Summary      Setup status
// @Tags         setup
// @Produce      json
// @Success      200  {object}  setupCheckResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/setup/check [get]
func (h *SetupHandler) Check(c echo.Context) error {
	exists, err := h.setup.AdminExists(c.Request().Context())
	if err != nil {
		return fmt.Errorf("setup check: %w", err)
	}
	return c.JSON(http.StatusOK, setupCheckResponse{AdminExists: exists})
}

// Validate compares a candidate secret against the configured one.
//
// @Summary      Validate the setup secret
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      validateSecretRequest  true  "Candidate secret"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  badRequestResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/setup/validate [post]
func (h *SetupHandler) Validate(c echo.Context) error {
	var req validateSecretRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err)
	}

	err := h.setup.ValidateSecret(req.Secret)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]bool{"valid": true})
	case errors.Is(err, domain.ErrSetupNotConfigured):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Setup secret not configured on server"})
	case errors.Is(err, domain.ErrInvalidSetupSecret):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid setup secret"})
	default:
		return err
	}
}

// CreateAdmin creates the first super admin through the setup form.
//
// @Summary      Create the first super admin
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      createAdminRequest  true  "Setup secret and credentials"
// @Success      201   {object}  domain.ActionResult
// @Failure      400   {object}  domain.ActionResult
// @Failure      409   {object}  domain.ActionResult
// @Failure      500   {object}  domain.ActionResult
// @Router       /api/setup/create-admin [post]
func (h *SetupHandler) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		res := invalidPayload()
		return c.JSON(res.HTTPStatus(http.StatusCreated), res)
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	res := h.forms.Submit(c.Request().Context(), h.formID, domain.Values{
		"secret":          req.Secret,
		"email":           req.Email,
		"password":        req.Password,
		"confirmPassword": req.ConfirmPassword,
	})
	return c.JSON(res.HTTPStatus(http.StatusCreated), res)
}
