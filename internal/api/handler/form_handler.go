package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/api/metrics"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
)

type FormHandler struct {
	registry *forms.Registry
}

func NewFormHandler(registry *forms.Registry) *FormHandler {
	return &FormHandler{registry: registry}
}

// Submit runs a form submission through the registry pipeline.
//
// @Summary      Submit a form
// @Tags         forms
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        formId  path  string  true  "Form identifier"
// @Success      200  {object}  domain.ActionResult
// @Failure      400  {object}  domain.ActionResult
// @Failure      401  {object}  domain.ActionResult
// @Failure      403  {object}  domain.ActionResult
// @Failure      409  {object}  domain.ActionResult
// @Failure      500  {object}  domain.ActionResult
// @Router       /api/forms/{formId} [post]
func (h *FormHandler) Submit(c echo.Context) error {
	formID := c.Param("formId")

	values, err := requestValues(c)
	if err != nil {
		return h.respond(c, formID, invalidPayload())
	}
	return h.respond(c, formID, h.registry.Submit(c.Request().Context(), formID, values))
}

// Fields returns the field definitions of a form for UI generation.
//
// @Summary      Describe a form
// @Tags         forms
// @Produce      json
// @Param        formId  path  string  true  "Form identifier"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/forms/{formId} [get]
func (h *FormHandler) Fields(c echo.Context) error {
	formID := c.Param("formId")
	fields, ok := h.registry.Fields(formID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "form not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"id": formID, "fields": fields})
}

func (h *FormHandler) respond(c echo.Context, formID string, res domain.ActionResult) error {
	label := formID
	if _, ok := h.registry.Fields(formID); !ok {
		label = "unknown"
	}
	metrics.FormSubmissionsTotal.WithLabelValues(label, metrics.Result(res.OK(), string(res.Code()))).Inc()
	return c.JSON(res.HTTPStatus(http.StatusOK), res)
}
