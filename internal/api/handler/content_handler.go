package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/api/metrics"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/pkg/logger"
)

// ContentHandler exposes the content registry as a REST-style surface, one
// route family per content type.
type ContentHandler struct {
	registry *content.Registry
	known    map[string]bool
	log      zerolog.Logger
}

func NewContentHandler(registry *content.Registry, log zerolog.Logger) *ContentHandler {
	known := make(map[string]bool)
	for _, t := range registry.Types() {
		known[t] = true
	}
	return &ContentHandler{registry: registry, known: known, log: log}
}

type listPayload struct {
	Rows  any    `json:"rows"`
	Total string `json:"total"`
}

type listData struct {
	List listPayload `json:"list"`
}

type listResponse struct {
	Status domain.ResultStatus `json:"status"`
	Data   *listData           `json:"data,omitempty"`
	Errors map[string]string   `json:"errors,omitempty"`
}

// List returns one page of records.
//
// @Summary      List content records
// @Tags         content
// @Produce      json
// @Param        type          path   string  true   "Content type"
// @Param        current       query  int     false  "1-based page number"
// @Param        rowCount      query  int     false  "Page size (1-100)"
// @Param        searchPhrase  query  string  false  "Case-insensitive search"
// @Success      200  {object}  listResponse
// @Failure      400  {object}  listResponse
// @Failure      401  {object}  listResponse
// @Failure      403  {object}  listResponse
// @Failure      500  {object}  listResponse
// @Router       /api/content/{type} [get]
func (h *ContentHandler) List(c echo.Context) error {
	contentType := c.Param("type")

	var params domain.ListParams
	err := echo.QueryParamsBinder(c).
		Int("current", &params.Current).
		Int("rowCount", &params.RowCount).
		String("searchPhrase", &params.SearchPhrase).
		BindError()
	if err != nil {
		return h.listFailure(c, contentType, http.StatusBadRequest, "Invalid list parameters")
	}

	res, err := h.registry.List(c.Request().Context(), contentType, params)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownContentType):
			return h.listFailure(c, contentType, http.StatusBadRequest, "Unknown content type: "+contentType)
		case errors.Is(err, domain.ErrUnauthenticated):
			return h.listFailure(c, contentType, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, domain.ErrPermissionDenied):
			return h.listFailure(c, contentType, http.StatusForbidden, "Insufficient permissions")
		}
		l := logger.Ctx(c.Request().Context(), h.log)
		l.Error().Err(err).
			Str("op", "list").
			Str("content_type", contentType).
			Msg("content list failed")
		return h.listFailure(c, contentType, http.StatusInternalServerError, "Internal server error")
	}

	h.count(contentType, "list", domain.ActionResult{Status: domain.StatusSuccess})
	return c.JSON(http.StatusOK, listResponse{
		Status: domain.StatusSuccess,
		Data: &listData{List: listPayload{
			Rows:  res.Rows,
			Total: strconv.FormatInt(res.Total, 10),
		}},
	})
}

// Create adds a record.
//
// @Summary      Create a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        type  path  string  true  "Content type"
// @Success      201  {object}  domain.ActionResult
// @Failure      400  {object}  domain.ActionResult
// @Failure      401  {object}  domain.ActionResult
// @Failure      403  {object}  domain.ActionResult
// @Failure      500  {object}  domain.ActionResult
// @Router       /api/content/{type} [post]
func (h *ContentHandler) Create(c echo.Context) error {
	contentType := c.Param("type")
	values, err := requestValues(c)
	if err != nil {
		return h.respond(c, contentType, "create", http.StatusCreated, invalidPayload())
	}
	res := h.registry.Create(c.Request().Context(), contentType, values)
	return h.respond(c, contentType, "create", http.StatusCreated, res)
}

// Update applies a partial update to the record named by the body's id.
//
// @Summary      Update a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        type  path  string  true  "Content type"
// @Success      200  {object}  domain.ActionResult
// @Failure      400  {object}  domain.ActionResult
// @Failure      401  {object}  domain.ActionResult
// @Failure      403  {object}  domain.ActionResult
// @Failure      404  {object}  domain.ActionResult
// @Failure      500  {object}  domain.ActionResult
// @Router       /api/content/{type} [patch]
func (h *ContentHandler) Update(c echo.Context) error {
	contentType := c.Param("type")
	values, err := requestValues(c)
	if err != nil {
		return h.respond(c, contentType, "update", http.StatusOK, invalidPayload())
	}

	id := idFrom(values)
	if id == "" && h.known[contentType] {
		return h.respond(c, contentType, "update", http.StatusOK, missingID())
	}
	res := h.registry.Update(c.Request().Context(), contentType, id, values)
	return h.respond(c, contentType, "update", http.StatusOK, res)
}

// Delete removes the record named by the body's id, or the id query
// parameter when the body carries none.
//
// @Summary      Delete a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        type  path  string  true  "Content type"
// @Success      200  {object}  domain.ActionResult
// @Failure      400  {object}  domain.ActionResult
// @Failure      401  {object}  domain.ActionResult
// @Failure      403  {object}  domain.ActionResult
// @Failure      404  {object}  domain.ActionResult
// @Failure      500  {object}  domain.ActionResult
// @Router       /api/content/{type} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	contentType := c.Param("type")
	values, err := requestValues(c)
	if err != nil {
		return h.respond(c, contentType, "delete", http.StatusOK, invalidPayload())
	}

	id := idFrom(values)
	if id == "" {
		id = strings.TrimSpace(c.QueryParam("id"))
	}
	if id == "" && h.known[contentType] {
		return h.respond(c, contentType, "delete", http.StatusOK, missingID())
	}
	res := h.registry.Delete(c.Request().Context(), contentType, id)
	return h.respond(c, contentType, "delete", http.StatusOK, res)
}

func (h *ContentHandler) respond(c echo.Context, contentType, op string, okStatus int, res domain.ActionResult) error {
	h.count(contentType, op, res)
	return c.JSON(res.HTTPStatus(okStatus), res)
}

func (h *ContentHandler) listFailure(c echo.Context, contentType string, status int, msg string) error {
	metrics.ContentOperationsTotal.WithLabelValues(h.label(contentType), "list", strconv.Itoa(status)).Inc()
	return c.JSON(status, listResponse{
		Status: domain.StatusFail,
		Errors: map[string]string{strconv.Itoa(status): msg},
	})
}

func (h *ContentHandler) count(contentType, op string, res domain.ActionResult) {
	metrics.ContentOperationsTotal.
		WithLabelValues(h.label(contentType), op, metrics.Result(res.OK(), string(res.Code()))).
		Inc()
}

// label keeps arbitrary path segments out of metric labels.
func (h *ContentHandler) label(contentType string) string {
	if h.known[contentType] {
		return contentType
	}
	return "unknown"
}

// idFrom reads the record id from a decoded body. JSON numbers are accepted
// and passed on in their decimal form.
func idFrom(values domain.Values) string {
	switch v := values["id"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		if len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

func missingID() domain.ActionResult {
	return domain.ValidationFailure(domain.FieldErrors{"id": "ID is required"})
}
