package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
	"github.com/innsight/hotel-admin/pkg/logger"
)

// FieldSource exposes registered form definitions.
type FieldSource interface {
	Fields(formID string) (forms.Fields, bool)
}

// ListingVersions reports how often a content type's listings were revalidated.
type ListingVersions interface {
	Version(ctx context.Context, contentType string) (int64, error)
}

// PageConfig names the forms each page bootstraps.
type PageConfig struct {
	UserForms    []string
	SetupForm    string
	SetupEnabled bool
}

// PageHandler serves the bootstrap payload of each admin page. Rendering
// happens client side; these routes decide who may see a page and hand the
// client its session and form definitions.
type PageHandler struct {
	gate     *auth.Gate
	fields   FieldSource
	setup    SetupChecker
	versions ListingVersions
	cfg      PageConfig
}

func NewPageHandler(gate *auth.Gate, fields FieldSource, setup SetupChecker, versions ListingVersions, cfg PageConfig) *PageHandler {
	return &PageHandler{gate: gate, fields: fields, setup: setup, versions: versions, cfg: cfg}
}

type pageResponse struct {
	Page           string                  `json:"page"`
	Session        *domain.Session         `json:"session,omitempty"`
	Forms          map[string]forms.Fields `json:"forms,omitempty"`
	CreatableRoles []domain.Role           `json:"creatableRoles,omitempty"`
	ListingVersion *int64                  `json:"listingVersion,omitempty"`
	AdminExists    *bool                   `json:"adminExists,omitempty"`
	Message        string                  `json:"message,omitempty"`
}

// Home is reachable by every signed-in role.
func (h *PageHandler) Home(c echo.Context) error {
	s, err := h.gate.CurrentSession(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "home", Session: s})
}

// Users bootstraps the staff management page.
func (h *PageHandler) Users(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.gate.CurrentSession(ctx)
	if err != nil {
		return err
	}

	resp := pageResponse{
		Page:    "users",
		Session: s,
		Forms:   h.formFields(h.cfg.UserForms...),
	}
	if s != nil {
		resp.CreatableRoles = domain.CreatableRoles(s.Role)
	}
	if h.versions != nil {
		v, err := h.versions.Version(ctx, content.Users)
		if err != nil {
			l := logger.Ctx(ctx, zerolog.Nop())
			l.Warn().Err(err).Str("content_type", content.Users).Msg("listing version unavailable")
		} else {
			resp.ListingVersion = &v
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Setup bootstraps the one-time setup page. Without a configured secret the
// page does not exist and callers go home.
func (h *PageHandler) Setup(c echo.Context) error {
	if !h.cfg.SetupEnabled {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	exists, err := h.setup.AdminExists(c.Request().Context())
	if err != nil {
		return fmt.Errorf("setup page: %w", err)
	}
	return c.JSON(http.StatusOK, pageResponse{
		Page:        "setup",
		Forms:       h.formFields(h.cfg.SetupForm),
		AdminExists: &exists,
	})
}

func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "unauthorized",
		Message: "You don't have permission to access this page.",
	})
}

func (h *PageHandler) formFields(ids ...string) map[string]forms.Fields {
	out := make(map[string]forms.Fields, len(ids))
	for _, id := range ids {
		if fields, ok := h.fields.Fields(id); ok {
			out[id] = fields
		}
	}
	return out
}
