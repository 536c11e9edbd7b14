package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
)

func newNewsletterRegistry(t *testing.T, actions *int32) *forms.Registry {
	t.Helper()
	entry := forms.Entry{
		ID: "newsletter",
		Fields: forms.Fields{
			{Name: "email", Type: forms.TypeEmail, Label: "Email", Rule: "required,email"},
			{Name: "name", Type: forms.TypeText, Label: "Name", Rule: "omitempty,max=20"},
		},
		Action: func(ctx context.Context, data domain.Values) domain.ActionResult {
			atomic.AddInt32(actions, 1)
			return domain.Success("Subscribed", "", data)
		},
	}
	r, err := forms.NewRegistry(zerolog.Nop(), []string{"newsletter"}, entry)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func formContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, formID string) echo.Context {
	c := e.NewContext(req, rec)
	c.SetPath("/api/forms/:formId")
	c.SetParamNames("formId")
	c.SetParamValues(formID)
	return c
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/forms/x", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestFormHandler_Submit_FormEncoded(t *testing.T) {
	e := newEcho()
	var actions int32
	h := NewFormHandler(newNewsletterRegistry(t, &actions))

	rec := httptest.NewRecorder()
	req := formRequest(url.Values{"email": {"guest@hotel.test"}, "name": {"Ana"}, "extra": {"dropped"}})
	if err := h.Submit(formContext(e, req, rec, "newsletter")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if atomic.LoadInt32(&actions) != 1 {
		t.Fatalf("expected exactly one action, got %d", actions)
	}

	res := decodeResult(t, rec)
	data, _ := res.Data.(map[string]any)
	if data["email"] != "guest@hotel.test" || data["extra"] != nil {
		t.Fatalf("unexpected action data: %+v", res.Data)
	}
}

func TestFormHandler_Submit_ValidationFailure(t *testing.T) {
	e := newEcho()
	var actions int32
	h := NewFormHandler(newNewsletterRegistry(t, &actions))

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/forms/newsletter", `{"email":"nope"}`)
	_ = h.Submit(formContext(e, req, rec, "newsletter"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	res := decodeResult(t, rec)
	if res.Code() != domain.CodeValidationFailed || res.FieldErrors["email"] == "" {
		t.Fatalf("expected email field error, got %+v", res)
	}
	if atomic.LoadInt32(&actions) != 0 {
		t.Fatalf("action must not run")
	}
}

func TestFormHandler_Submit_UnknownForm(t *testing.T) {
	e := newEcho()
	var actions int32
	h := NewFormHandler(newNewsletterRegistry(t, &actions))

	rec := httptest.NewRecorder()
	_ = h.Submit(formContext(e, formRequest(url.Values{"email": {"guest@hotel.test"}}), rec, "nope"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	res := decodeResult(t, rec)
	if res.Code() != domain.CodeUnknownForm || res.Alert == nil || res.Alert.Title != "Invalid Form" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if atomic.LoadInt32(&actions) != 0 {
		t.Fatalf("action must not run")
	}
}

func TestFormHandler_Fields(t *testing.T) {
	e := newEcho()
	var actions int32
	h := NewFormHandler(newNewsletterRegistry(t, &actions))

	rec := httptest.NewRecorder()
	c := formContext(e, httptest.NewRequest(http.MethodGet, "/api/forms/newsletter", nil), rec, "newsletter")
	if err := h.Fields(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		ID     string        `json:"id"`
		Fields []forms.Field `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "newsletter" || len(resp.Fields) != 2 || resp.Fields[0].Name != "email" {
		t.Fatalf("unexpected fields: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = formContext(e, httptest.NewRequest(http.MethodGet, "/api/forms/nope", nil), rec, "nope")
	if err := h.Fields(c); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestRequestValues_RepeatedKeys(t *testing.T) {
	e := newEcho()
	req := formRequest(url.Values{"tag": {"a", "b"}, "name": {"x"}})
	c := e.NewContext(req, httptest.NewRecorder())

	values, err := requestValues(c)
	if err != nil {
		t.Fatalf("requestValues: %v", err)
	}
	if values["name"] != "x" {
		t.Fatalf("expected single value as string, got %#v", values["name"])
	}
	tags, ok := values["tag"].([]string)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected repeated key as []string, got %#v", values["tag"])
	}
}
