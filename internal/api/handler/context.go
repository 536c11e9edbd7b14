package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// requestValues reads the request body into raw submission values. JSON
// bodies are decoded as-is; form-encoded bodies keep a single value as a
// string and repeated keys as []string.
func requestValues(c echo.Context) (domain.Values, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		values := domain.Values{}
		if err := (&echo.DefaultBinder{}).BindBody(c, &values); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		return values, nil
	}

	params, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	values := make(domain.Values, len(params))
	for k, v := range params {
		if len(v) == 1 {
			values[k] = v[0]
			continue
		}
		values[k] = v
	}
	return values, nil
}

// invalidPayload is the result for a body that could not be decoded at all.
func invalidPayload() domain.ActionResult {
	return domain.Failure(domain.CodeValidationFailed, "Invalid request", "The request body could not be read.")
}
