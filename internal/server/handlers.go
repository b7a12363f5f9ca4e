package server

import (
	"bytes"
	"encoding/json"
	"io"

	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body into v. A missing body, an empty
// object, and malformed JSON all reject with the same message, matching
// the wire contract.
func bindJSON(c echo.Context, v any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.ValidationError("No data provided")
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("{}")) || bytes.Equal(body, []byte("null")) {
		return apperrors.ValidationError("No data provided")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.ValidationError("No data provided")
	}
	return nil
}
