package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "reading_list_session"

	// ContextAccountID and ContextUsername are the echo context keys the
	// session middleware populates for protected routes.
	ContextAccountID = "account_id"
	ContextUsername  = "username"
)

// writeError renders a classified error as the standard response body.
func writeError(c echo.Context, err error, dev bool) error {
	httpErr := apperrors.MapErrorToHTTP(err, dev)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// sessionToken extracts the session token from the request cookie, or ""
// when the cookie is absent.
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// bindingViolations flattens a validator error into one detail per failed
// field so binding failures also report every unmet rule.
func bindingViolations(err error) []string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fe.Error())
		}
		return details
	}
	return []string{err.Error()}
}
