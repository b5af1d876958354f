package middleware // middleware provides shared request processing for handlers

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/websession"
)

// RequireAdmin restricts movie session management to the given e-mail
// addresses.  With an empty list every logged-in user is allowed, which is
// how the service behaves when no administrators are configured.  It must
// run after AuthGate.
func RequireAdmin(emails []string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(emails))
    for _, e := range emails {
        allowed[strings.ToLower(strings.TrimSpace(e))] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if len(allowed) == 0 {
                return next(c)
            }
            s := websession.FromContext(c)
            if s == nil || s.User == nil || !allowed[strings.ToLower(s.User.Email)] {
                return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
