package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/websession"
)

// AuthGate lets requests for public routes through and requires a logged-in
// visitor for everything else.  Routes are matched exactly on the
// registered pattern (c.Path()), e.g. "/posterSession/:id"; a route missing
// from the table is private.  Anonymous visitors are redirected to
// loginPath.
func AuthGate(public map[string]bool, loginPath string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if public[c.Path()] {
                return next(c)
            }
            if s := websession.FromContext(c); s == nil || !s.LoggedIn() {
                return c.Redirect(http.StatusSeeOther, loginPath)
            }
            return next(c)
        }
    }
}
