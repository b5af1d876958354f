package router // package router defines how HTTP routes are registered for the site

import (
	"net/http"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"go.uber.org/zap"             // structured logger handed to the session middleware

	"github.com/iliyamo/cinema-ticketing/internal/handler"    // import the handlers that implement the pages
	"github.com/iliyamo/cinema-ticketing/internal/middleware" // session, auth gate and guards
	"github.com/iliyamo/cinema-ticketing/internal/websession" // visitor session manager
)

// LoginPath is where anonymous visitors are sent.
const LoginPath = "/loginPage"

// PublicRoutes lists the route patterns reachable without logging in.
// Matching is exact; every other route requires a logged-in visitor.
var PublicRoutes = map[string]bool{
	"/":                  true,
	"/allSessions":       true,
	"/posterSession/:id": true,
	"/sessionSeats/:id":  true,
	"/formAddUser":       true,
	"/registration":      true,
	"/success":           true,
	"/fail":              true,
	"/loginPage":         true,
	"/login":             true,
	"/healthz":           true,
}

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Sessions *handler.SessionHandler
	Booking  *handler.BookingHandler
	Users    *handler.UserHandler
	Health   echo.HandlerFunc
}

// Options carries the optional route middleware.  Nil entries are skipped.
type Options struct {
	AdminEmails []string
	// FormLimiter throttles POST /login and POST /registration.
	FormLimiter echo.MiddlewareFunc
	// PosterCache caches GET /posterSession/:id responses.
	PosterCache echo.MiddlewareFunc
}

// Register installs the session and auth middleware and every route.
func Register(e *echo.Echo, sm *websession.Manager, h Handlers, opts Options, logger *zap.Logger) {
	e.Use(middleware.Sessions(sm, logger))
	e.Use(middleware.AuthGate(PublicRoutes, LoginPath))

	e.GET("/healthz", h.Health)
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/allSessions") })

	RegisterUsers(e, h.Users, opts.FormLimiter)
	RegisterSessions(e, h.Sessions, opts.AdminEmails, opts.PosterCache)
	RegisterBooking(e, h.Booking)
}

// RegisterUsers registers registration, login and logout.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, limiter echo.MiddlewareFunc) {
	e.GET("/formAddUser", u.FormAddUser)
	e.POST("/registration", u.Registration, optional(limiter)...)
	e.GET("/success", u.Success)
	e.GET("/fail", u.Fail)
	e.GET(LoginPath, u.LoginPage)
	e.POST("/login", u.Login, optional(limiter)...)
	e.GET("/logout", u.Logout)
}

func optional(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := mw[:0]
	for _, m := range mw {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
