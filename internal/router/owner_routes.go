package router

import (
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/iliyamo/cinema-ticketing/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterSessions registers the movie session catalogue.  Browsing and
// posters are public; creating and editing sessions additionally pass
// RequireAdmin, which admits any logged-in user when no admin e-mails are
// configured.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, adminEmails []string, posterCache echo.MiddlewareFunc) {
	e.GET("/allSessions", h.AllSessions)
	e.GET("/posterSession/:id", h.PosterSession, optional(posterCache)...)
	e.GET("/sessionSeats/:id", h.SessionSeats)

	admin := middleware.RequireAdmin(adminEmails)
	e.GET("/editAllSessions", h.EditAllSessions, admin)
	e.GET("/formAddSession", h.FormAddSession, admin)
	e.POST("/createSession", h.CreateSession, admin)
	e.GET("/formUpdateSession/:id", h.FormUpdateSession, admin)
	e.POST("/updateSession", h.UpdateSession, admin)
}
