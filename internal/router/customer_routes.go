package router

import (
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/labstack/echo/v4"
)

// RegisterBooking registers the seat-selection wizard and ticket pages.
// None of them are public, so the auth gate sends anonymous visitors to the
// login page first.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler) {
	e.GET("/selectRow/:id", h.SelectRow)
	e.GET("/selectPlace/:id", h.SelectPlace)
	e.GET("/aboutSession", h.AboutSession)
	e.GET("/createTicket", h.CreateTicket)
	e.POST("/createTicket", h.CreateTicket)
	e.GET("/ticketSuccess", h.TicketSuccess)
	e.GET("/ticketFail", h.TicketFail)
	e.GET("/cancelAnOrder", h.CancelAnOrder)
	e.GET("/myTickets", h.MyTickets)
}
