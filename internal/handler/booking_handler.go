package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/service"
)

// Failure reasons carried to /ticketFail.
const (
    reasonUnavailable = "unavailable"
    reasonIncomplete  = "incomplete"
)

var failMessages = map[string]string{
    "":                "The ticket for this seat has already been sold. Please choose another seat.",
    reasonIncomplete:  "Choose a session, a row and a seat before buying a ticket.",
    reasonUnavailable: "The ticket service is temporarily unavailable. Please try again later.",
}

// BookingHandler walks a visitor through picking a seat and buying the
// ticket.  The in-progress choice lives in the visitor session.
type BookingHandler struct {
    Sessions *service.SessionService
    Tickets  *service.TicketService
    Logger   *zap.Logger
}

func NewBookingHandler(sessions *service.SessionService, tickets *service.TicketService, logger *zap.Logger) *BookingHandler {
    if sessions == nil || tickets == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Sessions: sessions, Tickets: tickets, Logger: logger}
}

// SelectRow handles GET /selectRow/:id.  Choosing a session always starts
// the wizard over.
func (h *BookingHandler) SelectRow(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    ms, err := h.Sessions.Get(ctx, id)
    if err != nil {
        return fail(c, h.Logger, "select session", err)
    }
    sold, err := h.Tickets.TakenSeats(ctx, id)
    if err != nil {
        return fail(c, h.Logger, "list taken seats", err)
    }
    s := visitor(c)
    s.Reservation.ChooseSession(ms)
    s.Touch()
    return render(c, "selectRow", echo.Map{"ses": s.Reservation.Session, "taken": seatsOf(sold)})
}

// SelectPlace handles GET /selectPlace/:id?row=N.  When :id is not the
// session already chosen it is chosen first.
func (h *BookingHandler) SelectPlace(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    row, ok := queryInt(c, "row")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "row must be a number")
    }
    s := visitor(c)
    if s.Reservation.Session == nil || s.Reservation.Session.ID != id {
        ctx, cancel := storeContext(c)
        defer cancel()
        ms, err := h.Sessions.Get(ctx, id)
        if err != nil {
            return fail(c, h.Logger, "select session", err)
        }
        s.Reservation.ChooseSession(ms)
    }
    if err := s.Reservation.ChooseRow(row); err != nil {
        return errorJSON(c, http.StatusBadRequest, publicMessage(err))
    }
    s.Touch()
    return render(c, "selectPlace", echo.Map{"ses": s.Reservation.Session, "row": row})
}

// AboutSession handles GET /aboutSession?place=N and shows the summary of
// the pending purchase.
func (h *BookingHandler) AboutSession(c echo.Context) error {
    place, ok := queryInt(c, "place")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "place must be a number")
    }
    s := visitor(c)
    if err := s.Reservation.ChooseSeat(place); err != nil {
        code := http.StatusConflict
        if errors.Is(err, model.ErrInvalidPosition) {
            code = http.StatusBadRequest
        }
        return errorJSON(c, code, publicMessage(err))
    }
    s.Touch()
    r := s.Reservation
    return render(c, "aboutSession", echo.Map{
        "ses":     r.Session,
        "row":     *r.Row,
        "place":   *r.Seat,
        "confirm": echo.Map{"method": http.MethodPost, "action": "/createTicket"},
    })
}

// CreateTicket handles GET and POST /createTicket.  The seat is bought by
// one insert; whoever commits first gets it.  A GET the browser marks as
// cross-site is refused, since Lax cookies still ride along on top-level
// links from other sites.
func (h *BookingHandler) CreateTicket(c echo.Context) error {
    r := c.Request()
    if r.Method == http.MethodGet && r.Header.Get("Sec-Fetch-Site") == "cross-site" {
        return errorJSON(c, http.StatusForbidden, "confirm the purchase from the order summary")
    }
    s := visitor(c)
    ctx, cancel := storeContext(c)
    defer cancel()
    t, err := h.Tickets.Purchase(ctx, s.Reservation, buyer(s))
    switch report(c, h.Logger, "purchase ticket", err) {
    case service.OutcomeSuccess:
        s.LastTicket = &t
        s.Reservation.Clear()
        s.Touch()
        return redirect(c, "/ticketSuccess")
    case service.OutcomeConflict:
        return redirect(c, "/ticketFail")
    case service.OutcomeInvalid:
        return redirect(c, "/ticketFail?reason="+reasonIncomplete)
    }
    return redirect(c, "/ticketFail?reason="+reasonUnavailable)
}

// TicketSuccess handles GET /ticketSuccess.
func (h *BookingHandler) TicketSuccess(c echo.Context) error {
    s := visitor(c)
    if s.LastTicket == nil {
        return redirect(c, "/allSessions")
    }
    data := echo.Map{"ticket": s.LastTicket}
    ctx, cancel := storeContext(c)
    defer cancel()
    if ms, err := h.Sessions.Get(ctx, s.LastTicket.SessionID); err == nil {
        data["ses"] = ms
    }
    return render(c, "ticketSuccess", data)
}

// TicketFail handles GET /ticketFail?reason=.
func (h *BookingHandler) TicketFail(c echo.Context) error {
    reason := c.QueryParam("reason")
    msg, ok := failMessages[reason]
    if !ok {
        reason, msg = "", failMessages[""]
    }
    return render(c, "ticketFail", echo.Map{"reason": reason, "message": msg})
}

// CancelAnOrder handles GET /cancelAnOrder.
func (h *BookingHandler) CancelAnOrder(c echo.Context) error {
    s := visitor(c)
    s.Reservation.Clear()
    s.Touch()
    return redirect(c, "/allSessions")
}

// MyTickets handles GET /myTickets.
func (h *BookingHandler) MyTickets(c echo.Context) error {
    s := visitor(c)
    ctx, cancel := storeContext(c)
    defer cancel()
    list, err := h.Tickets.UserTickets(ctx, buyer(s).ID)
    if err != nil {
        return fail(c, h.Logger, "list tickets", err)
    }
    if list == nil {
        list = []model.Ticket{}
    }
    return render(c, "myTickets", echo.Map{"tickets": list})
}
