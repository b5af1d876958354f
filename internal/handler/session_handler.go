package handler

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/poster"
    "github.com/iliyamo/cinema-ticketing/internal/service"
)

// errPosterTooLarge is returned when an upload exceeds the configured limit.
var errPosterTooLarge = errors.New("poster too large")

// SessionHandler serves the movie session catalogue and its management
// pages.
type SessionHandler struct {
    Sessions *service.SessionService
    Tickets  *service.TicketService
    Logger   *zap.Logger
    // MaxPoster caps uploaded poster size in bytes; zero means no cap.
    MaxPoster int64
    // PosterChanged is called after a session's poster was replaced, with
    // the public poster path, so cached copies can be dropped.
    PosterChanged func(ctx context.Context, path string)
}

func NewSessionHandler(sessions *service.SessionService, tickets *service.TicketService, logger *zap.Logger, maxPoster int64) *SessionHandler {
    if sessions == nil || tickets == nil {
        panic("nil service passed to NewSessionHandler")
    }
    return &SessionHandler{Sessions: sessions, Tickets: tickets, Logger: logger, MaxPoster: maxPoster}
}

// AllSessions handles GET /allSessions.
func (h *SessionHandler) AllSessions(c echo.Context) error {
    return h.list(c, "allSessions")
}

// EditAllSessions handles GET /editAllSessions.
func (h *SessionHandler) EditAllSessions(c echo.Context) error {
    return h.list(c, "editAllSessions")
}

func (h *SessionHandler) list(c echo.Context, view string) error {
    ctx, cancel := storeContext(c)
    defer cancel()
    list, err := h.Sessions.List(ctx)
    if err != nil {
        return fail(c, h.Logger, "list sessions", err)
    }
    if list == nil {
        list = []model.MovieSession{}
    }
    return render(c, view, echo.Map{"sessions": list})
}

// FormAddSession handles GET /formAddSession.
func (h *SessionHandler) FormAddSession(c echo.Context) error {
    return render(c, "formAddSession", nil)
}

// CreateSession handles POST /createSession (multipart: title,
// description, file).
func (h *SessionHandler) CreateSession(c echo.Context) error {
    img, err := h.readPoster(c)
    if err != nil {
        return h.posterError(c, err)
    }
    ms := model.MovieSession{
        Title:       c.FormValue("title"),
        Description: strings.TrimSpace(c.FormValue("description")),
        Poster:      img,
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    if err := h.Sessions.Create(ctx, &ms); err != nil {
        return fail(c, h.Logger, "create session", err)
    }
    return redirect(c, "/allSessions")
}

// FormUpdateSession handles GET /formUpdateSession/:id.
func (h *SessionHandler) FormUpdateSession(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    ms, err := h.Sessions.Get(ctx, id)
    if err != nil {
        return fail(c, h.Logger, "load session", err)
    }
    return render(c, "formUpdateSession", echo.Map{"ses": ms})
}

// UpdateSession handles POST /updateSession (multipart: id, title,
// description, optional file).  The poster is kept unless a new file is
// sent.
func (h *SessionHandler) UpdateSession(c echo.Context) error {
    id, err := strconv.ParseUint(c.FormValue("id"), 10, 64)
    if err != nil || id == 0 {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    img, err := h.readPoster(c)
    if err != nil {
        return h.posterError(c, err)
    }
    ms := model.MovieSession{
        ID:          id,
        Title:       c.FormValue("title"),
        Description: strings.TrimSpace(c.FormValue("description")),
        Poster:      img,
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    if err := h.Sessions.Update(ctx, ms); err != nil {
        return fail(c, h.Logger, "update session", err)
    }
    if len(img) > 0 && h.PosterChanged != nil {
        h.PosterChanged(ctx, fmt.Sprintf("/posterSession/%d", id))
    }
    return redirect(c, "/allSessions")
}

// PosterSession handles GET /posterSession/:id.  With ?w= and/or ?h= a
// JPEG thumbnail bounded by them is returned.
func (h *SessionHandler) PosterSession(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    w, h2, err := thumbBounds(c)
    if err != nil {
        return errorJSON(c, http.StatusBadRequest, err.Error())
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    body, ctype, err := h.Sessions.Poster(ctx, id, w, h2)
    if errors.Is(err, poster.ErrEmpty) {
        return errorJSON(c, http.StatusNotFound, "session has no poster")
    }
    if err != nil {
        return fail(c, h.Logger, "load poster", err)
    }
    return c.Blob(http.StatusOK, ctype, body)
}

// SessionSeats handles GET /sessionSeats/:id: the seats already sold.
func (h *SessionHandler) SessionSeats(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid session id")
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    if _, err := h.Sessions.Get(ctx, id); err != nil {
        return fail(c, h.Logger, "load session", err)
    }
    sold, err := h.Tickets.TakenSeats(ctx, id)
    if err != nil {
        return fail(c, h.Logger, "list taken seats", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"session_id": id, "taken": seatsOf(sold)})
}

type seatView struct {
    Row  int `json:"row"`
    Seat int `json:"seat"`
}

func seatsOf(tickets []model.Ticket) []seatView {
    out := make([]seatView, 0, len(tickets))
    for _, t := range tickets {
        out = append(out, seatView{Row: t.Row, Seat: t.Seat})
    }
    return out
}

func thumbBounds(c echo.Context) (uint, uint, error) {
    var dims [2]uint
    for i, name := range []string{"w", "h"} {
        raw := c.QueryParam(name)
        if raw == "" {
            continue
        }
        v, err := strconv.ParseUint(raw, 10, 32)
        if err != nil || v > poster.MaxEdge {
            return 0, 0, fmt.Errorf("%s must be between 0 and %d", name, poster.MaxEdge)
        }
        dims[i] = uint(v)
    }
    return dims[0], dims[1], nil
}

// readPoster returns the uploaded "file" part, or nil when none was sent.
func (h *SessionHandler) readPoster(c echo.Context) ([]byte, error) {
    fh, err := c.FormFile("file")
    if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    if h.MaxPoster > 0 && fh.Size > h.MaxPoster {
        return nil, errPosterTooLarge
    }
    f, err := fh.Open()
    if err != nil {
        return nil, err
    }
    defer f.Close()
    r := io.Reader(f)
    if h.MaxPoster > 0 {
        r = io.LimitReader(f, h.MaxPoster+1)
    }
    img, err := io.ReadAll(r)
    if err != nil {
        return nil, err
    }
    if h.MaxPoster > 0 && int64(len(img)) > h.MaxPoster {
        return nil, errPosterTooLarge
    }
    return img, nil
}

func (h *SessionHandler) posterError(c echo.Context, err error) error {
    if errors.Is(err, errPosterTooLarge) {
        return errorJSON(c, http.StatusRequestEntityTooLarge, err.Error())
    }
    return errorJSON(c, http.StatusBadRequest, "invalid upload")
}
