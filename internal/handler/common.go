package handler // package handler contains the HTTP handlers of the ticketing site

import (
    "context"  // request-scoped deadlines for store calls
    "errors"   // errors.Is against service sentinels
    "net/http" // status codes
    "strconv"  // path and query parsing
    "time"     // store call timeout

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing
    "go.uber.org/zap"             // structured logging

    "github.com/iliyamo/cinema-ticketing/internal/logging"    // request-scoped logger
    "github.com/iliyamo/cinema-ticketing/internal/model"      // domain records
    "github.com/iliyamo/cinema-ticketing/internal/service"    // outcome classification
    "github.com/iliyamo/cinema-ticketing/internal/websession" // visitor session
)

// storeTimeout bounds every store round trip made while serving a request.
const storeTimeout = 5 * time.Second

func storeContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// queryInt reads an integer query parameter.  ok is false when it is
// missing or not a number.
func queryInt(c echo.Context, name string) (int, bool) {
    v, err := strconv.Atoi(c.QueryParam(name))
    if err != nil {
        return 0, false
    }
    return v, true
}

func visitor(c echo.Context) *websession.Session {
    if s := websession.FromContext(c); s != nil {
        return s
    }
    // the session middleware is not mounted (handler unit tests)
    s := &websession.Session{}
    websession.Set(c, s)
    return s
}

// buyer returns the logged-in visitor as a model.User.  The auth gate
// guarantees a user on private routes.
func buyer(s *websession.Session) model.User {
    if s.User == nil {
        return model.User{}
    }
    return model.User{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email}
}

// render writes a JSON view model.  Every view carries the current user
// (null for anonymous visitors) and its own name.
func render(c echo.Context, view string, data echo.Map) error {
    if data == nil {
        data = echo.Map{}
    }
    data["view"] = view
    data["user"] = visitor(c).User
    return c.JSON(http.StatusOK, data)
}

func redirect(c echo.Context, to string) error {
    return c.Redirect(http.StatusSeeOther, to)
}

func errorJSON(c echo.Context, code int, msg string) error {
    return c.JSON(code, echo.Map{"error": msg})
}

// report logs err once, at the level its outcome deserves, and returns
// the outcome.  Conflicts and invalid input are ordinary traffic.
func report(c echo.Context, logger *zap.Logger, op string, err error) service.Outcome {
    o := service.OutcomeOf(err)
    if err == nil {
        return o
    }
    l := logging.Or(c.Request().Context(), logger)
    switch o {
    case service.OutcomeTransientFailure:
        l.Error(op+" failed", zap.Error(err))
    default:
        l.Info(op+" rejected", zap.Stringer("outcome", o), zap.Error(err))
    }
    return o
}

// fail answers a request that went wrong: 404 for unknown movie sessions,
// 400 for bad input, 409 for conflicts and 503 when the store could not be
// reached.  The wrapped error text stays in the log.
func fail(c echo.Context, logger *zap.Logger, op string, err error) error {
    switch report(c, logger, op, err) {
    case service.OutcomeInvalid:
        if errors.Is(err, service.ErrSessionNotFound) {
            return errorJSON(c, http.StatusNotFound, "session not found")
        }
        return errorJSON(c, http.StatusBadRequest, publicMessage(err))
    case service.OutcomeConflict:
        return errorJSON(c, http.StatusConflict, publicMessage(err))
    }
    return errorJSON(c, http.StatusServiceUnavailable, "service temporarily unavailable")
}

// publicMessage picks the fixed client-facing text for err.
func publicMessage(err error) string {
    switch {
    case errors.Is(err, service.ErrSeatTaken):
        return "seat already taken"
    case errors.Is(err, service.ErrUserExists):
        return "user already exists"
    case errors.Is(err, model.ErrInvalidPosition):
        return model.ErrInvalidPosition.Error()
    case errors.Is(err, model.ErrNoSessionChosen):
        return "choose a session first"
    case errors.Is(err, model.ErrNoRowChosen):
        return "choose a row first"
    case errors.Is(err, service.ErrInvalidInput):
        return "invalid input"
    }
    return "request rejected"
}
