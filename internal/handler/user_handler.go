package handler

import (
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/logging"
    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/service"
    "github.com/iliyamo/cinema-ticketing/internal/websession"
)

// UserHandler serves registration, login and logout.
type UserHandler struct {
    Users    *service.UserService
    Sessions *websession.Manager
    Logger   *zap.Logger
}

func NewUserHandler(users *service.UserService, sessions *websession.Manager, logger *zap.Logger) *UserHandler {
    if users == nil || sessions == nil {
        panic("nil dependency passed to NewUserHandler")
    }
    return &UserHandler{Users: users, Sessions: sessions, Logger: logger}
}

// FormAddUser handles GET /formAddUser.
func (h *UserHandler) FormAddUser(c echo.Context) error {
    return render(c, "formAddUser", nil)
}

// Registration handles POST /registration (form: name, password, email,
// phone).
func (h *UserHandler) Registration(c echo.Context) error {
    name := c.FormValue("name")
    if name == "" {
        name = c.FormValue("username")
    }
    u := model.User{
        Name:     name,
        Password: c.FormValue("password"),
        Email:    c.FormValue("email"),
        Phone:    c.FormValue("phone"),
    }
    ctx, cancel := storeContext(c)
    defer cancel()
    _, err := h.Users.Register(ctx, u)
    switch report(c, h.Logger, "register user", err) {
    case service.OutcomeSuccess:
        return redirect(c, "/success")
    case service.OutcomeConflict:
        return redirect(c, "/fail")
    case service.OutcomeInvalid:
        return redirect(c, "/fail?reason=invalid")
    }
    return redirect(c, "/fail?reason="+reasonUnavailable)
}

// Success handles GET /success.
func (h *UserHandler) Success(c echo.Context) error {
    return render(c, "success", nil)
}

// Fail handles GET /fail?reason=.
func (h *UserHandler) Fail(c echo.Context) error {
    msg := "A user with this email and phone is already registered."
    switch c.QueryParam("reason") {
    case "invalid":
        msg = "Name, email, phone and password are required."
    case reasonUnavailable:
        msg = "Registration is temporarily unavailable. Please try again later."
    }
    return render(c, "fail", echo.Map{"message": msg})
}

// LoginPage handles GET /loginPage; any fail parameter sets the flag.
func (h *UserHandler) LoginPage(c echo.Context) error {
    _, failed := c.QueryParams()["fail"]
    return render(c, "loginPage", echo.Map{
        "fail":        failed,
        "unavailable": c.QueryParam("reason") == reasonUnavailable,
    })
}

// Login handles POST /login (form: email, password).  A successful login
// moves the visitor to a fresh session id.
func (h *UserHandler) Login(c echo.Context) error {
    ctx, cancel := storeContext(c)
    defer cancel()
    u, err := h.Users.Authenticate(ctx, c.FormValue("email"), c.FormValue("password"))
    switch report(c, h.Logger, "login", err) {
    case service.OutcomeSuccess:
    case service.OutcomeTransientFailure:
        return redirect(c, "/loginPage?fail=true&reason="+reasonUnavailable)
    default:
        return redirect(c, "/loginPage?fail=true")
    }
    s := visitor(c)
    if err := h.Sessions.Renew(c, s); err != nil {
        logging.Or(ctx, h.Logger).Error("renew session failed", zap.Error(err))
        return redirect(c, "/loginPage?fail=true&reason="+reasonUnavailable)
    }
    s.Login(u)
    logging.Or(ctx, h.Logger).Info("user logged in", zap.Uint64("user_id", u.ID))
    return redirect(c, "/allSessions")
}

// Logout handles GET /logout.
func (h *UserHandler) Logout(c echo.Context) error {
    s := visitor(c)
    if err := h.Sessions.Destroy(c, s); err != nil {
        logging.Or(c.Request().Context(), h.Logger).Warn("destroy session failed", zap.Error(err))
    }
    return redirect(c, "/loginPage")
}
