package websession

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

const contextKey = "websession"

// Session is one visitor's state for the duration of a request.
type Session struct {
	ID      string
	Expires time.Time
	Data
	dirty bool
}

// Touch marks the session for saving at the end of the request.
func (s *Session) Touch() { s.dirty = true }

// Dirty reports whether the session changed during the request.
func (s *Session) Dirty() bool { return s.dirty }

// LoggedIn reports whether a user is attached to the session.
func (s *Session) LoggedIn() bool { return s.User != nil }

// Login attaches u and starts with an empty reservation.
func (s *Session) Login(u model.User) {
	s.User = &User{ID: u.ID, Name: u.Name, Email: u.Email}
	s.Reservation = model.Reservation{}
	s.LastTicket = nil
	s.dirty = true
}

// Manager issues session cookies and moves session data in and out of the
// Store.  Cookies carry an HS256 token naming the session id.
type Manager struct {
	store  Store
	secret string
	cookie string
	ttl    time.Duration
	secure bool
}

// Options configures a Manager.
type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool // set the Secure cookie attribute
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "CINEMASESSION"
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	return &Manager{store: store, secret: opts.Secret, cookie: opts.CookieName, ttl: opts.TTL, secure: opts.Secure}
}

// Load returns the visitor's session.  A missing, invalid or expired cookie
// starts a new empty session and sets its cookie.
func (m *Manager) Load(c echo.Context) (*Session, error) {
	ctx := c.Request().Context()
	if ck, err := c.Cookie(m.cookie); err == nil && ck.Value != "" {
		if sid, err := utils.ParseSessionToken(m.secret, ck.Value); err == nil {
			d, ok, err := m.store.Load(ctx, sid)
			if err != nil {
				return nil, err
			}
			if ok {
				return &Session{ID: sid, Data: d}, nil
			}
		}
	}
	s := &Session{}
	if err := m.issue(c, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes s to the store when it changed.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if !s.dirty {
		return nil
	}
	ttl := m.ttl
	if !s.Expires.IsZero() {
		if left := time.Until(s.Expires); left > 0 {
			ttl = left
		}
	}
	if err := m.store.Save(ctx, s.ID, s.Data, ttl); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Renew moves s to a fresh id so a session id seen before login cannot be
// reused after it.
func (m *Manager) Renew(c echo.Context, s *Session) error {
	if s.ID != "" {
		if err := m.store.Delete(c.Request().Context(), s.ID); err != nil {
			return err
		}
	}
	return m.issue(c, s)
}

// Destroy drops the session server-side and expires the cookie.
func (m *Manager) Destroy(c echo.Context, s *Session) error {
	err := m.store.Delete(c.Request().Context(), s.ID)
	s.Data = Data{}
	s.dirty = false
	c.SetCookie(&http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

func (m *Manager) issue(c echo.Context, s *Session) error {
	sid := uuid.NewString()
	raw, exp, err := utils.NewSessionToken(m.secret, sid, m.ttl)
	if err != nil {
		return err
	}
	s.ID = sid
	s.Expires = exp
	s.dirty = true
	c.SetCookie(&http.Cookie{
		Name:     m.cookie,
		Value:    raw,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Set stores s on the echo context.
func Set(c echo.Context, s *Session) { c.Set(contextKey, s) }

// FromContext returns the session placed by the session middleware, or nil.
func FromContext(c echo.Context) *Session {
	s, _ := c.Get(contextKey).(*Session)
	return s
}
