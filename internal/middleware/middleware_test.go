package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/websession"
)

var public = map[string]bool{
	"/allSessions":       true,
	"/posterSession/:id": true,
	"/success":           true,
}

// asUser puts a session on the context; the X-User header names the
// logged-in e-mail, its absence means anonymous.
func asUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := &websession.Session{}
		if email := c.Request().Header.Get("X-User"); email != "" {
			s.User = &websession.User{ID: 1, Email: email}
		}
		websession.Set(c, s)
		return next(c)
	}
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func newGatedServer(admins []string) *echo.Echo {
	e := echo.New()
	e.Use(asUser, AuthGate(public, "/loginPage"))
	e.GET("/allSessions", ok)
	e.GET("/posterSession/:id", ok)
	e.GET("/success", ok)
	e.GET("/ticketSuccess", ok)
	e.GET("/ticketFail", ok)
	e.GET("/editAllSessions", ok, RequireAdmin(admins))
	return e
}

func TestAuthGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		user     string
		wantCode int
	}{
		{name: "public route for anonymous visitor", path: "/allSessions", wantCode: http.StatusOK},
		{name: "public pattern with parameter", path: "/posterSession/42", wantCode: http.StatusOK},
		{name: "private route redirects anonymous visitor", path: "/ticketFail", wantCode: http.StatusSeeOther},
		{name: "substring of a public route is not public", path: "/ticketSuccess", wantCode: http.StatusSeeOther},
		{name: "logged-in visitor passes private route", path: "/ticketSuccess", user: "a@x.com", wantCode: http.StatusOK},
	}

	e := newGatedServer(nil)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.Header.Set("X-User", tt.user)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusSeeOther {
				if loc := rec.Header().Get(echo.HeaderLocation); loc != "/loginPage" {
					t.Fatalf("Location = %q, want /loginPage", loc)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		admins   []string
		user     string
		wantCode int
	}{
		{name: "no admins configured admits any user", user: "a@x.com", wantCode: http.StatusOK},
		{name: "listed admin passes", admins: []string{"Boss@X.com"}, user: "boss@x.com", wantCode: http.StatusOK},
		{name: "other user is forbidden", admins: []string{"boss@x.com"}, user: "a@x.com", wantCode: http.StatusForbidden},
		{name: "anonymous visitor still goes to login", admins: []string{"boss@x.com"}, wantCode: http.StatusSeeOther},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newGatedServer(tt.admins)
			req := httptest.NewRequest(http.MethodGet, "/editAllSessions", nil)
			if tt.user != "" {
				req.Header.Set("X-User", tt.user)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestSessionsPersistChangesAcrossRequests(t *testing.T) {
	t.Parallel()

	store := websession.NewMemoryStore()
	m := websession.NewManager(store, websession.Options{Secret: "test-secret", TTL: time.Minute})
	logger := zap.NewNop()

	e := echo.New()
	e.Use(Sessions(m, logger))
	e.GET("/login", func(c echo.Context) error {
		s := websession.FromContext(c)
		s.Login(model.User{ID: 3, Name: "Ann", Email: "ann@x.com"})
		return c.Redirect(http.StatusSeeOther, "/allSessions")
	})
	e.GET("/whoami", func(c echo.Context) error {
		s := websession.FromContext(c)
		if !s.LoggedIn() {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, s.User.Email)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Body.String(); got != "ann@x.com" {
		t.Fatalf("whoami = %q, want ann@x.com", got)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if got := rec.Body.String(); got != "anonymous" {
		t.Fatalf("whoami without cookie = %q, want anonymous", got)
	}
}

func TestCacheKeyFrom(t *testing.T) {
	t.Parallel()

	hexKey := regexp.MustCompile(`^poster:/posterSession/7:[0-9a-f]{40}$`)
	tests := []struct {
		name     string
		strategy string
		target   string
		check    func(string) bool
	}{
		{"no query", "path_query", "/posterSession/7", func(k string) bool { return k == "poster:/posterSession/7" }},
		{"query is hashed", "path_query", "/posterSession/7?w=100", hexKey.MatchString},
		{"path strategy ignores query", "path", "/posterSession/7?w=100", func(k string) bool { return k == "poster:/posterSession/7" }},
	}
	e := echo.New()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.CacheConfig{Prefix: "poster", KeyStrategy: tt.strategy}
			c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), httptest.NewRecorder())
			if got := cacheKeyFrom(cfg, c); !tt.check(got) {
				t.Fatalf("unexpected key %q", got)
			}
		})
	}

	t.Run("thumbnail sizes get distinct keys", func(t *testing.T) {
		t.Parallel()
		cfg := config.CacheConfig{Prefix: "poster", KeyStrategy: "path_query"}
		a := cacheKeyFrom(cfg, e.NewContext(httptest.NewRequest(http.MethodGet, "/posterSession/7?w=100", nil), httptest.NewRecorder()))
		b := cacheKeyFrom(cfg, e.NewContext(httptest.NewRequest(http.MethodGet, "/posterSession/7?w=200", nil), httptest.NewRecorder()))
		if a == b {
			t.Fatalf("keys collide: %q", a)
		}
	})
}

func TestRateKeys(t *testing.T) {
	t.Parallel()

	cfg := config.RateLimitConfig{Prefix: "rl"}
	e := echo.New()
	keysFor := func(remoteAddr string, form url.Values) []string {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.RemoteAddr = remoteAddr
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/login")
		return rateKeys(cfg, c)
	}

	t.Run("login is keyed on address and submitted account", func(t *testing.T) {
		t.Parallel()
		got := keysFor("192.0.2.1:1234", url.Values{"email": {"  Ann@X.com "}, "password": {"guess"}})
		want := []string{"rl:POST /login:ip:192.0.2.1", "rl:POST /login:account:ann@x.com"}
		if !slices.Equal(got, want) {
			t.Fatalf("keys = %q, want %q", got, want)
		}
	})

	t.Run("account bucket is shared across addresses", func(t *testing.T) {
		t.Parallel()
		a := keysFor("192.0.2.1:1234", url.Values{"email": {"ann@x.com"}})
		b := keysFor("198.51.100.7:999", url.Values{"email": {"ANN@x.com"}})
		if a[0] == b[0] {
			t.Fatalf("address keys should differ: %q", a[0])
		}
		if a[1] != b[1] {
			t.Fatalf("account keys differ: %q vs %q", a[1], b[1])
		}
	})

	t.Run("no e-mail means address bucket only", func(t *testing.T) {
		t.Parallel()
		got := keysFor("192.0.2.1:1234", url.Values{"password": {"x"}})
		if len(got) != 1 || got[0] != "rl:POST /login:ip:192.0.2.1" {
			t.Fatalf("keys = %q", got)
		}
	})
}
