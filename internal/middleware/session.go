package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/logging"
    "github.com/iliyamo/cinema-ticketing/internal/websession"
)

// Sessions loads the visitor session before the handler runs and writes it
// back just before the response header goes out, so a redirect never
// reaches the browser ahead of the state it depends on.
func Sessions(m *websession.Manager, logger *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            sess, err := m.Load(c)
            if err != nil {
                logging.Or(ctx, logger).Error("load session failed", zap.Error(err))
                return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
            }
            websession.Set(c, sess)
            c.Response().Before(func() {
                if err := m.Save(ctx, sess); err != nil {
                    logging.Or(ctx, logger).Error("save session failed", zap.String("session", sess.ID), zap.Error(err))
                }
            })
            return next(c)
        }
    }
}
