package middleware

import (
    "sync/atomic"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/logging"
)

// RequestLogger attaches a request-scoped logger to the request context and
// logs one line per completed request.
func RequestLogger(base *zap.Logger) echo.MiddlewareFunc {
    if base == nil {
        base = zap.L()
    }
    var counter atomic.Uint64

    scope := func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            r := c.Request()
            logger := base.With(zap.Uint64("request_id", counter.Add(1)), zap.String("method", r.Method), zap.String("path", r.URL.Path))
            c.SetRequest(r.WithContext(logging.ContextWithLogger(r.Context(), logger)))
            return next(c)
        }
    }
    done := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogStatus:   true,
        LogLatency:  true,
        LogRemoteIP: true,
        LogError:    true,
        HandleError: true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            logger := logging.Or(c.Request().Context(), base)
            if v.Error != nil {
                logger.Error("request failed", zap.Int("status", v.Status), zap.Duration("latency", v.Latency), zap.String("ip", v.RemoteIP), zap.Error(v.Error))
                return nil
            }
            logger.Info("request completed", zap.Int("status", v.Status), zap.Duration("latency", v.Latency), zap.String("ip", v.RemoteIP))
            return nil
        },
    })
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return scope(done(next))
    }
}
