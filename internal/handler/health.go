package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health is a liveness check used by load balancers.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Check pings one dependency.
type Check func(ctx context.Context) error

// Ready reports the state of each named dependency.  Optional
// dependencies (Redis, RabbitMQ) only degrade the response; the store is
// required.
func Ready(required map[string]Check, optional map[string]Check) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()

        status := http.StatusOK
        report := echo.Map{}
        for name, check := range required {
            if err := check(ctx); err != nil {
                status = http.StatusServiceUnavailable
                report[name] = err.Error()
                continue
            }
            report[name] = "ok"
        }
        for name, check := range optional {
            if err := check(ctx); err != nil {
                report[name] = "degraded: " + err.Error()
                continue
            }
            report[name] = "ok"
        }
        return c.JSON(status, report)
    }
}
