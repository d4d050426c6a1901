package handlers

import (
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// RequestLogger logs each request after the rest of the chain has run.
func RequestLogger() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		attrs := []any{
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
			"status", e.Status(),
			"duration", time.Since(start),
		}
		if err != nil {
			slog.Warn("http: request failed", append(attrs, "error", err)...)
		} else {
			slog.Debug("http: request", attrs...)
		}
		return err
	}
}
