package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// statsStreamInterval is how often the SSE stream pushes a fresh snapshot
const statsStreamInterval = 10 * time.Second

// StreamStats pushes dashboard stats over server-sent events so the admin
// console subscribes instead of polling. The connection ends when the
// client goes away; reconnecting is the client's fallback.
// GET /api/admin/stats/stream
func (h *AdminHandler) StreamStats(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	send := func() error {
		snapCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		stats, err := h.statsService.Snapshot(snapCtx)
		if err != nil {
			log.Printf("ERROR: Stats stream snapshot failed: %v", err)
			return nil // keep the stream alive; next tick may succeed
		}

		payload, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}

		if _, err := fmt.Fprintf(w, "event: stats\ndata: %s\n\n", payload); err != nil {
			return err
		}
		w.Flush()
		return nil
	}

	// Push one snapshot immediately so the dashboard paints without
	// waiting a full interval.
	if err := send(); err != nil {
		return nil
	}

	ticker := time.NewTicker(statsStreamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := send(); err != nil {
				return nil
			}
		}
	}
}
