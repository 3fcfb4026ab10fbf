package events

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 30 * time.Second

type handler struct {
	broker *Broker
}

// stream is a Server-Sent Events endpoint delivering the authenticated
// user's own shelf and booklist change events. The subscription is
// cancelled when the client disconnects.
func (h *handler) stream(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	sub := h.broker.Subscribe(user.ID)
	defer sub.Cancel()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-sub.C:
			if !open {
				return nil
			}
			if err := writeEvent(c, event); err != nil {
				return nil
			}
		case <-ticker.C:
			heartbeat := Event{Type: TypeHeartbeat, Timestamp: time.Now()}
			if err := writeEvent(c, heartbeat); err != nil {
				return nil
			}
		}
	}
}

func writeEvent(c echo.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	resp := c.Response()
	if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	resp.Flush()

	return nil
}
