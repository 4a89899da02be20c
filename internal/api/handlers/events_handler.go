// internal/api/handlers/events_handler.go
package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
)

type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

var streamableTables = map[string]bool{
	events.TableProducts:      true,
	events.TableSales:         true,
	events.TableExpenses:      true,
	events.TableNotifications: true,
}

// Stream pushes change events for the requested tables over SSE until the
// client disconnects. tables is a comma-separated list; empty means all.
func (h *EventsHandler) Stream(c *gin.Context) {
	tables, err := parseTables(c.Query("tables"))
	if err != nil {
		respondError(c, err)
		return
	}

	merged := make(chan events.Change, 16)
	done := make(chan struct{})
	defer close(done)

	for _, table := range tables {
		sub := h.hub.Subscribe(table)
		defer sub.Cancel()
		go func(sub *events.Subscription) {
			for {
				select {
				case change, ok := <-sub.C:
					if !ok {
						return
					}
					select {
					case merged <- change:
					case <-done:
						return
					}
				case <-done:
					return
				}
			}
		}(sub)
	}

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case change := <-merged:
			c.SSEvent("change", change)
			return true
		case <-clientGone:
			return false
		}
	})
}

func parseTables(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{events.TableProducts, events.TableSales, events.TableExpenses, events.TableNotifications}, nil
	}

	var tables []string
	for _, part := range strings.Split(raw, ",") {
		table := strings.TrimSpace(part)
		if table == "" {
			continue
		}
		if !streamableTables[table] {
			return nil, domain.NewValidationError("unknown table %q", table)
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, domain.NewValidationError("no tables requested")
	}
	return tables, nil
}
