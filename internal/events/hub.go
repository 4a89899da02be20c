// internal/events/hub.go
package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Op is the mutation kind carried by a change event.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Change is one mutation on a named collection, pushed to subscribers.
type Change struct {
	Table   string `json:"table"`
	Op      Op     `json:"op"`
	Payload any    `json:"payload"`
}

// Tables with live change streams.
const (
	TableProducts      = "products"
	TableSales         = "sales"
	TableExpenses      = "expenses"
	TableNotifications = "notifications"
)

const subscriberBuffer = 64

// Subscription is a cancellable handle on one table's change stream.
// Events arrive on C one at a time, in publish order for this subscriber;
// there is no ordering guarantee relative to other subscribers or to
// concurrent fetches. Cancel closes C and releases the slot; callers own
// teardown and must Cancel when their view unmounts.
type Subscription struct {
	C chan Change

	hub   *Hub
	table string
	id    uint64
	once  sync.Once
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s.table, s.id)
		close(s.C)
	})
}

// Hub fans mutations out to per-table subscribers. Delivery is
// best-effort: a subscriber that stops draining loses its oldest buffered
// events rather than blocking publishers — mirrors are last-write-wins.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string]map[uint64]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]*Subscription)}
}

// Subscribe registers for changes on a table.
func (h *Hub) Subscribe(table string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:     make(chan Change, subscriberBuffer),
		hub:   h,
		table: table,
		id:    h.nextID,
	}
	if h.subs[table] == nil {
		h.subs[table] = make(map[uint64]*Subscription)
	}
	h.subs[table][sub.id] = sub
	return sub
}

// Publish delivers a change to every subscriber of its table.
func (h *Hub) Publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[change.Table] {
		select {
		case sub.C <- change:
		default:
			// Full buffer: drop the oldest event to make room.
			select {
			case <-sub.C:
			default:
			}
			select {
			case sub.C <- change:
			default:
				log.Warn().Str("table", change.Table).Msg("dropping change event for slow subscriber")
			}
		}
	}
}

func (h *Hub) remove(table string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[table], id)
}
