// internal/service/notification_mirror.go
package service

import (
	"sync"

	"github.com/suqpos/backend-go/internal/domain"
)

// NotificationMirror is an in-memory view of one user's notification list,
// kept current by applying live change events on top of an initial load.
// Mutations are optimistic: the mirror updates immediately and a failed
// server call is reconciled by the next Load. The unread counter is
// clamped and never goes negative.
type NotificationMirror struct {
	mu     sync.Mutex
	userID int64
	items  []domain.Notification
	unread int
}

func NewNotificationMirror(userID int64) *NotificationMirror {
	return &NotificationMirror{userID: userID}
}

// Load replaces the mirror contents with a fresh fetch.
func (m *NotificationMirror) Load(items []domain.Notification, unread int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append([]domain.Notification(nil), items...)
	if unread < 0 {
		unread = 0
	}
	m.unread = unread
}

// ApplyInsert prepends a new notification for this user; newest first.
func (m *NotificationMirror) ApplyInsert(n domain.Notification) {
	if n.UserID != m.userID {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append([]domain.Notification{n}, m.items...)
	if !n.IsRead {
		m.unread++
	}
}

// MarkRead flags one notification read, decrementing the unread counter
// only when the item was actually unread.
func (m *NotificationMirror) MarkRead(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if !m.items[i].IsRead {
			m.items[i].IsRead = true
			m.decrementUnread()
		}
		return
	}
}

// MarkAllRead flags everything read and zeroes the counter.
func (m *NotificationMirror) MarkAllRead() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		m.items[i].IsRead = true
	}
	m.unread = 0
}

// Remove drops a notification, decrementing the unread counter when the
// removed item was unread.
func (m *NotificationMirror) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if !m.items[i].IsRead {
			m.decrementUnread()
		}
		m.items = append(m.items[:i], m.items[i+1:]...)
		return
	}
}

// Items returns a copy of the current list, newest first.
func (m *NotificationMirror) Items() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.items...)
}

// Unread returns the current unread counter.
func (m *NotificationMirror) Unread() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

func (m *NotificationMirror) decrementUnread() {
	if m.unread > 0 {
		m.unread--
	}
}
