// internal/service/notification_service.go
package service

import (
	"context"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/repository"
)

const notificationPageSize = 50

type NotificationService struct {
	notifications repository.NotificationStore
	hub           *events.Hub
}

func NewNotificationService(notifications repository.NotificationStore, hub *events.Hub) *NotificationService {
	return &NotificationService{notifications: notifications, hub: hub}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, notificationPageSize)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(events.Change{Table: events.TableNotifications, Op: events.OpUpdate, Payload: id})
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.hub.Publish(events.Change{Table: events.TableNotifications, Op: events.OpUpdate, Payload: userID})
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(events.Change{Table: events.TableNotifications, Op: events.OpDelete, Payload: id})
	return nil
}
