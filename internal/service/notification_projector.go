// internal/service/notification_projector.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/repository"
	"github.com/suqpos/backend-go/pkg/currency"
)

// NotificationProjector turns sale and stock mutations into persisted
// notifications for every owner-role user, then republishes the inserts so
// live clients see them without polling.
type NotificationProjector struct {
	notifications repository.NotificationStore
	users         repository.UserStore
	hub           *events.Hub

	saleSub    *events.Subscription
	productSub *events.Subscription

	// lowStockSeen tracks products already flagged so a product sitting
	// below its threshold does not re-notify on every sale.
	lowStockSeen map[int64]bool
}

// NewNotificationProjector subscribes immediately so no change published
// after construction is missed, even before Run starts draining.
func NewNotificationProjector(notifications repository.NotificationStore, users repository.UserStore, hub *events.Hub) *NotificationProjector {
	return &NotificationProjector{
		notifications: notifications,
		users:         users,
		hub:           hub,
		saleSub:       hub.Subscribe(events.TableSales),
		productSub:    hub.Subscribe(events.TableProducts),
		lowStockSeen:  make(map[int64]bool),
	}
}

// Run consumes sale and product changes until the context is cancelled.
// Intended to run in its own goroutine.
func (p *NotificationProjector) Run(ctx context.Context) {
	defer p.saleSub.Cancel()
	defer p.productSub.Cancel()

	log.Info().Msg("notification projector started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("notification projector stopped")
			return
		case change := <-p.saleSub.C:
			p.handleSaleChange(ctx, change)
		case change := <-p.productSub.C:
			p.handleProductChange(ctx, change)
		}
	}
}

func (p *NotificationProjector) handleSaleChange(ctx context.Context, change events.Change) {
	sale, ok := change.Payload.(*domain.Sale)
	if !ok {
		return
	}

	switch change.Op {
	case events.OpInsert:
		p.fanOut(ctx, domain.NotificationSaleCompleted,
			"Sale completed",
			fmt.Sprintf("%d x %s sold for %s", sale.Quantity, sale.ProductName, currency.FormatETB(sale.Revenue)),
			salePayload(sale))
	case events.OpDelete:
		p.fanOut(ctx, domain.NotificationSaleDeleted,
			"Sale deleted",
			fmt.Sprintf("Sale of %d x %s was deleted, stock restored", sale.Quantity, sale.ProductName),
			salePayload(sale))
	}
}

func (p *NotificationProjector) handleProductChange(ctx context.Context, change events.Change) {
	if change.Op != events.OpUpdate {
		return
	}
	product, ok := change.Payload.(*domain.Product)
	if !ok {
		return
	}

	if !product.LowStock() {
		delete(p.lowStockSeen, product.ID)
		return
	}
	if p.lowStockSeen[product.ID] {
		return
	}
	p.lowStockSeen[product.ID] = true

	p.fanOut(ctx, domain.NotificationLowStock,
		"Low stock alert",
		fmt.Sprintf("%s is down to %d (threshold %d)", product.Name, product.Quantity, product.MinThreshold),
		productPayload(product))
}

func (p *NotificationProjector) fanOut(ctx context.Context, typ, title, message string, payload json.RawMessage) {
	ownerIDs, err := p.users.OwnerIDs(ctx)
	if err != nil {
		log.Error().Err(err).Str("type", typ).Msg("notification fan-out: owner lookup failed")
		return
	}

	for _, ownerID := range ownerIDs {
		n := &domain.Notification{
			UserID:  ownerID,
			Type:    typ,
			Title:   title,
			Message: message,
			Payload: payload,
		}
		if err := p.notifications.Create(ctx, n); err != nil {
			log.Error().Err(err).Int64("user_id", ownerID).Str("type", typ).Msg("notification fan-out: create failed")
			continue
		}
		p.hub.Publish(events.Change{Table: events.TableNotifications, Op: events.OpInsert, Payload: n})
	}
}

func salePayload(sale *domain.Sale) json.RawMessage {
	payload, err := json.Marshal(map[string]any{
		"sale_id":    sale.ID,
		"product_id": sale.ProductID,
		"quantity":   sale.Quantity,
		"revenue":    sale.Revenue,
	})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return payload
}

func productPayload(product *domain.Product) json.RawMessage {
	payload, err := json.Marshal(map[string]any{
		"product_id": product.ID,
		"quantity":   product.Quantity,
		"threshold":  product.MinThreshold,
	})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return payload
}
