// internal/analytics/grouper.go
package analytics

import (
	"fmt"
	"time"

	"github.com/suqpos/backend-go/internal/domain"
)

const (
	// Sales recorded within this window of each other are presumed to
	// belong to the same checkout.
	transactionWindow = 2000 * time.Millisecond

	recentTransactionsLimit = 10
)

// GroupTransactions clusters raw sale line items into logical checkout
// transactions. Input must be sorted by timestamp descending (most recent
// first); output keeps that order, truncated to the display limit.
//
// Single forward scan: each unprocessed sale absorbs every later-indexed,
// still-unprocessed sale within the window. The group keeps the first-seen
// (most recent) timestamp. Heuristic only: there is no foreign key tying
// lines to a checkout.
func GroupTransactions(sales []domain.Sale) []domain.Transaction {
	grouped := make([]domain.Transaction, 0, len(sales))
	processed := make([]bool, len(sales))

	for i, sale := range sales {
		if processed[i] {
			continue
		}
		processed[i] = true

		group := []domain.Sale{sale}
		for j := i + 1; j < len(sales); j++ {
			if processed[j] {
				continue
			}
			delta := sales[j].CreatedAt.Sub(sale.CreatedAt)
			if delta < 0 {
				delta = -delta
			}
			if delta < transactionWindow {
				processed[j] = true
				group = append(group, sales[j])
			}
		}

		var totalAmount float64
		var itemCount int
		for _, s := range group {
			totalAmount += s.Revenue
			itemCount += s.Quantity
		}

		grouped = append(grouped, domain.Transaction{
			ID:          fmt.Sprintf("txn-%d", sale.ID),
			Timestamp:   sale.CreatedAt,
			TotalAmount: totalAmount,
			ItemCount:   itemCount,
			Sales:       group,
		})
	}

	if len(grouped) > recentTransactionsLimit {
		grouped = grouped[:recentTransactionsLimit]
	}
	return grouped
}
