// internal/analytics/aggregator.go
package analytics

import (
	"sort"
	"time"

	"github.com/suqpos/backend-go/internal/domain"
)

const topProductsLimit = 10

// Input carries everything Aggregate needs. All record sets arrive already
// filtered to the requested period except Products, which always reflects
// the current catalog.
type Input struct {
	Period    domain.Period
	Sales     []domain.Sale
	Expenses  []domain.Expense
	Movements []domain.InventoryMovement
	Products  []domain.Product
	Now       time.Time
}

// Aggregate computes a complete metrics snapshot from raw rows. Pure: no
// I/O, no shared state; every call builds a fresh snapshot.
func Aggregate(in Input) *domain.MetricsSnapshot {
	snap := &domain.MetricsSnapshot{
		Period:             in.Period,
		GeneratedAt:        in.Now,
		ExpensesByCategory: make(map[string]float64),
		Sales:              in.Sales,
		Expenses:           in.Expenses,
		Movements:          in.Movements,
		Products:           in.Products,
	}

	for _, s := range in.Sales {
		snap.TotalRevenue += s.Revenue
		snap.TotalProfit += s.Profit
		snap.TotalItemsSold += s.Quantity
	}
	snap.TotalSalesCount = len(in.Sales)
	if snap.TotalSalesCount > 0 {
		snap.AverageOrderValue = snap.TotalRevenue / float64(snap.TotalSalesCount)
	}

	for _, e := range in.Expenses {
		snap.TotalExpenses += e.Amount
		cat := e.Category
		if cat == "" {
			cat = domain.CategoryOther
		}
		snap.ExpensesByCategory[cat] += e.Amount
	}

	for _, p := range in.Products {
		snap.TotalInventoryValue += p.CostPrice * float64(p.Quantity)
		snap.TotalRetailValue += p.SellingPrice * float64(p.Quantity)
		if p.LowStock() {
			snap.LowStockCount++
		}
	}
	snap.PotentialProfit = snap.TotalRetailValue - snap.TotalInventoryValue

	for _, m := range in.Movements {
		if m.MovementType != domain.MovementTypePurchase {
			continue
		}
		snap.TotalPurchases += m.TotalCost
		snap.TotalItemsPurchased += m.Quantity
	}

	// Ratios stay exactly 0 (never NaN/Inf) on zero revenue.
	snap.NetProfit = snap.TotalProfit - snap.TotalExpenses
	if snap.TotalRevenue > 0 {
		snap.GrossProfitMargin = snap.TotalProfit / snap.TotalRevenue * 100
		snap.NetProfitMargin = snap.NetProfit / snap.TotalRevenue * 100
		snap.ExpenseRatio = snap.TotalExpenses / snap.TotalRevenue * 100
	}

	divisor := in.Period.DailyDivisor()
	snap.DailyAverageRevenue = snap.TotalRevenue / divisor
	snap.DailyAverageProfit = snap.TotalProfit / divisor
	snap.DailyAverageExpenses = snap.TotalExpenses / divisor

	perf := productPerformance(in.Sales)
	snap.TopProducts = topBy(perf, func(a, b domain.ProductPerformance) bool {
		return a.Revenue > b.Revenue
	})
	snap.TopSellingProducts = topBy(perf, func(a, b domain.ProductPerformance) bool {
		return a.Quantity > b.Quantity
	})

	return snap
}

// productPerformance groups sales by product display name in first-seen
// order. Name-keyed on purpose: identically named products merge, matching
// the dashboards' historical behavior.
func productPerformance(sales []domain.Sale) []domain.ProductPerformance {
	index := make(map[string]int)
	perf := make([]domain.ProductPerformance, 0)
	for _, s := range sales {
		if s.ProductName == "" {
			continue
		}
		i, ok := index[s.ProductName]
		if !ok {
			i = len(perf)
			index[s.ProductName] = i
			perf = append(perf, domain.ProductPerformance{Name: s.ProductName})
		}
		perf[i].Quantity += s.Quantity
		perf[i].Revenue += s.Revenue
		perf[i].Profit += s.Profit
		perf[i].Cost += s.Revenue - s.Profit
	}
	return perf
}

// topBy returns the top entries under less, stable so ties keep their
// first-seen order.
func topBy(perf []domain.ProductPerformance, less func(a, b domain.ProductPerformance) bool) []domain.ProductPerformance {
	ranked := make([]domain.ProductPerformance, len(perf))
	copy(ranked, perf)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	return ranked
}
