package domain

import "time"

// ProductPerformance accumulates sales for one product display name. Sales
// are keyed by name, not id, so two catalog entries sharing a name merge
// into one row; that matches the behavior the dashboards have always shown.
type ProductPerformance struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Cost     float64 `json:"cost"`
}

// MetricsSnapshot is the full derived-metrics set for one period. It is
// computed from scratch on every refresh and never mutated afterwards; the
// raw filtered record sets ride along for downstream display.
type MetricsSnapshot struct {
	Period      Period    `json:"period"`
	GeneratedAt time.Time `json:"generated_at"`

	// Sales metrics
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
	TotalSalesCount   int     `json:"total_sales_count"`
	AverageOrderValue float64 `json:"average_order_value"`
	TotalItemsSold    int     `json:"total_items_sold"`

	// Expense metrics
	TotalExpenses      float64            `json:"total_expenses"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`

	// Inventory metrics (always against the current catalog, never
	// time-filtered: stock valuation is a snapshot concept)
	TotalInventoryValue float64 `json:"total_inventory_value"`
	TotalRetailValue    float64 `json:"total_retail_value"`
	PotentialProfit     float64 `json:"potential_profit"`
	LowStockCount       int     `json:"low_stock_count"`
	TotalPurchases      float64 `json:"total_purchases"`
	TotalItemsPurchased int     `json:"total_items_purchased"`

	// Profitability ratios, percentages. Zero when revenue is zero.
	GrossProfitMargin float64 `json:"gross_profit_margin"`
	NetProfit         float64 `json:"net_profit"`
	NetProfitMargin   float64 `json:"net_profit_margin"`
	ExpenseRatio      float64 `json:"expense_ratio"`

	// Daily averages over the fixed period divisor (7/30/365/1)
	DailyAverageRevenue  float64 `json:"daily_average_revenue"`
	DailyAverageProfit   float64 `json:"daily_average_profit"`
	DailyAverageExpenses float64 `json:"daily_average_expenses"`

	// Product performance, top 10 by revenue / by quantity
	TopProducts        []ProductPerformance `json:"top_products"`
	TopSellingProducts []ProductPerformance `json:"top_selling_products"`

	// Raw filtered inputs
	Sales     []Sale              `json:"sales"`
	Expenses  []Expense           `json:"expenses"`
	Movements []InventoryMovement `json:"movements"`
	Products  []Product           `json:"products"`
}

// TimeSeriesPoint is one chart bucket. Buckets are emitted for every slot
// in range, zero-filled, so charts never show gaps.
type TimeSeriesPoint struct {
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Expenses float64 `json:"expenses"`
}

// Transaction is a display-only cluster of sale line items inferred to
// belong to one checkout by temporal proximity. It is a heuristic: two
// unrelated sales landing within the window are indistinguishable from one
// multi-item checkout.
type Transaction struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Sales       []Sale    `json:"sales"`
}
