package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Role of a store user. Authentication itself is delegated to the identity
// provider; the role only drives notification fan-out and sale attribution.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleCashier Role = "cashier"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product is a catalog entry. Low stock means Quantity <= MinThreshold.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	CostPrice    float64   `json:"cost_price" db:"cost_price"`
	SellingPrice float64   `json:"selling_price" db:"selling_price"`
	Quantity     int       `json:"quantity" db:"quantity"`
	MinThreshold int       `json:"min_threshold" db:"min_threshold"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the on-hand quantity is at or below the
// configured minimum threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinThreshold
}

// Sale is one recorded line item. Revenue and Profit are fixed at recording
// time; catalog edits after the fact do not rewrite history. Product name,
// cost and price are joined in for display and aggregation.
type Sale struct {
	ID           int64     `json:"id" db:"id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	ProductName  string    `json:"product_name" db:"product_name"`
	CostPrice    float64   `json:"cost_price" db:"cost_price"`
	SellingPrice float64   `json:"selling_price" db:"selling_price"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Revenue      float64   `json:"revenue" db:"revenue"`
	Profit       float64   `json:"profit" db:"profit"`
	CashierID    int64     `json:"cashier_id" db:"cashier_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Expense categories. Unknown or empty categories normalize to Other.
const (
	CategoryRent        = "Rent"
	CategorySalary      = "Salary"
	CategoryUtilities   = "Utilities"
	CategoryMaintenance = "Maintenance"
	CategoryMarketing   = "Marketing"
	CategoryOther       = "Other"
)

var expenseCategories = map[string]string{
	"rent":        CategoryRent,
	"salary":      CategorySalary,
	"utilities":   CategoryUtilities,
	"maintenance": CategoryMaintenance,
	"marketing":   CategoryMarketing,
	"other":       CategoryOther,
}

// NormalizeCategory maps free-form input onto the known category set,
// defaulting to Other.
func NormalizeCategory(category string) string {
	if c, ok := expenseCategories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return CategoryOther
}

type Expense struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Amount      float64   `json:"amount" db:"amount"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MovementTypePurchase marks stock replenishment; only purchase movements
// feed the purchase totals in the metrics snapshot.
const MovementTypePurchase = "purchase"

type InventoryMovement struct {
	ID           int64     `json:"id" db:"id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	ProductName  string    `json:"product_name" db:"product_name"`
	MovementType string    `json:"movement_type" db:"movement_type"`
	Quantity     int       `json:"quantity" db:"quantity"`
	TotalCost    float64   `json:"total_cost" db:"total_cost"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Notification types.
const (
	NotificationLowStock      = "low_stock"
	NotificationSaleCompleted = "sale_completed"
	NotificationSaleDeleted   = "sale_deleted"
)

type Notification struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	Type      string          `json:"type" db:"type"`
	Title     string          `json:"title" db:"title"`
	Message   string          `json:"message" db:"message"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	IsRead    bool            `json:"is_read" db:"is_read"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// CartLine is one line of a checkout as submitted by the cashier UI. The
// unit price may exceed the catalog selling price but never undercut it.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
