// internal/api/handlers/sales_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/service"
)

type SalesHandler struct {
	sales *service.SalesService
}

func NewSalesHandler(sales *service.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

type checkoutRequest struct {
	CashierID int64             `json:"cashier_id" binding:"required"`
	Lines     []domain.CartLine `json:"lines" binding:"required"`
}

// Checkout records a cart. A mid-cart failure still reports which lines
// were committed before the error.
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("invalid checkout payload: %v", err))
		return
	}

	result, err := h.sales.Checkout(c.Request.Context(), req.Lines, req.CashierID)
	if err != nil {
		if result != nil && len(result.Recorded) > 0 {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    err.Error(),
				"recorded": result.Recorded,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List returns raw sale lines for a period, newest first.
func (h *SalesHandler) List(c *gin.Context) {
	period, start, end, err := parsePeriodQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rng, err := period.Resolve(timeNow(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(c, domain.NewValidationError("invalid limit %q", raw))
			return
		}
	}

	sales, err := h.sales.List(c.Request.Context(), rng, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// RecentTransactions returns the last checkouts, sale lines grouped by
// temporal proximity.
func (h *SalesHandler) RecentTransactions(c *gin.Context) {
	txns, err := h.sales.RecentTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// Delete removes a sale and restores its stock.
func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.NewValidationError("invalid sale id %q", c.Param("id")))
		return
	}

	sale, err := h.sales.DeleteSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": sale})
}
