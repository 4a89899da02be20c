// internal/api/handlers/expense_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/service"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) List(c *gin.Context) {
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

	expenses, err := h.expenses.List(c.Request.Context(), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var expense domain.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		respondError(c, domain.NewValidationError("invalid expense payload: %v", err))
		return
	}

	if err := h.expenses.Create(c.Request.Context(), &expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
