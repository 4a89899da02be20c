// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/api/handlers"
	"github.com/suqpos/backend-go/internal/api/middleware"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/export"
	"github.com/suqpos/backend-go/internal/service"
)

type Services struct {
	Metrics       *service.MetricsService
	Sales         *service.SalesService
	Products      *service.ProductService
	Expenses      *service.ExpenseService
	Notifications *service.NotificationService
	Reporter      *export.Reporter
	Hub           *events.Hub
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.Metrics != nil {
		metricsHandler := handlers.NewMetricsHandler(services.Metrics, services.Reporter)
		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("", metricsHandler.GetSnapshot)
			metricsGroup.GET("/timeseries", metricsHandler.GetTimeSeries)
			metricsGroup.POST("/export", metricsHandler.ExportReport)
		}
	}

	if services.Sales != nil {
		salesHandler := handlers.NewSalesHandler(services.Sales)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.GET("", salesHandler.List)
			salesGroup.POST("/checkout", salesHandler.Checkout)
			salesGroup.GET("/transactions", salesHandler.RecentTransactions)
			salesGroup.DELETE("/:id", salesHandler.Delete)
		}
	}

	if services.Products != nil {
		productHandler := handlers.NewProductHandler(services.Products)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.List)
			productGroup.GET("/:id", productHandler.Get)
			productGroup.POST("", productHandler.Create)
			productGroup.PUT("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
		}
	}

	if services.Expenses != nil {
		expenseHandler := handlers.NewExpenseHandler(services.Expenses)
		expenseGroup := apiGroup.Group("/expenses")
		{
			expenseGroup.GET("", expenseHandler.List)
			expenseGroup.POST("", expenseHandler.Create)
			expenseGroup.DELETE("/:id", expenseHandler.Delete)
		}
	}

	if services.Notifications != nil {
		notificationHandler := handlers.NewNotificationHandler(services.Notifications)
		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.ListByUser)
			notificationGroup.GET("/unread_count", notificationHandler.UnreadCount)
			notificationGroup.PUT("/read_all", notificationHandler.MarkAllRead)
			notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)
			notificationGroup.DELETE("/:id", notificationHandler.Delete)
		}
	}

	if services.Hub != nil {
		eventsHandler := handlers.NewEventsHandler(services.Hub)
		apiGroup.GET("/events/stream", eventsHandler.Stream)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
