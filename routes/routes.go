package routes

import (
	"github.com/expertdev121/pledges-backend/handlers"
	"github.com/expertdev121/pledges-backend/repository"
	"github.com/expertdev121/pledges-backend/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	db := repository.GetDB()

	// Repositories
	rateRepo := repository.NewRateRepository(db)
	pledgeRepo := repository.NewPledgeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	rateService := services.NewRateService(rateRepo)
	allocationService := services.NewAllocationService(rateService)
	paymentService := services.NewPaymentService(paymentRepo, pledgeRepo, rateService, allocationService)
	reportService := services.NewReportService(paymentRepo, pledgeRepo)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService, paymentRepo)
	rateHandler := handlers.NewRateHandler(rateService, rateRepo)
	pledgeHandler := handlers.NewPledgeHandler(pledgeRepo)
	reportHandler := handlers.NewReportHandler(reportService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Payment endpoints
		v1.POST("/payments/create", paymentHandler.CreatePayment)
		v1.POST("/payments/createBatch", paymentHandler.CreateBatch)
		v1.POST("/payments/preview", paymentHandler.Preview)
		v1.POST("/payments/listByContact", paymentHandler.ListByContact)
		v1.POST("/payments/remove", paymentHandler.RemovePayment)

		// Exchange rate endpoints
		v1.POST("/rates/get", rateHandler.GetRates)
		v1.POST("/rates/convert", rateHandler.Convert)

		// Pledge lookup endpoints
		v1.POST("/pledges/listByContact", pledgeHandler.ListByContact)

		// Report endpoints
		v1.GET("/reports/payments/:contactId", reportHandler.ExportContactPayments)
	}
}
