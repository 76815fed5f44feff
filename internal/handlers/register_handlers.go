package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portssvc "github.com/awbsmith/bookkeeper/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, accountingSvc portssvc.AccountingSvc) {
	registerValidations()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	handler := NewAccountingHandler(accountingSvc)

	accounts := v1.Group("/accounts")
	accounts.POST("", handler.CreateAccount)
	accounts.GET("", handler.GetChartOfAccounts)
	accounts.GET("/:accountNumber", handler.GetAccount)
	accounts.GET("/:accountNumber/statement", handler.GetStatement)

	postings := v1.Group("/postings")
	postings.POST("/sales", handler.RecordSale)
	postings.POST("/purchases", handler.RecordPurchase)
	postings.POST("/payments", handler.RecordPayment)
	postings.POST("/investments", handler.RecordInvestment)
	postings.POST("/owner-injections", handler.RecordOwnerInjection)

	v1.GET("/reports/trial-balance", handler.GetTrialBalance)
	v1.GET("/journal", handler.GetJournal)
}

// registerValidations adds custom binding validations used by the DTOs.
// A registration failure would silently disable request validation, so it is
// fatal at startup.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return domain.ValidAccountType(domain.AccountType(fl.Field().String()))
		}); err != nil {
			panic(fmt.Errorf("failed to register accounttype validation: %w", err))
		}
	}
}
