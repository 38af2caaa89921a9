package routes

import (
	"adyen_classic/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/authorize", paymentHandler.Authorize)
		payments.POST("/:id/capture", paymentHandler.Capture)
		payments.POST("/:id/refund", paymentHandler.Refund)
		payments.POST("/:id/void", paymentHandler.Void)
		payments.GET("/:id", paymentHandler.GetByID)
		payments.GET("", paymentHandler.ListByReference)
	}
}
