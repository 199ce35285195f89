package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkoutController "kursusku_backend/internals/features/billing/checkout/controller"
)

// CheckoutUserRoutes mounts the authenticated checkout endpoint.
func CheckoutUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := checkoutController.NewCheckoutController(db)
	billing := router.Group("/billing")

	billing.Post("/checkout", ctrl.CreateCheckout)
}

// CheckoutPublicRoutes mounts the gateway notification callback.
func CheckoutPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := checkoutController.NewCheckoutController(db)
	billing := router.Group("/billing")

	billing.Post("/midtrans/notification", ctrl.HandleMidtransNotification)
}
